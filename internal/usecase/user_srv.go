package usecase

import (
	"context"
	"fmt"
	"path"

	"print-shop/internal/data/entity"
	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const msgUserNotFound = "Pengguna tidak ditemukan."

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest, photo *request.FileUpload) error

	// Admin
	ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteCustomer(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	disk storage.Disk
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, disk storage.Disk, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		disk: disk,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound(msgUserNotFound)
	}

	resp := response.UserToResponse(user)
	if resp.Photo == "" {
		resp.Photo = utils.DefaultPhoto
	}
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest, photo *request.FileUpload) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound(msgUserNotFound)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(s.log, "Update profile", errs)
	}
	if photo.Present() {
		if err := checkUpload(photo, "foto", imageExts); err != nil {
			return err
		}
	}

	email := utils.NormalizeEmail(req.Email)
	if email != user.Email {
		owner, err := s.repo.User.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if owner != nil && owner.ID != user.ID {
			return utils.InvalidArgument(msgEmailTaken)
		}
	}

	fields := map[string]any{
		"name":       req.Name,
		"email":      email,
		"phone":      req.Phone,
		"gender":     entity.Gender(req.Gender),
		"birth_date": req.BirthDate,
	}

	var newPhoto string
	if photo.Present() {
		newPhoto, err = s.disk.Save(ctx, path.Join(storage.NamespaceProfiles, user.ID), photo.Filename, photo.Content)
		if err != nil {
			return fmt.Errorf("save profile photo: %w", err)
		}
		fields["photo"] = newPhoto
	}

	if _, err := s.repo.User.Update(ctx, user.ID, fields); err != nil {
		removeBlob(ctx, s.disk, s.log, newPhoto)
		if repository.IsDuplicate(err) {
			return utils.InvalidArgument(msgEmailTaken)
		}
		return err
	}

	if newPhoto != "" && user.Photo != "" && user.Photo != utils.DefaultPhoto {
		removeBlob(ctx, s.disk, s.log, user.Photo)
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID))
	return nil
}

// ==================== ADMIN METHODS ====================

func (s *userService) ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Normalize()

	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *userService) DeleteCustomer(ctx context.Context, userID string) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound(msgUserNotFound)
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return err
	}
	if user.Photo != utils.DefaultPhoto {
		removeBlob(ctx, s.disk, s.log, user.Photo)
	}

	s.log.Info("Customer deleted", zap.String("user_id", userID))
	return nil
}
