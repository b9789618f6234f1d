package usecase

import (
	"context"
	"fmt"
	"time"

	"print-shop/internal/data/entity"
	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const msgAdminNotFound = "Admin tidak ditemukan."

type AdminService interface {
	ListAdmins(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error)
	GetAdmin(ctx context.Context, id string) (*response.AdminResponse, error)
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error)
	UpdateAdmin(ctx context.Context, id string, req *request.UpdateAdminRequest) error
	// DeleteAdmin removes targetID on behalf of actorID; nobody can delete themselves.
	DeleteAdmin(ctx context.Context, actorID, targetID string) error
}

type adminService struct {
	admins repository.AdminRepository
	log    *zap.Logger
}

func NewAdminService(admins repository.AdminRepository, log *zap.Logger) AdminService {
	return &adminService{
		admins: admins,
		log:    log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListAdmins(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error) {
	req.Normalize()

	admins, err := s.admins.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.admins.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.AdminResponse, 0, len(admins))
	for _, a := range admins {
		data = append(data, response.AdminToResponse(a))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *adminService) GetAdmin(ctx context.Context, id string) (*response.AdminResponse, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, utils.NotFound(msgAdminNotFound)
	}
	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Create admin", errs)
	}
	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(req.Email)
	existing, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check admin email: %w", err)
	}
	if existing != nil {
		return nil, utils.InvalidArgument(msgEmailTaken)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &entity.Admin{
		Base:         entity.NewBase(time.Now()),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if repository.IsDuplicate(err) {
			return nil, utils.InvalidArgument(msgEmailTaken)
		}
		return nil, err
	}

	s.log.Info("Admin created", zap.String("admin_id", admin.ID), zap.String("email", email))
	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) UpdateAdmin(ctx context.Context, id string, req *request.UpdateAdminRequest) error {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if admin == nil {
		return utils.NotFound(msgAdminNotFound)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(s.log, "Update admin", errs)
	}

	email := utils.NormalizeEmail(req.Email)
	if email != admin.Email {
		owner, err := s.admins.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check admin email: %w", err)
		}
		if owner != nil {
			return utils.InvalidArgument(msgEmailTaken)
		}
	}

	fields := map[string]any{
		"name":  req.Name,
		"email": email,
	}
	if req.Password != "" {
		if len(req.Password) < utils.MinPasswordLength {
			return utils.InvalidArgument(fmt.Sprintf("Kata sandi minimal %d karakter.", utils.MinPasswordLength))
		}
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = hash
	}

	if _, err := s.admins.Update(ctx, id, fields); err != nil {
		if repository.IsDuplicate(err) {
			return utils.InvalidArgument(msgEmailTaken)
		}
		return err
	}

	s.log.Info("Admin updated", zap.String("admin_id", id))
	return nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return utils.InvalidArgument("Anda tidak dapat menghapus akun Anda sendiri.")
	}

	admin, err := s.admins.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if admin == nil {
		return utils.NotFound(msgAdminNotFound)
	}

	if err := s.admins.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info("Admin deleted", zap.String("admin_id", targetID), zap.String("by", actorID))
	return nil
}
