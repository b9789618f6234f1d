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

const (
	msgInvalidCredentials = "Email atau kata sandi salah."
	msgEmailTaken         = "Email sudah terdaftar."
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	// SeedAdmin creates the first admin account. It reports created=false
	// when an admin with that email already exists.
	SeedAdmin(ctx context.Context, req *request.CreateAdminRequest) (created bool, err error)
}

type authService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Register", errs)
	}
	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	// 2. Cek email sudah terdaftar
	email := utils.NormalizeEmail(req.Email)
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, utils.InvalidArgument(msgEmailTaken)
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Simpan user
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, utils.InvalidArgument(msgEmailTaken)
		}
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Login", errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, utils.Unauthorized(msgInvalidCredentials)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID))
	return &response.LoginResponse{ID: user.ID, Name: user.Name}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Admin login", errs)
	}

	admin, err := s.repo.Admin.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Invalid admin login attempt", zap.String("email", req.Email))
		return nil, utils.Unauthorized(msgInvalidCredentials)
	}

	s.log.Info("Admin logged in", zap.String("admin_id", admin.ID))
	return &response.LoginResponse{ID: admin.ID, Name: admin.Name}, nil
}

func (s *authService) SeedAdmin(ctx context.Context, req *request.CreateAdminRequest) (bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return false, validationError(s.log, "Seed admin", errs)
	}
	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return false, err
	}

	email := utils.NormalizeEmail(req.Email)
	existing, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check admin email: %w", err)
	}
	if existing != nil {
		s.log.Info("Admin already exists, nothing to seed", zap.String("email", email))
		return false, nil
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := &entity.Admin{
		Base:         entity.NewBase(time.Now()),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		// lost a race with another seeder
		if repository.IsDuplicate(err) {
			return false, nil
		}
		return false, err
	}

	s.log.Info("Admin seeded", zap.String("admin_id", admin.ID), zap.String("email", email))
	return true, nil
}
