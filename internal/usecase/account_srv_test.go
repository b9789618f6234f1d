package usecase

import (
	"context"
	"strings"
	"testing"

	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/pkg/database"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServices(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()
	repo := repository.NewRepository(database.NewMemoryStore(), zap.NewNop())
	require.NoError(t, repo.EnsureIndexes(context.Background()))

	config := &utils.Config{}
	config.App.StatusPolicy = string(PolicyPermissive)
	svc := NewService(repo, storage.NewLocalDisk(t.TempDir(), "/static"), &fakeMailer{}, config, zap.NewNop())
	return svc, repo
}

func validRegister() *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:            "Siti",
		Phone:           "081234567890",
		Email:           "Siti@Example.com",
		Password:        "rahasia123",
		ConfirmPassword: "rahasia123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "siti@example.com", user.Email)

	login, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "SITI@example.com", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, login.ID)
	assert.Equal(t, "Siti", login.Name)

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "siti@example.com", Password: "salah12345"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "rahasia123"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	_, err := svc.Auth.Register(ctx, validRegister())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(r *request.RegisterRequest)
		msg    string
	}{
		{"confirm mismatch", func(r *request.RegisterRequest) { r.Email = "a@example.com"; r.ConfirmPassword = "lain12345" }, "tidak cocok"},
		{"short password", func(r *request.RegisterRequest) {
			r.Email = "b@example.com"
			r.Password, r.ConfirmPassword = "pendek", "pendek"
		}, "minimal 8"},
		{"duplicate email", func(r *request.RegisterRequest) {}, "sudah terdaftar"},
		{"missing name", func(r *request.RegisterRequest) { r.Email = "c@example.com"; r.Name = "" }, "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(req)
			_, err := svc.Auth.Register(ctx, req)
			require.ErrorIs(t, err, utils.ErrInvalidArgument)
			msg, ok := utils.UserMessage(err)
			require.True(t, ok)
			assert.Contains(t, msg, tt.msg)
		})
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc, repo := newTestServices(t)
	ctx := context.Background()

	req := &request.CreateAdminRequest{
		Name:            "Admin",
		Email:           "admin@example.com",
		Password:        "admin12345",
		ConfirmPassword: "admin12345",
	}

	created, err := svc.Auth.SeedAdmin(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Auth.SeedAdmin(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Admin.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	login, err := svc.Auth.LoginAdmin(ctx, &request.LoginRequest{Email: "admin@example.com", Password: "admin12345"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", login.Name)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Admin.CreateAdmin(ctx, &request.CreateAdminRequest{
		Name: "A", Email: "a@example.com", Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)
	b, err := svc.Admin.CreateAdmin(ctx, &request.CreateAdminRequest{
		Name: "B", Email: "b@example.com", Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)

	err = svc.Admin.DeleteAdmin(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	require.NoError(t, svc.Admin.DeleteAdmin(ctx, a.ID, b.ID))
	err = svc.Admin.DeleteAdmin(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateAdminKeepsPasswordWhenBlank(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Admin.CreateAdmin(ctx, &request.CreateAdminRequest{
		Name: "A", Email: "a@example.com", Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Admin.UpdateAdmin(ctx, a.ID, &request.UpdateAdminRequest{Name: "A2", Email: "a@example.com"}))
	_, err = svc.Auth.LoginAdmin(ctx, &request.LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	err = svc.Admin.UpdateAdmin(ctx, a.ID, &request.UpdateAdminRequest{Name: "A2", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, validRegister())
	require.NoError(t, err)
	other := validRegister()
	other.Email = "other@example.com"
	_, err = svc.Auth.Register(ctx, other)
	require.NoError(t, err)

	profile, err := svc.User.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultPhoto, profile.Photo)

	req := &request.UpdateProfileRequest{
		Name:      "Siti Aminah",
		Email:     "siti@example.com",
		Phone:     "081234567890",
		Gender:    "Perempuan",
		BirthDate: "1999-02-03",
	}
	photo := &request.FileUpload{Filename: "me.png", Content: strings.NewReader("png")}
	require.NoError(t, svc.User.UpdateProfile(ctx, user.ID, req, photo))

	profile, err = svc.User.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", profile.Name)
	assert.Equal(t, "Perempuan", profile.Gender)
	assert.True(t, strings.HasPrefix(profile.Photo, "profil_user/"+user.ID+"/"))

	req.Email = "other@example.com"
	err = svc.User.UpdateProfile(ctx, user.ID, req, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	req.Email = "siti@example.com"
	err = svc.User.UpdateProfile(ctx, user.ID, req, &request.FileUpload{Filename: "me.gif", Content: strings.NewReader("gif")})
	assert.ErrorIs(t, err, utils.ErrInvalidFile)

	err = svc.User.UpdateProfile(ctx, "missing", req, nil)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, validRegister())
	require.NoError(t, err)

	list, err := svc.User.ListCustomers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 5})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)

	require.NoError(t, svc.User.DeleteCustomer(ctx, user.ID))
	assert.ErrorIs(t, svc.User.DeleteCustomer(ctx, user.ID), utils.ErrNotFound)

	totals, err := svc.Dashboard.Totals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals.TotalUsers)
}
