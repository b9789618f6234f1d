package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"print-shop/internal/dto/request"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

// Extension allow-lists per upload kind.
var (
	designExts = []string{"png", "jpg", "jpeg", "pdf", "zip", "rar"}
	imageExts  = []string{"png", "jpg", "jpeg"}
)

func validationError(log *zap.Logger, operation string, errs map[string]string) error {
	log.Warn(operation+" validation failed", zap.Any("errors", errs))
	return utils.InvalidArgument("Data tidak valid: " + utils.FormatValidationErrors(errs))
}

// checkUpload rejects file unless its extension is in allowed. label names
// the upload in the message, e.g. "desain".
func checkUpload(file *request.FileUpload, label string, allowed []string) error {
	if !storage.HasAllowedExt(file.Filename, allowed...) {
		return utils.InvalidFile(fmt.Sprintf("File %s tidak valid. Format yang diperbolehkan: %s", label, strings.Join(allowed, ", ")))
	}
	return nil
}

func checkPassword(password, confirm string) error {
	if password != confirm {
		return utils.InvalidArgument("Kata sandi dan konfirmasi tidak cocok.")
	}
	if len(password) < utils.MinPasswordLength {
		return utils.InvalidArgument(fmt.Sprintf("Kata sandi minimal %d karakter.", utils.MinPasswordLength))
	}
	return nil
}

// removeBlob deletes key and only logs on failure.
func removeBlob(ctx context.Context, disk storage.Disk, log *zap.Logger, key string) {
	if key == "" {
		return
	}
	if err := disk.Delete(ctx, key); err != nil {
		log.Warn("Failed to delete blob", zap.Error(err), zap.String("key", key))
	}
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, utils.ErrNotFound)
}
