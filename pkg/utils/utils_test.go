package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{12, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateTotalPages(tc.total, tc.perPage), "total=%d perPage=%d", tc.total, tc.perPage)
	}
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 5))
	assert.Equal(t, 10, CalculateOffset(3, 5))
	assert.Equal(t, 0, CalculateOffset(0, 5))
	assert.Equal(t, 0, CalculateOffset(-2, 5))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-4", 1))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)
	assert.True(t, CheckPasswordHash("rahasia123", hash))
	assert.False(t, CheckPasswordHash("salah12345", hash))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "budi@example.com", NormalizeEmail("  Budi@Example.COM "))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 3.000", FormatRupiah(3000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
}

func TestAppErrorKinds(t *testing.T) {
	err := fmt.Errorf("create order: %w", InvalidSize("Ukuran tidak tersedia."))

	assert.True(t, errors.Is(err, ErrInvalidSize))
	assert.False(t, errors.Is(err, ErrNotFound))

	msg, ok := UserMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Ukuran tidak tersedia.", msg)

	_, ok = UserMessage(errors.New("boom"))
	assert.False(t, ok)
}

func TestViewerDefaults(t *testing.T) {
	v := GetViewer(context.Background())
	assert.False(t, v.LoggedIn)
	assert.Equal(t, DefaultPhoto, v.Photo)

	ctx := SetViewer(context.Background(), Viewer{LoggedIn: true, Name: "Sari", Photo: "profil_user/1/a.png"})
	assert.Equal(t, "Sari", GetViewer(ctx).Name)
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Quantity int    `validate:"gt=0"`
	}

	errs := ValidateStruct(form{Email: "bukan-email", Quantity: 0})
	require.Len(t, errs, 2)
	assert.Equal(t, "format email tidak valid", errs["Email"])
	assert.Equal(t, "Email: format email tidak valid; Quantity: harus lebih dari 0", FormatValidationErrors(errs))

	assert.Nil(t, ValidateStruct(form{Email: "a@b.co", Quantity: 1}))
}
