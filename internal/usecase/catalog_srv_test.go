package usecase

import (
	"context"
	"strings"
	"testing"

	"print-shop/internal/dto/request"
	"print-shop/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRequest(name string) *request.ProductRequest {
	return &request.ProductRequest{
		Category:    "Cetak",
		Name:        name,
		Description: "Kertas art paper",
		Tiers:       []request.SizeTierRequest{{Size: "A4", Price: 1000}},
	}
}

func photo(name string) *request.FileUpload {
	return &request.FileUpload{Filename: name, Content: strings.NewReader("img")}
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Product.CreateProduct(ctx, productRequest("Brosur"), photo("brosur.jpg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Photo, "assets/imgProduk/"))
	require.Len(t, p.Tiers, 1)

	_, err = svc.Product.CreateProduct(ctx, productRequest("Kartu"), nil)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.Product.CreateProduct(ctx, productRequest("Kartu"), photo("kartu.pdf"))
	assert.ErrorIs(t, err, utils.ErrInvalidFile)

	bad := productRequest("Kartu")
	bad.Tiers = []request.SizeTierRequest{{Size: "A4", Price: 0}}
	_, err = svc.Product.CreateProduct(ctx, bad, photo("kartu.png"))
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	bad.Tiers = nil
	_, err = svc.Product.CreateProduct(ctx, bad, photo("kartu.png"))
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestUpdateProductKeepsPhoto(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Product.CreateProduct(ctx, productRequest("Brosur"), photo("brosur.jpg"))
	require.NoError(t, err)

	req := productRequest("Brosur Lipat")
	req.Tiers = append(req.Tiers, request.SizeTierRequest{Size: "A3", Price: 2000})
	require.NoError(t, svc.Product.UpdateProduct(ctx, p.ID, req, nil))

	got, err := svc.Product.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brosur Lipat", got.Name)
	assert.Equal(t, p.Photo, got.Photo)
	assert.Len(t, got.Tiers, 2)

	require.NoError(t, svc.Product.UpdateProduct(ctx, p.ID, req, photo("baru.png")))
	got, err = svc.Product.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, p.Photo, got.Photo)

	assert.ErrorIs(t, svc.Product.UpdateProduct(ctx, "missing", req, nil), utils.ErrNotFound)
}

func TestLatestProductsAndDelete(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	var last string
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		p, err := svc.Product.CreateProduct(ctx, productRequest(name), photo(name+".png"))
		require.NoError(t, err)
		last = p.ID
	}

	latest, err := svc.Product.LatestProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, LatestProductCount)

	all, err := svc.Product.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	require.NoError(t, svc.Product.DeleteProduct(ctx, last))
	_, err = svc.Product.GetProduct(ctx, last)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, svc.Product.DeleteProduct(ctx, last), utils.ErrNotFound)
}

func TestPaymentMethods(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	m, err := svc.PaymentMethod.Create(ctx, &request.PaymentMethodRequest{Type: "Transfer Bank", Name: "BCA", Number: "1234567890"})
	require.NoError(t, err)

	_, err = svc.PaymentMethod.Create(ctx, &request.PaymentMethodRequest{Type: "Transfer Bank"})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	require.NoError(t, svc.PaymentMethod.Update(ctx, m.ID, &request.PaymentMethodRequest{Type: "E-Wallet", Name: "OVO", Number: "0812"}))
	got, err := svc.PaymentMethod.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "OVO", got.Name)

	err = svc.PaymentMethod.Update(ctx, "missing", &request.PaymentMethodRequest{Type: "E-Wallet", Name: "OVO", Number: "0812"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	all, err := svc.PaymentMethod.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.PaymentMethod.Delete(ctx, m.ID))
	assert.ErrorIs(t, svc.PaymentMethod.Delete(ctx, m.ID), utils.ErrNotFound)
}
