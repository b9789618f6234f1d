package usecase

import (
	"context"
	"fmt"
	"time"

	"print-shop/internal/data/entity"
	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgProductNotFound = "Produk tidak ditemukan."
	// LatestProductCount is how many products the home page shows.
	LatestProductCount = 4
)

type ProductService interface {
	// Public
	ListProducts(ctx context.Context) ([]response.ProductResponse, error)
	LatestProducts(ctx context.Context) ([]response.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*response.ProductResponse, error)

	// Admin
	ListProductsPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	CreateProduct(ctx context.Context, req *request.ProductRequest, photo *request.FileUpload) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req *request.ProductRequest, photo *request.FileUpload) error
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	products repository.ProductRepository
	disk     storage.Disk
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, disk storage.Disk, log *zap.Logger) ProductService {
	return &productService{
		products: products,
		disk:     disk,
		log:      log.With(zap.String("service", "product")),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]response.ProductResponse, error) {
	return s.list(ctx, 0)
}

func (s *productService) LatestProducts(ctx context.Context) ([]response.ProductResponse, error) {
	return s.list(ctx, LatestProductCount)
}

func (s *productService) list(ctx context.Context, limit int) ([]response.ProductResponse, error) {
	products, err := s.products.FindAll(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	data := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, response.ProductToResponse(p))
	}
	return data, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*response.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.NotFound(msgProductNotFound)
	}
	resp := response.ProductToResponse(product)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *productService) ListProductsPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	req.Normalize()

	products, err := s.products.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, response.ProductToResponse(p))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest, photo *request.FileUpload) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Create product", errs)
	}
	if !photo.Present() {
		return nil, utils.InvalidArgument("Foto produk wajib diunggah.")
	}
	if err := checkUpload(photo, "gambar", imageExts); err != nil {
		return nil, err
	}

	key, err := s.disk.Save(ctx, storage.NamespaceProducts, photo.Filename, photo.Content)
	if err != nil {
		return nil, fmt.Errorf("save product photo: %w", err)
	}

	product := &entity.Product{
		Base:        entity.NewBase(time.Now()),
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Photo:       key,
		Tiers:       toTiers(req.Tiers),
	}
	if err := s.products.Create(ctx, product); err != nil {
		removeBlob(ctx, s.disk, s.log, key)
		return nil, err
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("tiers", len(product.Tiers)),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *request.ProductRequest, photo *request.FileUpload) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return utils.NotFound(msgProductNotFound)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(s.log, "Update product", errs)
	}

	fields := map[string]any{
		"category":    req.Category,
		"name":        req.Name,
		"description": req.Description,
		"tiers":       toTiers(req.Tiers),
	}

	// the old photo stays unless a new one is uploaded
	var newPhoto string
	if photo.Present() {
		if err := checkUpload(photo, "gambar", imageExts); err != nil {
			return err
		}
		newPhoto, err = s.disk.Save(ctx, storage.NamespaceProducts, photo.Filename, photo.Content)
		if err != nil {
			return fmt.Errorf("save product photo: %w", err)
		}
		fields["photo"] = newPhoto
	}

	if _, err := s.products.Update(ctx, id, fields); err != nil {
		removeBlob(ctx, s.disk, s.log, newPhoto)
		return err
	}
	if newPhoto != "" {
		removeBlob(ctx, s.disk, s.log, product.Photo)
	}

	s.log.Info("Product updated", zap.String("product_id", id))
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return utils.NotFound(msgProductNotFound)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	removeBlob(ctx, s.disk, s.log, product.Photo)

	s.log.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func toTiers(reqs []request.SizeTierRequest) []entity.SizeTier {
	tiers := make([]entity.SizeTier, len(reqs))
	for i, t := range reqs {
		tiers[i] = entity.SizeTier{Size: t.Size, Price: t.Price}
	}
	return tiers
}
