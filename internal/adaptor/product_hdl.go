package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/internal/usecase"
	"print-shop/pkg/session"
	"print-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service   usecase.ProductService
	pageSize  int
	maxUpload int64
	log       *zap.Logger
}

func NewProductHandler(service usecase.ProductService, config *utils.Config, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		pageSize:  config.App.PageSize,
		maxUpload: config.App.MaxUploadMB << 20,
		log:       log.With(zap.String("handler", "product")),
	}
}

// Home handles GET /
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	latest, err := h.service.LatestProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to load latest products", zap.Error(err))
		utils.ResponseInternalError(w, msgGeneric)
		return
	}

	renderPage(w, r, "Beranda", response.HomeResponse{LatestProducts: latest})
}

// About handles GET /about
func (h *ProductHandler) About(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Tentang Kami", nil)
}

// ListProducts handles GET /produk
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to list products", zap.Error(err))
		utils.ResponseInternalError(w, msgGeneric)
		return
	}

	renderPage(w, r, "Produk", products)
}

// GetProduct handles GET /produk/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.log, err, "get product", "/produk")
		return
	}

	renderPage(w, r, "Detail Produk", product)
}

// ==================== ADMIN ====================

// AdminListProducts handles GET /adminProduk?page=N (admin)
func (h *ProductHandler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProductsPage(r.Context(), pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list products", "/adminDashboard")
		return
	}

	renderPage(w, r, "Data Produk", products)
}

// CreateProductPage handles GET /tambahDataProduk (admin)
func (h *ProductHandler) CreateProductPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Tambah Produk", nil)
}

// CreateProduct handles POST /tambahDataProduk (admin)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, photo, ok := h.readProductForm(w, r, "create product", "/tambahDataProduk")
	if !ok {
		return
	}
	defer closeUpload(photo)

	if _, err := h.service.CreateProduct(r.Context(), req, photo); err != nil {
		handleServiceError(w, r, h.log, err, "create product", "/tambahDataProduk")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Produk berhasil ditambahkan!", "/adminProduk")
}

// EditProductPage handles GET /editDataProduk/{id} (admin)
func (h *ProductHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.log, err, "get product", "/adminProduk")
		return
	}

	renderPage(w, r, "Edit Produk", product)
}

// UpdateProduct handles POST /editDataProduk/{id} (admin)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/editDataProduk/" + id

	req, photo, ok := h.readProductForm(w, r, "update product", back)
	if !ok {
		return
	}
	defer closeUpload(photo)

	if err := h.service.UpdateProduct(r.Context(), id, req, photo); err != nil {
		handleServiceError(w, r, h.log, err, "update product", back)
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Produk berhasil diperbarui!", "/adminProduk")
}

// DeleteProduct handles GET|POST /hapusDataProduk/{id} (admin)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.log, err, "delete product", "/adminProduk")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Produk berhasil dihapus!", "/adminProduk")
}

// readProductForm answers the redirect itself when ok is false.
func (h *ProductHandler) readProductForm(w http.ResponseWriter, r *http.Request, operation, back string) (*request.ProductRequest, *request.FileUpload, bool) {
	if err := parseForm(w, r, h.maxUpload); err != nil {
		handleServiceError(w, r, h.log, err, operation, back)
		return nil, nil, false
	}
	photo, err := formFile(r, "photo")
	if err != nil {
		handleServiceError(w, r, h.log, err, operation, back)
		return nil, nil, false
	}

	return &request.ProductRequest{
		Category:    formValue(r, "kategori"),
		Name:        formValue(r, "namaProduk"),
		Description: formValue(r, "deskripsi"),
		Tiers:       readTiers(r.PostForm["ukuran[]"], r.PostForm["hargaPcs[]"]),
	}, photo, true
}

// readTiers pairs sizes with prices by position. Fully blank rows are
// dropped; a malformed price becomes 0 and fails validation.
func readTiers(sizes, prices []string) []request.SizeTierRequest {
	n := min(len(sizes), len(prices))
	tiers := make([]request.SizeTierRequest, 0, n)
	for i := 0; i < n; i++ {
		size := strings.TrimSpace(sizes[i])
		raw := strings.TrimSpace(prices[i])
		if size == "" && raw == "" {
			continue
		}
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			price = 0
		}
		tiers = append(tiers, request.SizeTierRequest{Size: size, Price: price})
	}
	return tiers
}
