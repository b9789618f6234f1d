package response

import (
	"time"

	"print-shop/internal/data/entity"
)

type SizeTierResponse struct {
	Size  string `json:"ukuran"`
	Price int64  `json:"hargaPcs"`
}

type ProductResponse struct {
	ID          string             `json:"id"`
	Category    string             `json:"kategori"`
	Name        string             `json:"nama_produk"`
	Description string             `json:"deskripsi"`
	Photo       string             `json:"photo,omitempty"`
	Tiers       []SizeTierResponse `json:"dus_harga"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	tiers := make([]SizeTierResponse, len(p.Tiers))
	for i, t := range p.Tiers {
		tiers[i] = SizeTierResponse{Size: t.Size, Price: t.Price}
	}
	return ProductResponse{
		ID:          p.ID,
		Category:    p.Category,
		Name:        p.Name,
		Description: p.Description,
		Photo:       p.Photo,
		Tiers:       tiers,
		CreatedAt:   p.CreatedAt,
	}
}

type PaymentMethodResponse struct {
	ID     string `json:"id"`
	Type   string `json:"jenisPembayaran"`
	Name   string `json:"metodePembayaran"`
	Number string `json:"nomorPembayaran"`
}

func PaymentMethodToResponse(m *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:     m.ID,
		Type:   m.Type,
		Name:   m.Name,
		Number: m.Number,
	}
}

type HomeResponse struct {
	LatestProducts []ProductResponse `json:"latest_products"`
}

type DashboardResponse struct {
	TotalUsers    int64 `json:"total_customers"`
	TotalProducts int64 `json:"total_products"`
	TotalOrders   int64 `json:"total_orders"`
}
