package response

import (
	"time"

	"print-shop/internal/data/entity"
)

// UnknownCustomer is shown for orders whose owner no longer exists.
const UnknownCustomer = "Pengguna Tidak Dikenal"

type OrderResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"nama_user"`
	ProductID      string    `json:"produk_id"`
	ProductName    string    `json:"nama_produk"`
	Size           string    `json:"ukuran"`
	UnitPrice      int64     `json:"harga_per_satuan"`
	Quantity       int       `json:"jumlah"`
	Total          int64     `json:"total_biaya"`
	Design         string    `json:"desain,omitempty"`
	Note           string    `json:"keterangan"`
	DeliveryOption string    `json:"opsi_pengiriman"`
	Address        string    `json:"alamat,omitempty"`
	PaymentMethod  string    `json:"metode_pembayaran"`
	Status         string    `json:"status"`
	PaymentProof   string    `json:"bukti_pembayaran,omitempty"`
	OrderedAt      time.Time `json:"tanggal_pemesanan"`
}

func OrderToResponse(o *entity.Order, userName string) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		UserName:       userName,
		ProductID:      o.ProductID,
		ProductName:    o.ProductName,
		Size:           o.Size,
		UnitPrice:      o.UnitPrice,
		Quantity:       o.Quantity,
		Total:          o.Total,
		Design:         o.Design,
		Note:           o.Note,
		DeliveryOption: string(o.DeliveryOption),
		Address:        o.Address,
		PaymentMethod:  o.PaymentMethod,
		Status:         string(o.Status),
		PaymentProof:   o.PaymentProof,
		OrderedAt:      o.CreatedAt,
	}
}

// OrderDetailResponse may reference a product or customer that was deleted.
type OrderDetailResponse struct {
	Order    OrderResponse    `json:"order"`
	Product  *ProductResponse `json:"product,omitempty"`
	Customer *UserResponse    `json:"user,omitempty"`
	Statuses []string         `json:"statuses"`
}

type OrderFormResponse struct {
	Product         ProductResponse         `json:"product"`
	PaymentMethods  []PaymentMethodResponse `json:"payment_methods"`
	DeliveryOptions []string                `json:"delivery_options"`
}
