package request

type SizeTierRequest struct {
	Size  string `json:"ukuran" validate:"required"`
	Price int64  `json:"hargaPcs" validate:"gt=0"`
}

type ProductRequest struct {
	Category    string            `json:"kategori" validate:"required,max=100"`
	Name        string            `json:"nama_produk" validate:"required,max=150"`
	Description string            `json:"deskripsi" validate:"required"`
	Tiers       []SizeTierRequest `json:"dus_harga" validate:"required,min=1,dive"`
}

type PaymentMethodRequest struct {
	Type   string `json:"jenisPembayaran" validate:"required,max=100"`
	Name   string `json:"metodePembayaran" validate:"required,max=100"`
	Number string `json:"nomorPembayaran" validate:"required,max=100"`
}
