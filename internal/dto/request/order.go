package request

type CreateOrderRequest struct {
	Size           string `json:"ukuran" validate:"required"`
	Quantity       int    `json:"jumlah" validate:"gt=0,lte=1000000"`
	Note           string `json:"keterangan" validate:"max=1000"`
	DeliveryOption string `json:"opsi_pengiriman" validate:"required"`
	Address        string `json:"alamat" validate:"max=500"`
	PaymentMethod  string `json:"metode_pembayaran" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"new_status"`
}
