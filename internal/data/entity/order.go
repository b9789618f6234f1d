package entity

import (
	"errors"
	"strings"
)

type OrderStatus string

const (
	OrderStatusConfirmation OrderStatus = "Konfirmasi"
	OrderStatusProcessing   OrderStatus = "Diproses"
	OrderStatusShipped      OrderStatus = "Dikirim"
	OrderStatusCompleted    OrderStatus = "Selesai"
	OrderStatusCancelled    OrderStatus = "Dibatalkan"
)

// OrderStatuses lists the statuses in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusConfirmation,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// forward edges of the strict lifecycle; cancelling is allowed from any
// non-terminal status
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusConfirmation: OrderStatusProcessing,
	OrderStatusProcessing:   OrderStatusShipped,
	OrderStatusShipped:      OrderStatusCompleted,
}

// CanTransitionTo reports whether the strict lifecycle allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return nextStatus[s] == next
}

type DeliveryOption string

const (
	DeliveryPickup  DeliveryOption = "Ambil di tempat"
	DeliveryAddress DeliveryOption = "Antar ke lokasi"
)

var (
	ErrUnknownDeliveryOption = errors.New("unknown delivery option")
	ErrAddressRequired       = errors.New("delivery address required")
)

// DeliveryInfo is either a pickup or a delivery to an address. The address
// only exists for deliveries.
type DeliveryInfo struct {
	option  DeliveryOption
	address string
}

func Pickup() DeliveryInfo {
	return DeliveryInfo{option: DeliveryPickup}
}

func DeliverTo(address string) (DeliveryInfo, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return DeliveryInfo{}, ErrAddressRequired
	}
	return DeliveryInfo{option: DeliveryAddress, address: address}, nil
}

// ParseDelivery builds a DeliveryInfo from submitted form values. The
// address is ignored for pickups.
func ParseDelivery(option, address string) (DeliveryInfo, error) {
	switch DeliveryOption(option) {
	case DeliveryPickup:
		return Pickup(), nil
	case DeliveryAddress:
		return DeliverTo(address)
	default:
		return DeliveryInfo{}, ErrUnknownDeliveryOption
	}
}

func (d DeliveryInfo) Option() DeliveryOption { return d.option }
func (d DeliveryInfo) Address() string        { return d.address }

type Order struct {
	Base           `bson:",inline"`
	UserID         string         `bson:"user_id" json:"user_id"`
	ProductID      string         `bson:"product_id" json:"product_id"`
	ProductName    string         `bson:"product_name" json:"product_name"`
	Size           string         `bson:"size" json:"size"`
	UnitPrice      int64          `bson:"unit_price" json:"unit_price"`
	Quantity       int            `bson:"quantity" json:"quantity"`
	Total          int64          `bson:"total" json:"total"`
	Design         string         `bson:"design,omitempty" json:"design,omitempty"`
	Note           string         `bson:"note" json:"note"`
	DeliveryOption DeliveryOption `bson:"delivery_option" json:"delivery_option"`
	Address        string         `bson:"address,omitempty" json:"address,omitempty"`
	PaymentMethod  string         `bson:"payment_method" json:"payment_method"`
	Status         OrderStatus    `bson:"status" json:"status"`
	PaymentProof   string         `bson:"payment_proof,omitempty" json:"payment_proof,omitempty"`
}

// SetDelivery copies d onto the order, dropping any address for pickups.
func (o *Order) SetDelivery(d DeliveryInfo) {
	o.DeliveryOption = d.option
	o.Address = d.address
}

func (o *Order) Delivery() DeliveryInfo {
	return DeliveryInfo{option: o.DeliveryOption, address: o.Address}
}
