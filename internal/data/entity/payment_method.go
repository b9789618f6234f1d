package entity

// PaymentMethod is a destination the customer pays into, e.g. a bank account
// or an e-wallet number.
type PaymentMethod struct {
	Base   `bson:",inline"`
	Type   string `bson:"type" json:"type"`     // e.g. "Transfer Bank"
	Name   string `bson:"name" json:"name"`     // e.g. "BCA"
	Number string `bson:"number" json:"number"` // account or wallet number
}
