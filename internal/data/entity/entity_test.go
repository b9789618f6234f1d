package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPriceFor(t *testing.T) {
	p := Product{Tiers: []SizeTier{{Size: "A4", Price: 1000}, {Size: "A3", Price: 2000}}}

	price, ok := p.PriceFor("A4")
	require.True(t, ok)
	assert.Equal(t, int64(1000), price)

	_, ok = p.PriceFor("a4")
	assert.False(t, ok)
	_, ok = p.PriceFor("A5")
	assert.False(t, ok)
}

func TestParseDelivery(t *testing.T) {
	d, err := ParseDelivery("Ambil di tempat", "Jl. Merdeka 1")
	require.NoError(t, err)
	assert.Equal(t, DeliveryPickup, d.Option())
	assert.Empty(t, d.Address())

	d, err = ParseDelivery("Antar ke lokasi", "  Jl. Merdeka 1 ")
	require.NoError(t, err)
	assert.Equal(t, DeliveryAddress, d.Option())
	assert.Equal(t, "Jl. Merdeka 1", d.Address())

	_, err = ParseDelivery("Antar ke lokasi", "   ")
	assert.ErrorIs(t, err, ErrAddressRequired)

	_, err = ParseDelivery("Kurir", "")
	assert.ErrorIs(t, err, ErrUnknownDeliveryOption)
}

func TestOrderSetDeliveryDropsAddressForPickup(t *testing.T) {
	o := Order{Address: "lama"}
	o.SetDelivery(Pickup())
	assert.Equal(t, DeliveryPickup, o.DeliveryOption)
	assert.Empty(t, o.Address)
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("Dikirim")
	require.True(t, ok)
	assert.Equal(t, OrderStatusShipped, st)

	_, ok = ParseOrderStatus("dikirim")
	assert.False(t, ok)
	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestStrictTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusConfirmation, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusConfirmation, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusConfirmation, OrderStatusShipped, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmation, false},
		{OrderStatusCancelled, OrderStatusCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
