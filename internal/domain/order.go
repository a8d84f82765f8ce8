package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a product plus the quantity requested by the customer.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns the line total with the promotion applied.
func (i *CartItem) Subtotal() float64 {
	return i.FinalPrice() * float64(i.Quantity)
}

// Savings returns how much the promotion takes off this line.
func (i *CartItem) Savings() float64 {
	if i.Discount <= 0 {
		return 0
	}
	return i.Price * (float64(i.Discount) / 100) * float64(i.Quantity)
}

// Customer holds the checkout form data attached to an order.
type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Comments string `json:"comments"`
}

// Order is a confirmed cart, ready to be handed off over WhatsApp.
type Order struct {
	ID        uuid.UUID  `json:"id"`
	Customer  Customer   `json:"customer"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Savings   float64    `json:"savings"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
	CreatedAt time.Time  `json:"created_at"`
}

// Totalize recomputes the order totals from its items.
func (o *Order) Totalize() {
	o.Subtotal = 0
	o.Savings = 0
	o.ItemCount = 0
	for i := range o.Items {
		o.Subtotal += o.Items[i].Subtotal()
		o.Savings += o.Items[i].Savings()
		o.ItemCount += o.Items[i].Quantity
	}
	// Delivery is arranged over WhatsApp, so the total is the subtotal.
	o.Total = o.Subtotal
}
