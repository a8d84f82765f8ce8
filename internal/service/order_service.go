package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sanjuan-construye/internal/domain"

	"github.com/google/uuid"
)

var ErrEmptyOrder = errors.New("order has no items")

// OrderService builds orders from the customer's cart and produces the
// WhatsApp handoff link the storefront opens to submit them. There is no
// order storage: the business runs fulfillment entirely over WhatsApp.
type OrderService interface {
	PlaceOrder(customer domain.Customer, items []domain.CartItem) (*domain.Order, string, error)
}

type orderService struct {
	phoneNumber  string
	businessName string
}

// NewOrderService creates a new instance of OrderService. Non-digit
// characters in the phone number are stripped.
func NewOrderService(phoneNumber, businessName string) OrderService {
	return &orderService{
		phoneNumber:  cleanPhone(phoneNumber),
		businessName: businessName,
	}
}

// PlaceOrder validates the cart, computes totals and returns the order
// together with its WhatsApp deep link.
func (s *orderService) PlaceOrder(customer domain.Customer, items []domain.CartItem) (*domain.Order, string, error) {
	if len(items) == 0 {
		return nil, "", ErrEmptyOrder
	}

	order := &domain.Order{
		ID:        uuid.New(),
		Customer:  customer,
		Items:     items,
		CreatedAt: time.Now(),
	}
	order.Totalize()

	return order, s.whatsAppURL(order), nil
}

// whatsAppURL builds the wa.me deep link carrying the formatted order
// message.
func (s *orderService) whatsAppURL(order *domain.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.phoneNumber, url.QueryEscape(s.orderMessage(order)))
}

// orderMessage renders the order the way the shop reads it on WhatsApp.
func (s *orderService) orderMessage(order *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s* - Nuevo Pedido\n\n", s.businessName)
	fmt.Fprintf(&b, "*Número de Pedido:* %s\n", order.ID)
	fmt.Fprintf(&b, "*Fecha:* %s\n\n", order.CreatedAt.Format("02/01/2006 15:04"))

	b.WriteString("*DATOS DEL CLIENTE*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", order.Customer.Phone)
	fmt.Fprintf(&b, "Email: %s\n", orDefault(order.Customer.Email, "No proporcionado"))
	fmt.Fprintf(&b, "Dirección: %s\n", order.Customer.Address)
	fmt.Fprintf(&b, "Localidad: %s\n", order.Customer.City)
	fmt.Fprintf(&b, "Comentarios: %s\n\n", orDefault(order.Customer.Comments, "Ninguno"))

	b.WriteString("*PRODUCTOS SOLICITADOS*\n")
	for i := range order.Items {
		item := &order.Items[i]
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Cantidad: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Precio unitario: $%.2f\n", item.FinalPrice())
		if item.OnSale() {
			fmt.Fprintf(&b, "   Precio original: $%.2f (%d%% OFF)\n", item.Price, item.Discount)
		}
		fmt.Fprintf(&b, "   Subtotal: $%.2f\n", item.Subtotal())
	}

	fmt.Fprintf(&b, "\n*Total:* $%.2f", order.Total)
	if order.Savings > 0 {
		fmt.Fprintf(&b, "\n*Ahorro:* $%.2f", order.Savings)
	}

	return b.String()
}

func cleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
