package sales

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"conputodo.GO/config"
	salesEntity "conputodo.GO/model/entity/sales"
	catalogRepo "conputodo.GO/model/repository/catalog"
	salesRepo "conputodo.GO/model/repository/sales"
	settingsRepo "conputodo.GO/model/repository/settings"
)

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	ProductID string `json:"id"`
	Qty       int    `json:"qty"`
}

// CheckoutInput is the storefront checkout payload. There is no payment
// step: the order is recorded and the buyer is handed off to WhatsApp.
type CheckoutInput struct {
	ClientName    string         `json:"client_name"`
	ClientPhone   string         `json:"client_phone"`
	ClientAddress string         `json:"client_address"`
	Items         []CheckoutItem `json:"items"`
}

// CheckoutResult is the stored order plus the WhatsApp handoff URL.
type CheckoutResult struct {
	Order       *salesEntity.Order `json:"order"`
	WhatsAppURL string             `json:"whatsapp_url"`
}

// Checkout snapshots the cart against the current catalog and exchange
// rates and appends an order. Titles, prices and rates are frozen at
// order time and never recomputed.
func Checkout(db *gorm.DB, in CheckoutInput) (*CheckoutResult, error) {
	if in.ClientName == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	products, err := catalogRepo.NewProductRepository(db)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	byID, err := products.ByIDs(ids, 0)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	var lines []salesEntity.OrderItem
	totalUSD := 0.0
	for _, item := range in.Items {
		if item.Qty <= 0 {
			return nil, fmt.Errorf("product %q: quantity must be positive", item.ProductID)
		}
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %q not found", item.ProductID)
		}
		lines = append(lines, salesEntity.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Qty:       item.Qty,
			Price:     p.PriceUSD,
		})
		totalUSD += float64(item.Qty) * p.PriceUSD
	}
	totalUSD = round2(totalUSD)

	rates, err := settingsRepo.NewSettingsRepository(db).Global()
	if err != nil {
		return nil, fmt.Errorf("load exchange rates: %w", err)
	}

	order := &salesEntity.Order{
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		ClientAddress:   in.ClientAddress,
		TotalUSD:        totalUSD,
		TotalVES:        round2(totalUSD * rates.ExchangeRate),
		ExchangeRate:    rates.ExchangeRate,
		ExchangeRateBCV: rates.ExchangeRateBCV,
		Status:          salesEntity.StatusPending,
	}
	if err := order.SetItems(lines); err != nil {
		return nil, err
	}
	if err := salesRepo.NewOrderRepository(db).Create(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &CheckoutResult{
		Order:       order,
		WhatsAppURL: whatsAppURL(order, lines),
	}, nil
}

// whatsAppURL builds the wa.me handoff link with the order summary
// pre-filled as the message text.
func whatsAppURL(o *salesEntity.Order, lines []salesEntity.OrderItem) string {
	number := config.AppConfig.WhatsAppNumber
	if number == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hola! Quiero confirmar mi pedido #%d:\n", o.OrderID)
	for _, l := range lines {
		fmt.Fprintf(&b, "- %dx %s ($%.2f)\n", l.Qty, l.Title, l.Price)
	}
	fmt.Fprintf(&b, "Total: $%.2f", o.TotalUSD)
	if o.TotalVES > 0 {
		fmt.Fprintf(&b, " (Bs. %.2f)", o.TotalVES)
	}
	fmt.Fprintf(&b, "\nNombre: %s", o.ClientName)
	if o.ClientAddress != "" {
		fmt.Fprintf(&b, "\nDirección: %s", o.ClientAddress)
	}

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
