package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/erix3333/site-template/internal/catalog"
)

// BaseCurrency is the currency all checkout amounts are denominated in,
// matching the catalog's base currency.
const BaseCurrency = "eur"

// Shipping tiers, in minor currency units.
const (
	StandardShippingAmount int64 = 500
	ExpressShippingAmount  int64 = 990
	// FreeShippingThreshold is the subtotal at which standard shipping
	// becomes free.
	FreeShippingThreshold int64 = 5000
)

const defaultOrigin = "http://localhost:3000"

// allowedCountries for shipping address collection.
var allowedCountries = []string{
	"US", "GB", "IE", "FR", "DE", "ES", "IT", "NL", "PL", "BE", "PT", "SE",
	"DK", "AT", "FI", "GR", "RO", "HU", "CZ", "SK", "BG", "HR", "SI", "EE",
	"LV", "LT",
}

// Item is one requested cart line: a product id and a quantity. Prices
// never come from the client.
type Item struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// Contact is optional prefill metadata for the payment page.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Request is the checkout payload received from the storefront.
type Request struct {
	Items []Item   `json:"items"`
	Meta  *Contact `json:"meta,omitempty"`
}

// LineItem is a priced line resolved against the catalog.
type LineItem struct {
	Name        string
	Description string
	Image       string
	UnitAmount  int64 // minor currency units
	Quantity    int64
}

// ShippingTier is one selectable shipping option.
type ShippingTier struct {
	DisplayName string
	Amount      int64 // minor currency units
	MinDays     int64
	MaxDays     int64
}

// SessionParams is everything the payment provider needs to host the
// checkout.
type SessionParams struct {
	Currency         string
	LineItems        []LineItem
	Shipping         []ShippingTier
	AllowedCountries []string
	CustomerEmail    string
	SuccessURL       string
	CancelURL        string
}

// Session is the provider-hosted transaction context.
type Session struct {
	ID  string
	URL string
}

// Provider creates hosted checkout sessions with an external payment
// processor.
type Provider interface {
	CreateSession(ctx context.Context, params SessionParams) (Session, error)
}

// CatalogReader is the live catalog read path the builder re-validates
// against; it is never the client's snapshot.
type CatalogReader interface {
	Read(ctx context.Context) ([]catalog.Product, error)
}

// ErrEmptyCart rejects checkouts without items.
var ErrEmptyCart = errors.New("no items to check out")

// ErrNoProvider is returned when no payment provider is configured.
var ErrNoProvider = errors.New("payment provider not configured")

// NotFoundError aborts the whole checkout when a requested product id is
// not in the catalog.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ID)
}

// Builder assembles checkout sessions from cart items, pricing every line
// from the live catalog.
type Builder struct {
	catalog  CatalogReader
	provider Provider
}

func NewBuilder(reader CatalogReader, provider Provider) *Builder {
	return &Builder{catalog: reader, provider: provider}
}

// Build resolves the requested items against the catalog, derives the
// shipping tiers and asks the provider for a hosted session. Any
// unresolvable id fails the whole request; no partial session is created.
func (b *Builder) Build(ctx context.Context, req Request, origin string) (Session, error) {
	if len(req.Items) == 0 {
		return Session{}, ErrEmptyCart
	}
	if b.provider == nil {
		return Session{}, ErrNoProvider
	}

	products, err := b.catalog.Read(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("resolve catalog: %w", err)
	}
	index := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	var subtotal int64
	lines := make([]LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		p, ok := index[item.ID]
		if !ok {
			return Session{}, &NotFoundError{ID: item.ID}
		}
		qty := int64(item.Qty)
		if qty < 1 {
			qty = 1
		}
		unit := MinorUnits(p.Price)
		subtotal += unit * qty
		lines = append(lines, LineItem{
			Name:        p.Title,
			Description: p.Excerpt,
			Image:       p.Image,
			UnitAmount:  unit,
			Quantity:    qty,
		})
	}

	params := SessionParams{
		Currency:         BaseCurrency,
		LineItems:        lines,
		Shipping:         shippingTiers(subtotal),
		AllowedCountries: allowedCountries,
		SuccessURL:       originOr(origin) + "/pages/thank-you.html?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        originOr(origin) + "/pages/checkout.html",
	}
	if req.Meta != nil {
		params.CustomerEmail = req.Meta.Email
	}

	session, err := b.provider.CreateSession(ctx, params)
	if err != nil {
		return Session{}, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

// MinorUnits converts a base-currency price to minor units (cents).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func shippingTiers(subtotal int64) []ShippingTier {
	standard := StandardShippingAmount
	if subtotal >= FreeShippingThreshold {
		standard = 0
	}
	return []ShippingTier{
		{DisplayName: "Standard", Amount: standard, MinDays: 3, MaxDays: 5},
		{DisplayName: "Express", Amount: ExpressShippingAmount, MinDays: 1, MaxDays: 2},
	}
}

func originOr(origin string) string {
	if origin == "" {
		return defaultOrigin
	}
	return origin
}
