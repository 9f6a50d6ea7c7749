package catalog

import (
	"encoding/json"
	"fmt"
)

// Product is one sellable item. Field names are part of the stored
// document format and must not change.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Excerpt     string  `json:"excerpt,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}

// EffectiveStock reports the tracked stock count. tracked is false when
// the product has no stock field, which means availability is unbounded.
func (p Product) EffectiveStock() (stock int, tracked bool) {
	if p.Stock == nil {
		return 0, false
	}
	return *p.Stock, true
}

// ValidationError describes a malformed catalog write payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// requiredFields mirrors Product with pointer fields so that absent and
// mistyped required fields can be told apart from zero values.
type requiredFields struct {
	ID    *string      `json:"id"`
	Title *string      `json:"title"`
	Price *json.Number `json:"price"`
}

// DecodeProducts parses a candidate catalog document and checks every
// element against the product invariant: non-empty id, non-empty title,
// non-negative numeric price. Any violation rejects the whole document.
func DecodeProducts(data []byte) ([]Product, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, validationErrorf("expected an array of products")
	}

	products := make([]Product, 0, len(elems))
	for i, raw := range elems {
		if err := validateElement(i, raw); err != nil {
			return nil, err
		}
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, validationErrorf("product %d: %v", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func validateElement(i int, raw json.RawMessage) error {
	var req requiredFields
	if err := json.Unmarshal(raw, &req); err != nil {
		return validationErrorf("product %d: id, title and price must be string, string and number", i)
	}
	if req.ID == nil || *req.ID == "" {
		return validationErrorf("product %d: missing id", i)
	}
	if req.Title == nil || *req.Title == "" {
		return validationErrorf("product %d: missing title", i)
	}
	if req.Price == nil {
		return validationErrorf("product %d: missing price", i)
	}
	price, err := req.Price.Float64()
	if err != nil {
		return validationErrorf("product %d: price must be a number", i)
	}
	if price < 0 {
		return validationErrorf("product %d: price must not be negative", i)
	}
	if s := stockOf(raw); s != nil && *s < 0 {
		return validationErrorf("product %d: stock must not be negative", i)
	}
	return nil
}

func stockOf(raw json.RawMessage) *int {
	var aux struct {
		Stock *int `json:"stock"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil
	}
	return aux.Stock
}

// validateProduct applies the element invariant to an already-decoded
// product, used after upsert merges.
func validateProduct(p Product) error {
	if p.ID == "" {
		return validationErrorf("product: missing id")
	}
	if p.Title == "" {
		return validationErrorf("product %s: missing title", p.ID)
	}
	if p.Price < 0 {
		return validationErrorf("product %s: price must not be negative", p.ID)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return validationErrorf("product %s: stock must not be negative", p.ID)
	}
	return nil
}
