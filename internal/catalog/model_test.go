package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeProducts_Valid(t *testing.T) {
	doc := []byte(`[
		{"id":"p1","title":"Mug","price":10,"stock":2},
		{"id":"p2","title":"Vase","price":32.5,"excerpt":"Hand-thrown","category":"Home"}
	]`)

	products, err := DecodeProducts(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[0].Title != "Mug" || products[0].Price != 10 {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
	if stock, tracked := products[0].EffectiveStock(); !tracked || stock != 2 {
		t.Fatalf("expected tracked stock 2, got %d (tracked=%v)", stock, tracked)
	}
	if _, tracked := products[1].EffectiveStock(); tracked {
		t.Fatalf("expected untracked stock for p2")
	}
}

func TestDecodeProducts_NotAnArray(t *testing.T) {
	_, err := DecodeProducts([]byte(`{"id":"p1"}`))
	if err == nil {
		t.Fatal("expected error for non-array payload")
	}
	if !strings.Contains(err.Error(), "array") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestDecodeProducts_RequiredFields(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"missing id", `[{"title":"Mug","price":10}]`, "missing id"},
		{"empty id", `[{"id":"","title":"Mug","price":10}]`, "missing id"},
		{"missing title", `[{"id":"p1","price":10}]`, "missing title"},
		{"missing price", `[{"id":"p1","title":"Mug"}]`, "missing price"},
		{"string price", `[{"id":"p1","title":"Mug","price":"ten"}]`, "number"},
		{"negative price", `[{"id":"p1","title":"Mug","price":-1}]`, "negative"},
		{"negative stock", `[{"id":"p1","title":"Mug","price":1,"stock":-3}]`, "stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeProducts([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("message %q does not name %q", err.Error(), tc.want)
			}
		})
	}
}

// second element failing must reject the whole document
func TestDecodeProducts_AllOrNothing(t *testing.T) {
	doc := []byte(`[
		{"id":"p1","title":"Mug","price":10},
		{"id":"p2","price":5}
	]`)
	if _, err := DecodeProducts(doc); err == nil {
		t.Fatal("expected rejection when any element is invalid")
	}
}
