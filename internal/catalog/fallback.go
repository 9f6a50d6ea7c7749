package catalog

import (
	_ "embed"
	"encoding/json"
)

// The bundled default catalog, served until an admin writes the first
// document to the blob store.
//
//go:embed products.json
var fallbackJSON []byte

var fallbackProducts = mustDecodeFallback()

func mustDecodeFallback() []Product {
	var products []Product
	if err := json.Unmarshal(fallbackJSON, &products); err != nil {
		panic("catalog: bundled products.json is invalid: " + err.Error())
	}
	return products
}

func defaultCatalog() []Product {
	out := make([]Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
