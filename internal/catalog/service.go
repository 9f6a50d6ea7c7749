package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erix3333/site-template/internal/blob"
)

// Key is the fixed blob key holding the catalog document.
const Key = "catalog/products.json"

// Prefix scopes blob listings to catalog documents.
const Prefix = "catalog/"

// Service owns the catalog document: whole-document reads with a bundled
// fallback, and admin writes that replace the document wholesale.
//
// Upsert and Delete are read-modify-write over the full document. Two
// concurrent mutations can lose the first writer's update; the admin
// surface is assumed to have a single operator at a time.
type Service struct {
	store blob.Store
}

func NewService(store blob.Store) *Service {
	return &Service{store: store}
}

// Read returns the current catalog document. A store that has never been
// written serves the bundled default catalog instead of an error.
func (s *Service) Read(ctx context.Context) ([]Product, error) {
	data, err := s.store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return defaultCatalog(), nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode stored catalog: %w", err)
	}
	return products, nil
}

// Replace validates the candidate document and stores it as the new
// catalog. Nothing is written when any element fails validation.
func (s *Service) Replace(ctx context.Context, doc []byte) (int, error) {
	products, err := DecodeProducts(doc)
	if err != nil {
		return 0, err
	}
	if err := s.write(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// Upsert merges the provided fields over the product with a matching id,
// or appends the product when the id is new, then writes the document back.
func (s *Service) Upsert(ctx context.Context, patch []byte) (int, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(patch, &probe); err != nil {
		return 0, validationErrorf("expected a product object")
	}
	if probe.ID == "" {
		return 0, validationErrorf("missing id")
	}

	products, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}

	idx := -1
	for i := range products {
		if products[i].ID == probe.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		merged := products[idx]
		if err := json.Unmarshal(patch, &merged); err != nil {
			return 0, validationErrorf("product %s: %v", probe.ID, err)
		}
		if err := validateProduct(merged); err != nil {
			return 0, err
		}
		products[idx] = merged
	} else {
		var p Product
		if err := json.Unmarshal(patch, &p); err != nil {
			return 0, validationErrorf("product %s: %v", probe.ID, err)
		}
		if err := validateProduct(p); err != nil {
			return 0, err
		}
		products = append(products, p)
	}

	if err := s.write(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// Delete removes the product with the given id and writes the document
// back. A missing id is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	products, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := s.write(ctx, kept); err != nil {
		return 0, err
	}
	return len(kept), nil
}

// List reports the blob keys stored under the catalog prefix.
func (s *Service) List(ctx context.Context) ([]string, error) {
	keys, err := s.store.List(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("list catalog blobs: %w", err)
	}
	return keys, nil
}

func (s *Service) write(ctx context.Context, products []Product) error {
	// The stored document stays human-readable.
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.store.Put(ctx, Key, data, "application/json"); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
