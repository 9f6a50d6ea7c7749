package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erix3333/site-template/internal/catalog"
)

type fakeCatalog struct {
	products []catalog.Product
	keys     []string
	readErr  error
	writeErr error

	replaced []byte
	upserted []byte
	deleted  string
}

func (f *fakeCatalog) Read(ctx context.Context) ([]catalog.Product, error) {
	return f.products, f.readErr
}

func (f *fakeCatalog) Replace(ctx context.Context, doc []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.replaced = doc
	return 2, nil
}

func (f *fakeCatalog) Upsert(ctx context.Context, patch []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.upserted = patch
	return 3, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.deleted = id
	return 1, nil
}

func (f *fakeCatalog) List(ctx context.Context) ([]string, error) {
	return f.keys, f.readErr
}

type recordedEvent struct {
	action string
	count  int
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (f *fakePublisher) PublishCatalogUpdated(ctx context.Context, action string, count int) error {
	f.events = append(f.events, recordedEvent{action: action, count: count})
	return f.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(svc CatalogService, pub CatalogEventsPublisher, key string) http.Handler {
	catalogH := NewCatalogHandler(svc, pub, testLogger())
	checkoutH := NewCheckoutHandler(&fakeBuilder{}, testLogger())
	uploadH := NewUploadHandler(newUploadStore(), testLogger())
	return NewRouter(catalogH, checkoutH, uploadH, StaticKeyVerifier{Key: key})
}

func TestHealth(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "ok" {
		t.Fatalf("expected body \"ok\", got %q", body)
	}
}

func TestReadCatalog(t *testing.T) {
	svc := &fakeCatalog{products: []catalog.Product{{ID: "p1", Title: "Mug", Price: 10}}}
	r := testRouter(svc, nil, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=30") {
		t.Fatalf("expected cacheable response, got %q", cc)
	}

	var products []catalog.Product
	if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected body: %+v", products)
	}
}

func TestReadCatalogUpstreamError(t *testing.T) {
	svc := &fakeCatalog{readErr: errors.New("store down")}
	r := testRouter(svc, nil, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestReplaceCatalog(t *testing.T) {
	svc := &fakeCatalog{}
	pub := &fakePublisher{}
	r := testRouter(svc, pub, "secret")

	body := bytes.NewBufferString(`[{"id":"p1","title":"Mug","price":10}]`)
	req := httptest.NewRequest(http.MethodPut, "/api/catalog", body)
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.OK || resp.Count != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if svc.replaced == nil {
		t.Fatal("service did not receive the document")
	}
	if len(pub.events) != 1 || pub.events[0].action != "replace" || pub.events[0].count != 2 {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestReplaceCatalogValidationError(t *testing.T) {
	svc := &fakeCatalog{writeErr: &catalog.ValidationError{Msg: "product 0: missing title"}}
	r := testRouter(svc, nil, "secret")

	req := httptest.NewRequest(http.MethodPut, "/api/catalog", bytes.NewBufferString(`[{"id":"p1"}]`))
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing title") {
		t.Fatalf("expected message to name the field, got %s", rec.Body.String())
	}
}

func TestUpsertCatalog(t *testing.T) {
	svc := &fakeCatalog{}
	pub := &fakePublisher{}
	r := testRouter(svc, pub, "secret")

	req := httptest.NewRequest(http.MethodPatch, "/api/catalog", bytes.NewBufferString(`{"id":"p1","price":12}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if string(svc.upserted) != `{"id":"p1","price":12}` {
		t.Fatalf("unexpected patch: %s", svc.upserted)
	}
	if len(pub.events) != 1 || pub.events[0].action != "upsert" {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestDeleteCatalog(t *testing.T) {
	svc := &fakeCatalog{}
	r := testRouter(svc, nil, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.deleted != "p1" {
		t.Fatalf("expected delete of p1, got %q", svc.deleted)
	}
}

func TestDeleteCatalogRequiresID(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCatalogBlobs(t *testing.T) {
	svc := &fakeCatalog{keys: []string{"catalog/products.json"}}
	r := testRouter(svc, nil, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/list", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Blobs []string `json:"blobs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Blobs) != 1 {
		t.Fatalf("unexpected blobs: %v", resp.Blobs)
	}
}

// a failed event publish never fails the write
func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc := &fakeCatalog{}
	pub := &fakePublisher{err: errors.New("broker down")}
	r := testRouter(svc, pub, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
