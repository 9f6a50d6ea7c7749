package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminRoutesRejectMissingCredential(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	adminRequests := []*http.Request{
		httptest.NewRequest(http.MethodPut, "/api/catalog", nil),
		httptest.NewRequest(http.MethodPatch, "/api/catalog", nil),
		httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil),
		httptest.NewRequest(http.MethodGet, "/api/catalog/list", nil),
		httptest.NewRequest(http.MethodPost, "/api/upload", nil),
	}

	for _, req := range adminRequests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestAdminRoutesRejectWrongCredential(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil)
	req.Header.Set("X-Admin-Key", "not-the-secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerTokenAccepted(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// an unset server secret disables the whole admin surface
func TestEmptyServerSecretRejectsEverything(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/catalog?id=p1", nil)
	req.Header.Set("X-Admin-Key", "")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestReadCatalogNeedsNoAuth(t *testing.T) {
	r := testRouter(&fakeCatalog{}, nil, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
