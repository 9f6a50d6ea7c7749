package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/erix3333/site-template/internal/checkout"
)

// SessionBuilder creates a hosted checkout session for the given cart.
type SessionBuilder interface {
	Build(ctx context.Context, req checkout.Request, origin string) (checkout.Session, error)
}

type CheckoutHandler struct {
	builder SessionBuilder
	logger  *log.Logger
}

func NewCheckoutHandler(builder SessionBuilder, logger *log.Logger) *CheckoutHandler {
	return &CheckoutHandler{builder: builder, logger: logger}
}

func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "missing items")
		return
	}

	session, err := h.builder.Build(r.Context(), req, r.Header.Get("Origin"))
	if err != nil {
		var nf *checkout.NotFoundError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "missing items")
		case errors.As(err, &nf):
			// An unresolvable id aborts the whole checkout.
			writeError(w, http.StatusInternalServerError, nf.Error())
		default:
			h.logger.Printf("checkout: %v", err)
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}
