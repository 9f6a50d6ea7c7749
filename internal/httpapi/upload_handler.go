package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/erix3333/site-template/internal/blob"
)

// maxUploadBytes bounds admin image uploads (base64 payload included).
const maxUploadBytes = 10 << 20

// UploadHandler stores admin-uploaded images in the blob store and
// returns the key they were stored under.
type UploadHandler struct {
	store  blob.Store
	logger *log.Logger
	now    func() time.Time
}

func NewUploadHandler(store blob.Store, logger *log.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger, now: time.Now}
}

type uploadRequest struct {
	Filename string `json:"filename"`
	Base64   string `json:"base64"`
}

func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Filename == "" || req.Base64 == "" {
		writeError(w, http.StatusBadRequest, "missing filename or base64")
		return
	}

	contentType, data, err := decodeDataURL(req.Base64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 payload")
		return
	}

	key := fmt.Sprintf("images/%d_%s", h.now().UnixMilli(), sanitizeFilename(req.Filename))
	if err := h.store.Put(r.Context(), key, data, contentType); err != nil {
		h.logger.Printf("upload %s: %v", key, err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": "/" + key})
}

// decodeDataURL accepts either a data URL ("data:<type>;base64,<data>")
// or bare base64.
func decodeDataURL(s string) (contentType string, data []byte, err error) {
	contentType = "application/octet-stream"
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ";base64,")
		if !found {
			return "", nil, fmt.Errorf("malformed data url")
		}
		if meta != "" {
			contentType = meta
		}
		s = payload
	}
	data, err = base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == ".." || name == "" {
		return "upload"
	}
	return name
}
