package books

import (
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"go.uber.org/zap"
)

// handleUpdate serves both PUT and PATCH with merge semantics: fields that
// are absent or null keep their stored value.
func handleUpdate(svc Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		in, err := readInput(r)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		b, err := svc.Update(r.Context(), id, in)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		httpx.OK(w, http.StatusOK, b, "Book updated successfully")
	}
}
