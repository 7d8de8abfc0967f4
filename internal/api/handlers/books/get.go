package books

import (
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"go.uber.org/zap"
)

func handleGet(svc Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		b, err := svc.Get(r.Context(), id)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		httpx.OK(w, http.StatusOK, b, "")
	}
}
