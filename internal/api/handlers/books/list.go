package books

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"go.uber.org/zap"
)

func handleList(svc Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := svc.ParseListParams(r.URL.Query())
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		page, err := svc.List(r.Context(), params)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}

		h := w.Header()
		h.Set("X-Total-Count", strconv.Itoa(page.Pagination.Total))
		h.Set("X-Page", strconv.Itoa(page.Pagination.Page))
		h.Set("X-Per-Page", strconv.Itoa(page.Pagination.Limit))
		httpx.Paged(w, page.Books, page.Pagination)
	}
}
