package books

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"go.uber.org/zap"
)

func handleDelete(svc Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		b, err := svc.Delete(r.Context(), id)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		httpx.OK(w, http.StatusOK, b, "Book with ID "+itoa(b.ID)+" deleted successfully")
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
