package books

import (
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"go.uber.org/zap"
)

func handleCreate(svc Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := readInput(r)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		b, err := svc.Create(r.Context(), in)
		if err != nil {
			apperr.Write(w, r, log, err)
			return
		}
		w.Header().Set("Location", "/books/"+itoa(b.ID))
		httpx.OK(w, http.StatusCreated, b, "Book created successfully")
	}
}
