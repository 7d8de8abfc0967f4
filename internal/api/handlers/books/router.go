package books

import (
	"context"
	"net/http"
	"net/url"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"github.com/5w1tchy/smart-library-api/internal/models"
	"go.uber.org/zap"
)

const allowCollection = "GET, HEAD, POST, OPTIONS"
const allowItem = "GET, HEAD, PUT, PATCH, DELETE, OPTIONS"

// Service is what the book handlers need from the library layer.
type Service interface {
	ParseListParams(q url.Values) (library.ListParams, error)
	List(ctx context.Context, p library.ListParams) (library.Page, error)
	Get(ctx context.Context, id int64) (models.Book, error)
	Create(ctx context.Context, in library.BookInput) (models.Book, error)
	Update(ctx context.Context, id int64, in library.BookInput) (models.Book, error)
	Delete(ctx context.Context, id int64) (models.Book, error)
}

// Mount registers the book routes under prefix (e.g. "/books"). Both the
// bare and trailing-slash collection paths are served.
func Mount(mux *http.ServeMux, prefix string, svc Service, log *zap.Logger) {
	list, create := handleList(svc, log), handleCreate(svc, log)
	update := handleUpdate(svc, log)

	mux.Handle("GET "+prefix, list)
	mux.Handle("GET "+prefix+"/{$}", list)
	mux.Handle("POST "+prefix, create)
	mux.Handle("POST "+prefix+"/{$}", create)

	mux.Handle("GET "+prefix+"/{id}", handleGet(svc, log))
	mux.Handle("PUT "+prefix+"/{id}", update)
	mux.Handle("PATCH "+prefix+"/{id}", update)
	mux.Handle("DELETE "+prefix+"/{id}", handleDelete(svc, log))

	mux.Handle(prefix, methodNotAllowed(allowCollection))
	mux.Handle(prefix+"/{$}", methodNotAllowed(allowCollection))
	mux.Handle(prefix+"/{id}", methodNotAllowed(allowItem))
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		apperr.Write(w, r, nil, library.MethodNotAllowed(r.Method))
	}
}
