package books

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/5w1tchy/smart-library-api/internal/library"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, library.FieldInvalid("id", "int_parsing", "id must be an integer")
	}
	return id, nil
}

func readInput(r *http.Request) (library.BookInput, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return library.BookInput{}, library.TooLarge(tooBig.Limit)
		}
		return library.BookInput{}, library.FieldInvalid("body", "read_error", err.Error())
	}
	return library.DecodeBookInput(body)
}
