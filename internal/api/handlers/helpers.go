package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body into dst and validates it when val is set
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, val *validator.Validator) *errors.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest("Invalid request body")
	}
	if val != nil {
		if verrs := val.Validate(dst); len(verrs) > 0 {
			return errors.ValidationError("Validation failed", verrs)
		}
	}
	return nil
}

// idParam parses the {id} URL parameter
func idParam(r *http.Request) (int64, *errors.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid ID")
	}
	return id, nil
}
