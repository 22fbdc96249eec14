package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/transport/web/mw"

	log "github.com/sirupsen/logrus"
)

// HandlerFunc is an endpoint body. Failures come back as errors and are turned into
// a JSON result only by JSON.
type HandlerFunc func(r *http.Request) (*domain.JSONResult, error)

// JSON adapts h to net/http
func JSON(op string, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h(r)
		if err != nil {
			status, failed := MapError(err)
			entry := Logger(r, op)
			if status >= http.StatusInternalServerError || (status == http.StatusOK && !errors.Is(err, domain.ErrValidation)) {
				entry.Errorf("❌ %v", err)
			} else {
				entry.Debugf("%v", err)
			}
			WriteResult(w, status, failed)
			return
		}
		if result == nil {
			result = domain.NewJSONResult()
		}
		WriteResult(w, http.StatusOK, result)
	}
}

const unexpectedMessage = "unexpected error"

// MapError picks the HTTP status and error payload for err. Unexpected errors keep a 200
// so clients read success=false from the body.
func MapError(err error) (int, *domain.JSONResult) {
	result := domain.NewJSONResult()

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		result.SetErrors(false, verr.Messages)
		return http.StatusOK, result
	case errors.Is(err, domain.ErrInvalidArgument):
		result.AddError("bad request")
		return http.StatusBadRequest, result
	case errors.Is(err, domain.ErrUnauthorized):
		result.AddError("unauthorized")
		return http.StatusUnauthorized, result
	case errors.Is(err, domain.ErrNotFound):
		result.AddError("not found")
		return http.StatusNotFound, result
	case errors.Is(err, domain.ErrMethodNotAllowed):
		result.AddError("method not allowed")
		return http.StatusMethodNotAllowed, result
	case errors.Is(err, domain.ErrUnavailable):
		result.AddError("service unavailable")
		return http.StatusServiceUnavailable, result
	default:
		result.AddError(unexpectedMessage)
		return http.StatusOK, result
	}
}

func WriteResult(w http.ResponseWriter, status int, result *domain.JSONResult) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("bad json: %w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

// Validator is implemented by every input model
type Validator interface {
	Validate() error
}

// DecodeValid decodes and validates an input model
func DecodeValid(r *http.Request, v Validator) error {
	if err := Decode(r, v); err != nil {
		return err
	}
	return v.Validate()
}

// Logger returns the request scoped logger
func Logger(r *http.Request, op string) *log.Entry {
	return log.WithFields(log.Fields{
		"req_id": mw.RequestIDFromCtx(r.Context()),
		"op":     op,
	})
}

// Session returns the authenticated session or ErrUnauthorized
func Session(r *http.Request) (domain.Session, error) {
	s, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return s, nil
}

// Result starts a JSON result from a manager response and attaches data on success
func Result[T any](resp domain.ManagerResponse[T], data func(T) any) *domain.JSONResult {
	result := domain.ResultFrom(resp)
	if resp.Success && data != nil {
		result.Data = data(resp.Result)
	}
	return result
}
