package domain

// ManagerResponse is what account and order managers hand back to handlers.
// A failed operation is Success=false with Errors, never a Go error.
type ManagerResponse[T any] struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
	Result  T        `json:"result"`
}

// OK builds a successful response
func OK[T any](result T) ManagerResponse[T] {
	return ManagerResponse[T]{Success: true, Result: result}
}

// Failed builds an unsuccessful response
func Failed[T any](errs ...string) ManagerResponse[T] {
	return ManagerResponse[T]{Success: false, Errors: errs}
}

// JSONResult is the envelope every account endpoint answers with
type JSONResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Data    any      `json:"data,omitempty"`
}

// NewJSONResult starts a successful result with an empty error list
func NewJSONResult() *JSONResult {
	return &JSONResult{Success: true, Errors: []string{}}
}

// HasErrors reports whether any error was recorded
func (r *JSONResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// AddError records an error and marks the result failed
func (r *JSONResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Success = false
}

// SetErrors folds a manager outcome into the result
func (r *JSONResult) SetErrors(success bool, errs []string) {
	if success {
		return
	}
	r.Success = false
	r.Errors = append(r.Errors, errs...)
}

// ResultFrom starts a JSON result from a manager response outcome
func ResultFrom[T any](resp ManagerResponse[T]) *JSONResult {
	r := NewJSONResult()
	r.SetErrors(resp.Success, resp.Errors)
	return r
}
