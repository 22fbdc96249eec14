package health

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"commerce/storefront/internal/domain"
)

const checkTimeout = 2 * time.Second

// Check probes one dependency
type Check func(ctx context.Context) error

type Handler struct {
	Checks map[string]Check
}

func (h *Handler) Liveness(_ *http.Request) (*domain.JSONResult, error) {
	return domain.NewJSONResult(), nil
}

// Readiness runs every check. Failing checks are listed in the errors and turn the answer into 503.
func (h *Handler) Readiness(r *http.Request) (*domain.JSONResult, error) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []string
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(failed) > 0 {
		return nil, fmt.Errorf("not ready %v: %w", failed, domain.ErrUnavailable)
	}
	return domain.NewJSONResult(), nil
}
