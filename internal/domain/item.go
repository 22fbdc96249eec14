package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ItemID = uuid.UUID

// Item is a node of the content tree. Path is slash separated and absolute,
// e.g. "/content/home/product catalog/gadgets/widget".
type Item struct {
	ID          ItemID   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Path        string   `json:"path"`
	Kind        ItemKind `json:"kind"`
	CatalogName string   `json:"catalog_name,omitempty"`
}

// Ancestor returns the name of the n-th ancestor (1 = parent) or "" when the path is too short
func (i *Item) Ancestor(n int) string {
	if i == nil || n < 1 {
		return ""
	}
	segments := SplitPath(i.Path)
	idx := len(segments) - 1 - n
	if idx < 0 {
		return ""
	}
	return segments[idx]
}

// ParentName is a shortcut for Ancestor(1)
func (i *Item) ParentName() string {
	return i.Ancestor(1)
}

// SplitPath splits a content path into its non-empty segments
func SplitPath(p string) []string {
	raw := strings.Split(p, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// JoinPath joins segments into an absolute content path
func JoinPath(parts ...string) string {
	var segments []string
	for _, p := range parts {
		segments = append(segments, SplitPath(p)...)
	}
	return "/" + strings.Join(segments, "/")
}

// ItemInput creates or replaces a content item. A missing id creates a new item.
type ItemInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	CatalogName string `json:"catalog_name"`
}

// Item converts the input, assigning a fresh id when none was given
func (in ItemInput) Item() (*Item, error) {
	id := uuid.New()
	if in.ID != "" {
		var err error
		if id, err = uuid.Parse(in.ID); err != nil {
			return nil, NewValidationError([]string{"Item id is not valid."})
		}
	}
	return &Item{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		DisplayName: strings.TrimSpace(in.DisplayName),
		Path:        JoinPath(in.Path),
		Kind:        ParseItemKind(in.Kind),
		CatalogName: strings.TrimSpace(in.CatalogName),
	}, nil
}
