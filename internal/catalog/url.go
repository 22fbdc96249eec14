package catalog

import (
	"net/url"
	"strings"
)

// URLService turns friendly URL segments back into catalog ids
type URLService interface {
	ExtractItemID(raw string) string
}

type urlService struct{}

func NewURLService() URLService {
	return urlService{}
}

// ExtractItemID decodes a segment such as "Flat%20Screen_TV-2000" into "tv-2000".
// The id is the part after the last underscore, lowercased.
func (urlService) ExtractItemID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}

	if idx := strings.LastIndex(decoded, "_"); idx >= 0 {
		decoded = decoded[idx+1:]
	}

	return strings.ToLower(strings.TrimSpace(decoded))
}

// BuildItemSegment is the inverse of ExtractItemID for a display name and id
func BuildItemSegment(displayName, id string) string {
	id = strings.ToLower(id)
	displayName = strings.TrimSpace(strings.ReplaceAll(displayName, "_", " "))
	if displayName == "" {
		return url.PathEscape(id)
	}
	return url.PathEscape(displayName + "_" + id)
}
