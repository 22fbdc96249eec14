package domain

import "github.com/google/uuid"

const CacheNameFriendlyURLs = "FriendlyUrlsCache"

// NotFoundMarker is cached for friendly URLs that were looked up and confirmed absent
var NotFoundMarker = uuid.Nil.String()

// Cache keys live in one place so they don't drift across packages.
func CacheKeyFriendlyURL(id, catalogName string) string {
	return "FriendlyUrl-" + id + "-" + catalogName
}

func CacheKeyTokenJTI(jti string) string {
	return "jti:" + jti
}
