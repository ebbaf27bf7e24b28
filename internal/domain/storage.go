package domain

import (
	"context"
	"io"
	"strings"
)

// ImageStore is the object-storage collaborator for uploaded images.
// Upload returns the public URL of the stored object. KeyFromURL is the
// inverse mapping: it reports whether a URL names an object in this store
// and, if so, under which key. URLs outside the store (externally hosted
// images) report false and must never be deleted.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, bool)
}

// ImageKeyFromURL extracts the object key from a public URL served under
// publicBaseURL. Only URLs that start with that base are recognized;
// anything else returns false.
func ImageKeyFromURL(rawURL, publicBaseURL string) (string, bool) {
	base := strings.TrimSuffix(publicBaseURL, "/")
	if base == "" || rawURL == "" {
		return "", false
	}
	if !strings.HasPrefix(rawURL, base+"/") {
		return "", false
	}
	key := strings.Trim(strings.TrimPrefix(rawURL, base), "/")
	if key == "" {
		return "", false
	}
	return key, true
}
