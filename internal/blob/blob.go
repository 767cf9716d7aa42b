// Package blob is a filesystem-backed object store for uploaded
// images. Objects live under <root>/<bucket>/<key> and are served
// publicly under /uploads/<bucket>/<key>.
package blob

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Buckets in use.
const (
	BucketItemImages = "item-images"
	BucketAvatars    = "avatars"
)

// PublicPrefix is the URL prefix under which stored objects resolve.
const PublicPrefix = "/uploads/"

// Store writes and serves uploaded binaries.
type Store struct {
	root string
}

// NewStore creates the storage root if needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Upload stores data under bucket/key and returns the public URL.
// Keys may contain slashes (user-namespaced paths); anything escaping
// the bucket is rejected.
func (s *Store) Upload(bucket, key string, data []byte) (string, error) {
	// Check the raw key: Clean would silently swallow ".." segments.
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	dst := filepath.Join(s.root, bucket, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("creating object directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("writing object: %w", err)
	}

	return PublicPrefix + bucket + cleaned, nil
}

// Handler serves stored objects under PublicPrefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(PublicPrefix, http.FileServer(http.Dir(s.root)))
}

// ItemKey derives the storage key for an uploaded report image:
// namespaced by the owning user, timestamped, original extension kept.
func ItemKey(userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d%s", userID, time.Now().UnixMilli(), ext)
}
