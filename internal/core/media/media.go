// Package media validates and normalizes complaint evidence attachments
package media

import (
	"strings"

	perr "civicline/internal/platform/errors"
)

// DefaultBucket is used when a caller does not name a storage bucket
const DefaultBucket = "complaint-evidence"

// Item is one evidence attachment supplied at complaint creation
type Item struct {
	MediaType      string   `json:"media_type"`
	StorageBucket  string   `json:"storage_bucket,omitempty"`
	StoragePath    string   `json:"storage_path"`
	MimeType       string   `json:"mime_type,omitempty"`
	SizeBytes      *int64   `json:"size_bytes,omitempty"`
	DurationSec    *float64 `json:"duration_sec,omitempty"`
	ChecksumSHA256 string   `json:"checksum_sha256,omitempty"`
}

// Validate enforces the attachment shape before any write happens
func Validate(it Item) error {
	mt := strings.ToLower(strings.TrimSpace(it.MediaType))
	if mt != "audio" && mt != "image" {
		return perr.Validationf("media_type must be audio or image")
	}
	if strings.TrimSpace(it.StoragePath) == "" {
		return perr.Validationf("media.storage_path is required")
	}
	return nil
}

// Normalize trims string fields, applies the bucket default, and drops
// entries with no content at all. Shape violations are left in place so
// Validate can report them with a proper message
func Normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		it.MediaType = strings.ToLower(strings.TrimSpace(it.MediaType))
		it.StorageBucket = strings.TrimSpace(it.StorageBucket)
		it.StoragePath = strings.TrimSpace(it.StoragePath)
		it.MimeType = strings.TrimSpace(it.MimeType)
		it.ChecksumSHA256 = strings.TrimSpace(it.ChecksumSHA256)

		if it.MediaType == "" && it.StoragePath == "" {
			continue
		}
		if it.StorageBucket == "" {
			it.StorageBucket = DefaultBucket
		}
		out = append(out, it)
	}
	return out
}
