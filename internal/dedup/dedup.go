// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup collapses normalized results that refer to the same
// underlying entity. It is a single stable pass: the first occurrence of
// each key survives, in its original position relative to other
// survivors.
package dedup

import (
	"github.com/pdiddy/job-hunter/internal/normalize"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// KeyFunc returns the dedup key for a result. An empty key means the
// result is never treated as a duplicate.
type KeyFunc func(types.NormalizedResult) string

// Key is the default dedup key: the lower-cased registrable domain, or the
// normalized company name when the domain is unavailable.
func Key(r types.NormalizedResult) string {
	if d := normalize.RegistrableDomain(r.Domain); d != "" {
		return "domain:" + d
	}
	if c := normalize.CompanyKey(r.CompanyName); c != "" {
		return "company:" + c
	}
	return ""
}

// ListingKey keys job postings by domain, title and company, so distinct
// postings hosted on one job board are kept apart.
func ListingKey(r types.NormalizedResult) string {
	base := Key(r)
	if base == "" {
		return ""
	}
	return base + "|title:" + normalize.CompanyKey(r.Title) + "|company:" + normalize.CompanyKey(r.CompanyName)
}

// ForMode returns the key function for a configured dedup mode.
func ForMode(mode types.DedupMode) KeyFunc {
	if mode == types.DedupListing {
		return ListingKey
	}
	return Key
}

// Deduplicate keeps the first result per Key and reports how many were
// removed.
func Deduplicate(results []types.NormalizedResult) ([]types.NormalizedResult, int) {
	return DeduplicateBy(results, Key)
}

// DeduplicateBy keeps the first result per key. It runs in one pass with a
// set of seen keys and never reorders survivors.
func DeduplicateBy(results []types.NormalizedResult, key KeyFunc) ([]types.NormalizedResult, int) {
	seen := make(map[string]struct{}, len(results))
	out := make([]types.NormalizedResult, 0, len(results))
	removed := 0

	for _, r := range results {
		k := key(r)
		if k != "" {
			if _, dup := seen[k]; dup {
				removed++
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, r)
	}
	return out, removed
}
