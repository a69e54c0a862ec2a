package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDuration is returned when a share duration unit is unknown or the
// multiplier is not a positive integer.
var ErrInvalidDuration = errors.New("invalid share duration")

// durationUnits maps share duration units to their length. "forever" is
// handled separately and never appears here.
var durationUnits = map[string]time.Duration{
	"hour":  time.Hour,
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
	"year":  365 * 24 * time.Hour,
}

// UnitForever marks a share that never expires.
const UnitForever = "forever"

// ShareRecord describes one public, revocable, optionally time-limited link
// to a single file. Records are stored as JSON values in the share store.
type ShareRecord struct {
	ID        string `json:"id"`
	FullPath  string `json:"fullPath"` // "<repo>/<path inside repo>"
	CreatedAt int64  `json:"createdAt"`
	ExpireAt  *int64 `json:"expireAt"` // unix ms; nil means never
	Active    bool   `json:"active"`
	Visits    int64  `json:"visits"`
}

// ExpireAtFor computes the absolute expiry for a duration request, in unix
// milliseconds relative to now. A nil result means the share never expires.
func ExpireAtFor(now time.Time, unit string, value int) (*int64, error) {
	if unit == UnitForever {
		return nil, nil
	}
	d, ok := durationUnits[unit]
	if !ok || value <= 0 {
		return nil, ErrInvalidDuration
	}
	expireAt := now.UnixMilli() + int64(value)*d.Milliseconds()
	return &expireAt, nil
}

// IsExpired reports whether the record's expiry has passed at the given time.
// Records without an expiry never expire.
func (r *ShareRecord) IsExpired(now time.Time) bool {
	if r.ExpireAt == nil {
		return false
	}
	return now.UnixMilli() > *r.ExpireAt
}

// IsResolvable reports whether a public resolution of this record should
// succeed: the record must be active and not expired.
func (r *ShareRecord) IsResolvable(now time.Time) bool {
	return r.Active && !r.IsExpired(now)
}

// FileName returns the last segment of the shared path, for display.
func (r *ShareRecord) FileName() string {
	parts := strings.Split(r.FullPath, "/")
	return parts[len(parts)-1]
}

// SplitVirtualPath splits a virtual path into the repository name and the
// path inside that repository. Leading/trailing slashes and empty segments
// are dropped; an empty relative path addresses the repository root.
func SplitVirtualPath(fullPath string) (repo, relPath string) {
	var parts []string
	for _, p := range strings.Split(fullPath, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], "/")
}
