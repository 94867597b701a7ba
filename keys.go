package chrono

import (
	"slices"
	"strings"
)

const keySeparator = "|"

// PairKey returns the order-independent key of a pair comparison.
func PairKey(a, b string) string {
	return joinKey([]string{a, b})
}

// TripletKey returns the order-independent key of a triplet comparison.
func TripletKey(a, b, c string) string {
	return joinKey([]string{a, b, c})
}

func joinKey(ids []string) string {
	slices.Sort(ids)
	return strings.Join(ids, keySeparator)
}

// KeySet is a read-only set of pair or triplet keys used as a recency exclusion.
type KeySet interface {
	Contains(key string) bool
	Len() int
}

// Keys is a map-backed KeySet.
type Keys map[string]struct{}

// NewKeys builds a Keys set from the given keys.
func NewKeys(keys ...string) Keys {
	k := make(Keys, len(keys))
	for _, key := range keys {
		k[key] = struct{}{}
	}
	return k
}

// Contains reports whether key is in the set. A nil Keys is empty.
func (k Keys) Contains(key string) bool {
	_, ok := k[key]
	return ok
}

// Len returns the number of keys.
func (k Keys) Len() int {
	return len(k)
}

// RecentWindow is a fixed-size, newest-first sliding window of keys.
type RecentWindow struct {
	size int
	keys []string
}

// NewRecentWindow creates a window holding at most size keys.
func NewRecentWindow(size int) *RecentWindow {
	return &RecentWindow{size: size, keys: make([]string, 0, size)}
}

// Push records key as the newest entry and truncates the window to its size.
// Empty keys are ignored.
func (w *RecentWindow) Push(key string) {
	if key == "" || w.size <= 0 {
		return
	}
	w.keys = slices.Insert(w.keys, 0, key)
	if len(w.keys) > w.size {
		w.keys = w.keys[:w.size]
	}
}

// Contains reports whether key is within the window.
func (w *RecentWindow) Contains(key string) bool {
	return slices.Contains(w.keys, key)
}

// Len returns the number of keys currently held.
func (w *RecentWindow) Len() int {
	return len(w.keys)
}

// Keys returns a copy of the window contents, newest first.
func (w *RecentWindow) Keys() []string {
	return slices.Clone(w.keys)
}
