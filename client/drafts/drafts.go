// Package drafts autosaves unfinished posts to client-side storage and
// prepares post forms for submission.
package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxAge is how long a saved draft stays restorable.
const MaxAge = 60 * time.Minute

const keyPrefix = "draft-"

// Form modes.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

// KV is the storage drafts are written to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Draft is an unsaved post form. Tags is the raw comma-separated input.
// Timestamp is the save time in Unix milliseconds.
type Draft struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	Tags          string `json:"tags"`
	CoverImageURL string `json:"coverImageUrl"`
	Timestamp     int64  `json:"timestamp"`
}

// SavedAt returns Timestamp as a time.
func (d Draft) SavedAt() time.Time { return time.UnixMilli(d.Timestamp) }

// Key names the draft slot for a form: draft-{mode}-{id}, with "new" when
// the post has no id yet.
func Key(mode string, id int64) string {
	slot := "new"
	if id > 0 {
		slot = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s%s-%s", keyPrefix, mode, slot)
}

// Store reads and writes drafts.
type Store struct {
	kv  KV
	now func() time.Time
}

// NewStore returns a Store over kv.
func NewStore(kv KV) *Store { return &Store{kv: kv, now: time.Now} }

// Save stamps d with the current time and stores it under key, replacing
// any previous draft.
func (s *Store) Save(ctx context.Context, key string, d Draft) (Draft, error) {
	d.Timestamp = s.now().UnixMilli()
	raw, err := json.Marshal(d)
	if err != nil {
		return Draft{}, err
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return Draft{}, fmt.Errorf("save draft %s: %w", key, err)
	}
	return d, nil
}

// Load returns the draft under key. Drafts older than MaxAge, and values that
// do not parse, are reported as absent.
func (s *Store) Load(ctx context.Context, key string) (Draft, bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return Draft{}, false, fmt.Errorf("load draft %s: %w", key, err)
	}
	if !ok {
		return Draft{}, false, nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}, false, nil
	}
	if s.now().Sub(d.SavedAt()) >= MaxAge {
		return Draft{}, false, nil
	}
	return d, true, nil
}

// Discard removes the draft under key. Missing drafts are not an error.
func (s *Store) Discard(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

// Keys lists every stored draft key, expired ones included.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.kv.Keys(ctx, keyPrefix)
}

// IsKey reports whether key names a draft slot.
func IsKey(key string) bool { return strings.HasPrefix(key, keyPrefix) }

// ParseKey splits a key built by Key. id is 0 for "new".
func ParseKey(key string) (mode string, id int64, ok bool) {
	rest, found := strings.CutPrefix(key, keyPrefix)
	if !found {
		return "", 0, false
	}
	mode, slot, found := strings.Cut(rest, "-")
	if !found || mode == "" {
		return "", 0, false
	}
	if slot == "new" {
		return mode, 0, true
	}
	id, err := strconv.ParseInt(slot, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return mode, id, true
}
