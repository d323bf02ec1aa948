// Package cache stores merged word records keyed by a hash of the word,
// expiring them after a fixed time-to-live.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
)

// DefaultTTL is how long an entry stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// keyLen is the number of hex characters kept from the digest.
const keyLen = 16

var errEmptyPayload = errors.New("cache: empty payload")

// Key returns the storage key of word: the first 16 hex characters of the
// SHA-256 of its lowercase form.
func Key(word string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(word)))
	return hex.EncodeToString(sum[:])[:keyLen]
}

// Entry is the stored envelope around a record.
type Entry struct {
	Timestamp float64         `json:"_ts"`
	Payload   json.RawMessage `json:"payload"`
}

// StoredAt converts the unix-seconds timestamp to a time.
func (e Entry) StoredAt() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Expired reports whether the entry is older than ttl at now.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt()) > ttl
}

// Encode wraps record in an entry stamped with now.
func Encode(record *domain.WordRecord, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("cache: encode payload: %w", err)
	}
	data, err := json.Marshal(Entry{
		Timestamp: float64(now.UnixNano()) / 1e9,
		Payload:   payload,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: encode entry: %w", err)
	}
	return data, nil
}

// Decode parses an entry envelope.
func Decode(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("cache: decode entry: %w", err)
	}
	return e, nil
}

// Record parses the entry payload. An empty or null payload is an error.
func (e Entry) Record() (*domain.WordRecord, error) {
	raw := strings.TrimSpace(string(e.Payload))
	if raw == "" || raw == "null" {
		return nil, errEmptyPayload
	}
	var rec domain.WordRecord
	if err := json.Unmarshal(e.Payload, &rec); err != nil {
		return nil, fmt.Errorf("cache: decode payload: %w", err)
	}
	return &rec, nil
}
