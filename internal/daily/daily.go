// internal/daily/daily.go

// Package daily picks a deterministic word per calendar day, so every
// player fetching the daily list on the same date gets the same solution.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Word returns the day's word from list, or "" when list is empty.
func Word(date time.Time, salt string, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[WordIndex(date, salt, len(list))]
}
