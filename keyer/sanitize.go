package keyer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// DefaultMaxKeyLength is the classic memcached key limit.
const DefaultMaxKeyLength = 250

// MinMaxKeyLength is the smallest usable max length: one separator plus a
// 32-hex-char md5 digest plus at least one rune of the original key.
const MinMaxKeyLength = 34

// hashTailLen is the sanitized tail: "-" + 32 hex chars.
const hashTailLen = 33

// Sanitize makes raw safe for key-length-limited, whitespace-hostile stores.
// It removes every rune with code point in [0,32] or 127, then, if the
// filtered string is longer than maxLength runes, replaces the tail with
// "-" + md5(filtered) so the result stays within maxLength.
//
// Pure and stable across processes: the same input always yields the same
// output, so sanitized keys written by one replica are addressable by another.
func Sanitize(raw string, maxLength int) (string, error) {
	if maxLength < MinMaxKeyLength {
		return "", fmt.Errorf("keyer: max key length %d is too small to hold the hash tail (min %d)", maxLength, MinMaxKeyLength)
	}

	filtered := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r <= 32 || r == 127 {
			continue
		}
		filtered = append(filtered, r)
	}
	if len(filtered) <= maxLength {
		return string(filtered), nil
	}

	sum := md5.Sum([]byte(string(filtered)))
	head := string(filtered[:maxLength-hashTailLen])
	return head + "-" + hex.EncodeToString(sum[:]), nil
}
