package keyer

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
)

func TestSanitizeShortKeyUnchanged(t *testing.T) {
	got, err := Sanitize("[cached]foo(((),{}))", DefaultMaxKeyLength)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got != "[cached]foo(((),{}))" {
		t.Fatalf("short key should pass through, got %q", got)
	}
}

func TestSanitizeStripsControlRunes(t *testing.T) {
	got, err := Sanitize("a\nb\tc\x00d\x7fe f", DefaultMaxKeyLength)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got != "abcdef" {
		t.Fatalf("control runes not stripped: %q", got)
	}
	for _, r := range got {
		if r <= 32 || r == 127 {
			t.Fatalf("control rune %d survived sanitization", r)
		}
	}
}

func TestSanitizeBoundsLongKeys(t *testing.T) {
	key := "12345678901234567890123456789012345678901234567890"
	if len(key) < 40 {
		t.Fatal("test key too short")
	}
	got, err := Sanitize(key, 40)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if len([]rune(got)) > 40 {
		t.Fatalf("sanitized length %d exceeds max 40", len([]rune(got)))
	}

	sum := md5.Sum([]byte(key))
	want := key[:40-33] + "-" + hex.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSanitizeBoundsUnicode(t *testing.T) {
	// multibyte runes; lengths are counted in runes, not bytes
	for _, n := range []int{240, 500} {
		key := strings.Repeat("й", n)
		got, err := Sanitize(key, DefaultMaxKeyLength)
		if err != nil {
			t.Fatalf("Sanitize(%d runes): %v", n, err)
		}
		if rl := len([]rune(got)); rl > DefaultMaxKeyLength {
			t.Fatalf("%d-rune input: sanitized to %d runes, max %d", n, rl, DefaultMaxKeyLength)
		}
	}
}

func TestSanitizeDeterministic(t *testing.T) {
	key := strings.Repeat("x", 1000)
	a, err := Sanitize(key, DefaultMaxKeyLength)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	b, err := Sanitize(key, DefaultMaxKeyLength)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if a != b {
		t.Fatalf("same input produced different keys: %q vs %q", a, b)
	}
}

func TestSanitizeRejectsTinyMaxLength(t *testing.T) {
	for _, max := range []int{0, 1, 33, MinMaxKeyLength - 1} {
		if _, err := Sanitize("anything", max); err == nil {
			t.Fatalf("maxLength=%d should be rejected", max)
		}
	}
	if _, err := Sanitize("anything", MinMaxKeyLength); err != nil {
		t.Fatalf("maxLength=%d should be accepted: %v", MinMaxKeyLength, err)
	}
}
