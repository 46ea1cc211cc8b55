package wire

import (
	"bytes"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		epoch   uint64
		payload []byte
	}{
		{0, nil},
		{42, []byte("hello")},
		{math.MaxUint64, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := Encode(tc.epoch, tc.payload)
		epoch, p, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if epoch != tc.epoch {
			t.Fatalf("epoch mismatch: got %d want %d", epoch, tc.epoch)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	enc := Encode(7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // trailing junk
	if _, _, err := Decode(enc); err == nil {
		t.Fatal("Decode should reject trailing bytes")
	}
}

func TestDecodeRejectsCorruptFrames(t *testing.T) {
	good := Encode(1, []byte("abc"))

	t.Run("bad_magic", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[0] = 'X'
		if _, _, err := Decode(b); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad_version", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[4] = 99
		if _, _, err := Decode(b); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("truncated_header", func(t *testing.T) {
		if _, _, err := Decode(good[:headerLen-1]); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("truncated_payload", func(t *testing.T) {
		if _, _, err := Decode(good[:len(good)-1]); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("foreign_bytes", func(t *testing.T) {
		if _, _, err := Decode([]byte("not-wire-format")); err == nil {
			t.Fatal("expected error")
		}
	})
}
