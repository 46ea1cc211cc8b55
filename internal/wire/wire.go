// Package wire frames stored cache entries. Every entry carries the group
// epoch it was written under, so reads can reject entries from invalidated
// group epochs without ever enumerating keys. The frame also makes presence
// explicit: a decodable frame is a hit even when the payload decodes to the
// value type's zero value.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("memocache: corrupt entry")
	magic4     = [...]byte{'M', 'E', 'M', 'C'}
)

const headerLen = 4 + 1 + 8 + 4 // magic | ver | epoch(u64 be) | vlen(u32 be)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames a payload under a group epoch.
// Layout: magic(4) | ver(1) | epoch(u64 be) | vlen(u32 be) | payload(vlen)
func Encode(epoch uint64, payload []byte) []byte {
	out := make([]byte, 0, headerLen+len(payload))
	out = append(out, magic4[:]...)
	out = append(out, version)

	var u8 [8]byte
	binary.BigEndian.PutUint64(u8[:], epoch)
	out = append(out, u8[:]...)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	out = append(out, u4[:]...)

	return append(out, payload...)
}

// Decode validates the frame strictly: bad magic, wrong version, short
// buffers and trailing bytes all return ErrCorrupt. Foreign writes under our
// keys must read as corruption, not as values.
func Decode(b []byte) (epoch uint64, payload []byte, err error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}

	off := 5
	epoch = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen != len(b)-off { // reject truncation and trailing junk
		return 0, nil, ErrCorrupt
	}

	return epoch, b[off : off+vlen], nil
}
