package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes values using vmihailenco/msgpack/v5. The zero value is
// ready to use. More compact than JSON for struct-heavy cached values; note
// that field naming follows `msgpack` tags, not `json` ones.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
