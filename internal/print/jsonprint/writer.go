package jsonprint

import (
	"encoding/json"
	"io"

	"github.com/Lucop1911/vlsm/internal/stream"
)

// NewWriter constructs a stream.WriteCloser which encodes the values it
// receives to w as a sequence of indented JSON documents.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return &writer[T]{enc: enc}
}

type writer[T any] struct {
	enc *json.Encoder
}

func (w *writer[T]) Write(values []T) (int, error) {
	for i, v := range values {
		if err := w.enc.Encode(v); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

func (w *writer[T]) Close() error { return nil }
