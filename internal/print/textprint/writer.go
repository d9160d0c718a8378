package textprint

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Lucop1911/vlsm/internal/stream"
)

const defaultSeparator = "--------------------------------------------------------------------------------\n"

type WriterOption[T any] func(*writer[T])

// Format sets the fmt verb applied to each value, "%v" by default so that
// values implementing fmt.Formatter control their own detail layout.
func Format[T any](format string) WriterOption[T] {
	return func(w *writer[T]) { w.format = format }
}

// Separator sets the line printed between consecutive values.
func Separator[T any](separator string) WriterOption[T] {
	return func(w *writer[T]) { w.separator = separator }
}

// NewWriter constructs a stream.WriteCloser printing each value it receives
// as a detail block, with a separator line between blocks.
func NewWriter[T any](w io.Writer, opts ...WriterOption[T]) stream.WriteCloser[T] {
	nw := &writer[T]{
		output:    bufio.NewWriter(w),
		format:    "%v",
		separator: defaultSeparator,
	}
	for _, opt := range opts {
		opt(nw)
	}
	return nw
}

type writer[T any] struct {
	output    *bufio.Writer
	format    string
	separator string
	count     int
}

func (w *writer[T]) Write(values []T) (int, error) {
	for n, v := range values {
		if w.count++; w.count > 1 {
			if _, err := io.WriteString(w.output, w.separator); err != nil {
				return n, err
			}
		}
		if _, err := fmt.Fprintf(w.output, w.format, v); err != nil {
			return n, err
		}
	}
	return len(values), nil
}

func (w *writer[T]) Close() error {
	return w.output.Flush()
}
