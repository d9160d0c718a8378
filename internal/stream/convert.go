package stream

// ConvertReader constructs a reader which converts each value read from base
// through conv.
func ConvertReader[To, From any](base Reader[From], conv func(From) (To, error)) Reader[To] {
	return &convertReader[To, From]{base: base, conv: conv}
}

type convertReader[To, From any] struct {
	base Reader[From]
	from []From
	conv func(From) (To, error)
}

func (r *convertReader[To, From]) Read(values []To) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}

	if cap(r.from) < len(values) {
		r.from = make([]From, len(values))
	}
	from := r.from[:len(values)]

	rn, err := r.base.Read(from)
	for i, f := range from[:rn] {
		to, cerr := r.conv(f)
		if cerr != nil {
			return i, cerr
		}
		values[i] = to
	}
	return rn, err
}

// ConvertWriter constructs a writer which converts each value through conv
// before writing it to base.
func ConvertWriter[To, From any](base Writer[To], conv func(From) (To, error)) Writer[From] {
	return &convertWriter[To, From]{base: base, conv: conv}
}

type convertWriter[To, From any] struct {
	base Writer[To]
	to   []To
	conv func(From) (To, error)
}

func (w *convertWriter[To, From]) Write(values []From) (int, error) {
	w.to = w.to[:0]

	for _, from := range values {
		to, err := w.conv(from)
		if err != nil {
			return 0, err
		}
		w.to = append(w.to, to)
	}

	if _, err := w.base.Write(w.to); err != nil {
		return 0, err
	}
	return len(values), nil
}
