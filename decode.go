package amf3

import (
	"unicode/utf8"

	"github.com/chaisql/amf3/internal/encoding"
	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/chaisql/amf3/internal/reftable"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
)

// A Decoder decodes AMF3 messages. It holds no state between calls
// and can be used concurrently.
type Decoder struct {
	opts Options
}

// NewDecoder returns a decoder configured by opts. A nil opts uses the defaults.
func NewDecoder(opts *Options) *Decoder {
	return &Decoder{opts: opts.withDefaults()}
}

var defaultDecoder = NewDecoder(nil)

// DecodeMessage decodes a message made of zero or more values using the default options.
func DecodeMessage(data []byte) ([]types.Value, error) {
	return defaultDecoder.DecodeMessage(data)
}

// Decode decodes a message made of exactly one value using the default options.
func Decode(data []byte) (types.Value, error) {
	return defaultDecoder.Decode(data)
}

// DecodeMessage decodes values until data is exhausted.
// The input must end exactly on a value boundary.
func (d *Decoder) DecodeMessage(data []byte) ([]types.Value, error) {
	s := d.newState(data)

	var values []types.Value
	for i := 0; s.off < len(s.buf); i++ {
		v, err := s.decodeValue()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding value %d at offset %d", i, s.off)
		}

		values = append(values, v)
	}

	return values, nil
}

// Decode decodes exactly one value and fails with a *TrailingBytesError
// if data holds anything after it.
func (d *Decoder) Decode(data []byte) (types.Value, error) {
	v, n, err := d.DecodeValue(data)
	if err != nil {
		return nil, err
	}

	if n < len(data) {
		return nil, errors.WithStack(&errs.TrailingBytesError{Remaining: len(data) - n})
	}

	return v, nil
}

// DecodeValue decodes the value at the beginning of data and returns it
// along with the number of bytes read. References are scoped to this call.
func (d *Decoder) DecodeValue(data []byte) (types.Value, int, error) {
	s := d.newState(data)

	v, err := s.decodeValue()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "decoding value at offset %d", s.off)
	}

	return v, s.off, nil
}

func (d *Decoder) newState(data []byte) *decodeState {
	return &decodeState{
		buf:  data,
		opts: &d.opts,
	}
}

// decodeState holds everything one message needs while it is being decoded.
type decodeState struct {
	buf   []byte
	off   int
	depth int
	opts  *Options

	strings   reftable.Table[string]
	complexes reftable.Table[types.Value]
}

func (s *decodeState) remaining() int {
	return len(s.buf) - s.off
}

func (s *decodeState) readByte() (byte, error) {
	if s.off >= len(s.buf) {
		return 0, errors.WithStack(errs.ErrTruncated)
	}

	b := s.buf[s.off]
	s.off++
	return b, nil
}

func (s *decodeState) readU29() (uint32, error) {
	n, read, err := encoding.DecodeU29(s.buf[s.off:])
	if err != nil {
		return 0, err
	}

	s.off += read
	return n, nil
}

func (s *decodeState) readDouble() (float64, error) {
	x, err := encoding.DecodeFloat64(s.buf[s.off:])
	if err != nil {
		return 0, err
	}

	s.off += 8
	return x, nil
}

func (s *decodeState) decodeValue() (types.Value, error) {
	m, err := s.readByte()
	if err != nil {
		return nil, err
	}

	switch m {
	case encoding.UndefinedMarker:
		return types.NewUndefinedValue(), nil
	case encoding.NullMarker:
		return types.NewNullValue(), nil
	case encoding.FalseMarker:
		return types.NewBooleanValue(false), nil
	case encoding.TrueMarker:
		return types.NewBooleanValue(true), nil
	case encoding.IntegerMarker:
		n, err := s.readU29()
		if err != nil {
			return nil, err
		}
		return types.NewIntegerValue(encoding.DecodeInt29(n)), nil
	case encoding.DoubleMarker:
		x, err := s.readDouble()
		if err != nil {
			return nil, err
		}
		return types.NewDoubleValue(x), nil
	case encoding.StringMarker:
		return s.decodeString()
	case encoding.DateMarker:
		return s.decodeDate()
	case encoding.ArrayMarker:
		return s.decodeArray()
	}

	e := errs.UnknownMarkerError{Marker: m}
	if name := encoding.MarkerName(m); name != "unknown" {
		e.Name = name
	}
	return nil, errors.WithStack(&e)
}

// decodeString decodes the payload of a string value.
func (s *decodeState) decodeString() (types.Value, error) {
	h, err := s.readU29()
	if err != nil {
		return nil, err
	}

	inline, n := encoding.SplitHeader(h)
	if !inline {
		if s.opts.KeepReferences {
			if _, err := s.stringRef(n); err != nil {
				return nil, err
			}
			return types.NewReferenceValue(types.TypeString, n), nil
		}

		str, err := s.stringRef(n)
		if err != nil {
			return nil, err
		}
		return types.NewStringValue(str), nil
	}

	if n == 0 && s.opts.DisallowEmptyStrings {
		return nil, errors.WithStack(errs.ErrEmptyString)
	}

	str, err := s.readStringLiteral(n)
	if err != nil {
		return nil, err
	}

	return types.NewStringValue(str), nil
}

// decodeKey decodes an associative key. It returns end == true
// when it reads the empty string that closes the associative part.
func (s *decodeState) decodeKey() (key string, end bool, err error) {
	h, err := s.readU29()
	if err != nil {
		return "", false, err
	}

	inline, n := encoding.SplitHeader(h)
	if !inline {
		key, err = s.stringRef(n)
		return key, false, err
	}

	if n == 0 {
		return "", true, nil
	}

	key, err = s.readStringLiteral(n)
	return key, false, err
}

func (s *decodeState) stringRef(i uint32) (string, error) {
	str, ok := s.strings.Get(i)
	if !ok {
		return "", errors.WithStack(&errs.InvalidReferenceError{Table: "string", Index: i, Len: s.strings.Len()})
	}

	return str, nil
}

// readStringLiteral reads n bytes of UTF-8 and adds them to the string table,
// unless they are empty: the empty string can never be referenced.
func (s *decodeState) readStringLiteral(n uint32) (string, error) {
	if n > s.opts.MaxStringLength {
		return "", errs.LimitError("string length", uint64(n), uint64(s.opts.MaxStringLength))
	}

	b, err := encoding.ReadBytes(s.buf[s.off:], int(n))
	if err != nil {
		return "", err
	}
	s.off += int(n)

	if !utf8.Valid(b) {
		return "", errors.WithStack(errs.ErrInvalidUTF8)
	}

	str := string(b)
	if str != "" {
		s.strings.Push(str)
	}

	return str, nil
}

func (s *decodeState) complexRef(kind types.Type, i uint32) (types.Value, error) {
	v, ok := s.complexes.Get(i)
	if !ok {
		return nil, errors.WithStack(&errs.InvalidReferenceError{Table: "complex", Index: i, Len: s.complexes.Len()})
	}
	if v.Type() != kind {
		return nil, errors.Wrapf(&errs.InvalidReferenceError{Table: "complex", Index: i, Len: s.complexes.Len()},
			"%s reference to a %s", kind, v.Type())
	}

	if s.opts.KeepReferences {
		return types.NewReferenceValue(kind, i), nil
	}

	return v, nil
}

func (s *decodeState) decodeDate() (types.Value, error) {
	h, err := s.readU29()
	if err != nil {
		return nil, err
	}

	inline, n := encoding.SplitHeader(h)
	if !inline {
		return s.complexRef(types.TypeDate, n)
	}

	ms, err := s.readDouble()
	if err != nil {
		return nil, err
	}

	d := types.NewDateValue(ms)
	s.complexes.Push(d)
	return d, nil
}

func (s *decodeState) decodeArray() (types.Value, error) {
	h, err := s.readU29()
	if err != nil {
		return nil, err
	}

	inline, count := encoding.SplitHeader(h)
	if !inline {
		return s.complexRef(types.TypeArray, count)
	}

	if count > s.opts.MaxDenseCount {
		return nil, errs.LimitError("dense count", uint64(count), uint64(s.opts.MaxDenseCount))
	}

	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.opts.MaxDepth {
		return nil, errors.Wrapf(errs.ErrNestingTooDeep, "more than %d nested arrays", s.opts.MaxDepth)
	}

	// the slot is taken before the members are read so that indexes match
	// the order in which producers assign them.
	a := types.NewArrayValue()
	s.complexes.Push(a)

	for {
		key, end, err := s.decodeKey()
		if err != nil {
			return nil, err
		}
		if end {
			break
		}

		v, err := s.decodeValue()
		if err != nil {
			return nil, err
		}

		a.Associative = append(a.Associative, types.Pair{Key: key, Value: v})
	}

	// every value takes at least one byte, a count larger than
	// what is left can only be a truncated message.
	if int64(count) > int64(s.remaining()) {
		return nil, errors.Wrapf(errs.ErrTruncated, "dense count %d with %d bytes left", count, s.remaining())
	}

	if count > 0 {
		a.Dense = make([]types.Value, 0, count)
	}
	for i := uint32(0); i < count; i++ {
		v, err := s.decodeValue()
		if err != nil {
			return nil, err
		}

		a.Dense = append(a.Dense, v)
	}

	return a, nil
}
