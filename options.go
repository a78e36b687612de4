package amf3

import "github.com/chaisql/amf3/internal/encoding"

const (
	// DefaultMaxDepth is the default bound on array nesting.
	DefaultMaxDepth = 128

	// DefaultMaxDenseCount is the default bound on the dense count of one array.
	DefaultMaxDenseCount = 1 << 24

	// DefaultMaxStringLength is the default bound on the byte length of one string,
	// which is also the largest length the format can express.
	DefaultMaxStringLength = encoding.MaxInlineLength
)

// Options configure a Decoder or an Encoder. The zero value is ready to use.
type Options struct {
	// MaxDepth bounds how deep arrays can be nested. Defaults to DefaultMaxDepth.
	MaxDepth int

	// MaxDenseCount bounds the dense count of each array. Defaults to DefaultMaxDenseCount.
	MaxDenseCount uint32

	// MaxStringLength bounds the byte length of each string literal.
	// Defaults to DefaultMaxStringLength.
	MaxStringLength uint32

	// KeepReferences makes the decoder return types.ReferenceValue nodes
	// instead of resolving back-references. The encoder then writes every
	// string value as a literal, as it does for any tree holding string references.
	KeepReferences bool

	// DisallowEmptyStrings makes the decoder reject empty string values.
	// Producers following the format strictly never send them.
	DisallowEmptyStrings bool
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxDenseCount == 0 {
		opts.MaxDenseCount = DefaultMaxDenseCount
	}
	if opts.MaxDenseCount > encoding.MaxInlineLength {
		opts.MaxDenseCount = encoding.MaxInlineLength
	}
	if opts.MaxStringLength == 0 || opts.MaxStringLength > DefaultMaxStringLength {
		opts.MaxStringLength = DefaultMaxStringLength
	}

	return opts
}
