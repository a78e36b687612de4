package encoding

// Type markers. Each value on the wire starts with one of these bytes.
const (
	UndefinedMarker byte = 0x00
	NullMarker      byte = 0x01
	FalseMarker     byte = 0x02
	TrueMarker      byte = 0x03
	IntegerMarker   byte = 0x04
	DoubleMarker    byte = 0x05
	StringMarker    byte = 0x06
	XMLDocMarker    byte = 0x07
	DateMarker      byte = 0x08
	ArrayMarker     byte = 0x09
	ObjectMarker    byte = 0x0a
	XMLMarker       byte = 0x0b
	ByteArrayMarker byte = 0x0c

	VectorIntMarker    byte = 0x0d
	VectorUintMarker   byte = 0x0e
	VectorDoubleMarker byte = 0x0f
	VectorObjectMarker byte = 0x10
	DictionaryMarker   byte = 0x11
)

// EmptyString is the byte sequence of a zero-length string literal.
// Inside an array it terminates the associative section.
const EmptyString byte = 0x01

// MarkerName returns a human readable name for a marker.
func MarkerName(m byte) string {
	switch m {
	case UndefinedMarker:
		return "undefined"
	case NullMarker:
		return "null"
	case FalseMarker:
		return "false"
	case TrueMarker:
		return "true"
	case IntegerMarker:
		return "integer"
	case DoubleMarker:
		return "double"
	case StringMarker:
		return "string"
	case XMLDocMarker:
		return "xml document"
	case DateMarker:
		return "date"
	case ArrayMarker:
		return "array"
	case ObjectMarker:
		return "object"
	case XMLMarker:
		return "xml"
	case ByteArrayMarker:
		return "byte array"
	case VectorIntMarker:
		return "int vector"
	case VectorUintMarker:
		return "uint vector"
	case VectorDoubleMarker:
		return "double vector"
	case VectorObjectMarker:
		return "object vector"
	case DictionaryMarker:
		return "dictionary"
	}

	return "unknown"
}
