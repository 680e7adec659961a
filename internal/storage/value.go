package storage

import "fmt"

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

// Value is the tagged sum of the five storage classes a column may hold.
// Equality (Equal) treats Text and Blob as interchangeable when their
// bytes match, and treats Null as never equal to anything, including
// another Null.
type Value struct {
	Kind    ValueKind
	Integer int64
	Real    float64
	Bytes   []byte // backs both Text and Blob
}

// NullValue is the canonical NULL.
func NullValue() Value { return Value{Kind: KindNull} }

// IntegerValue wraps a signed integer.
func IntegerValue(v int64) Value { return Value{Kind: KindInteger, Integer: v} }

// RealValue wraps an IEEE-754 float.
func RealValue(v float64) Value { return Value{Kind: KindReal, Real: v} }

// TextValue wraps UTF-8 text.
func TextValue(s string) Value { return Value{Kind: KindText, Bytes: []byte(s)} }

// BlobValue wraps an opaque byte sequence.
func BlobValue(b []byte) Value { return Value{Kind: KindBlob, Bytes: b} }

// Equal compares two values by tag and payload. Text and Blob compare
// equal when their underlying bytes match regardless of tag. Null is
// never equal to anything.
func (v Value) Equal(other Value) bool {
	if v.Kind == KindNull || other.Kind == KindNull {
		return false
	}

	textOrBlob := func(k ValueKind) bool { return k == KindText || k == KindBlob }
	if textOrBlob(v.Kind) && textOrBlob(other.Kind) {
		return bytesEqual(v.Bytes, other.Bytes)
	}

	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindInteger:
		return v.Integer == other.Integer
	case KindReal:
		return v.Real == other.Real
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a value the way the query executor stringifies a
// projected column: "null" for NULL, default decimal formatting for
// Integer/Real, raw text/bytes otherwise.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInteger:
		return fmt.Sprintf("%d", v.Integer)
	case KindReal:
		return fmt.Sprintf("%g", v.Real)
	case KindText, KindBlob:
		return string(v.Bytes)
	default:
		return ""
	}
}
