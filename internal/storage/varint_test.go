package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	r := require.New(t)

	values := []int64{
		0, 1, 2, 127, 128, 129, 16383, 16384,
		-1, -128, -129, 1 << 20, 1<<20 - 1,
		1 << 33, -(1 << 40),
		math.MaxInt64,
	}

	for _, v := range values {
		encoded := WriteVarint(v)
		decoded, n, err := ReadVarint(encoded)
		r.NoError(err)
		r.Equal(len(encoded), n)
		r.Equal(v, decoded)
	}
}

func TestVarintMaxNineBytes(t *testing.T) {
	r := require.New(t)

	encoded := WriteVarint(-1)
	r.Len(encoded, 9)

	decoded, n, err := ReadVarint(encoded)
	r.NoError(err)
	r.Equal(9, n)
	r.Equal(int64(-1), decoded)
}

func TestVarintTruncated(t *testing.T) {
	r := require.New(t)

	_, _, err := ReadVarint(nil)
	r.Error(err)

	// All continuation bits set but stream ends early.
	_, _, err = ReadVarint([]byte{0x80, 0x80, 0x80})
	r.Error(err)
}

func TestVarintConsumesMinimalBytes(t *testing.T) {
	r := require.New(t)

	encoded := WriteVarint(300)
	r.Len(encoded, 2)

	_, n, err := ReadVarint(append(encoded, 0xFF, 0xFF))
	r.NoError(err)
	r.Equal(2, n)
}
