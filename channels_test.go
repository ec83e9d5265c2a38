package algospmv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterleaveRoundTrip(t *testing.T) {
	t.Parallel()

	channels := [][]complex64{
		{1, 2, 3},
		{complex(0, 1), complex(0, 2), complex(0, 3)},
	}

	buf := make([]complex64, 6)
	require.NoError(t, Interleave(buf, channels))
	require.Equal(t, []complex64{1, complex(0, 1), 2, complex(0, 2), 3, complex(0, 3)}, buf)

	back := [][]complex64{make([]complex64, 3), make([]complex64, 3)}
	require.NoError(t, Deinterleave(back, buf))
	require.Equal(t, channels, back)

	ch := make([]complex64, 3)
	require.NoError(t, Channel(ch, buf, 1, 2))
	require.Equal(t, channels[1], ch)
}

func TestInterleaveErrors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Interleave(nil, [][]complex64{{1}}), ErrNilSlice)
	require.ErrorIs(t, Interleave(make([]complex64, 2), nil), ErrNilSlice)
	require.ErrorIs(t, Interleave(make([]complex64, 2), [][]complex64{{1}, nil}), ErrNilSlice)
	require.ErrorIs(t, Interleave(make([]complex64, 4), [][]complex64{{1, 2}, {1}}), ErrLengthMismatch)
	require.ErrorIs(t, Interleave(make([]complex64, 3), [][]complex64{{1, 2}, {1, 2}}), ErrLengthMismatch)
	require.ErrorIs(t, Deinterleave([][]complex64{make([]complex64, 2)}, make([]complex64, 1)), ErrLengthMismatch)
}

func TestChannelErrors(t *testing.T) {
	t.Parallel()

	src := make([]complex64, 6)

	require.ErrorIs(t, Channel(nil, src, 0, 2), ErrNilSlice)
	require.ErrorIs(t, Channel(make([]complex64, 3), src, 2, 2), ErrInvalidStride)
	require.ErrorIs(t, Channel(make([]complex64, 3), src, 0, 0), ErrInvalidStride)
	require.ErrorIs(t, Channel(make([]complex64, 4), src, 1, 2), ErrLengthMismatch)
	require.NoError(t, Channel([]complex64{}, src, 1, 2))
	require.NoError(t, Channel(make([]complex64, 2), src, 2, 3))
}
