package algospmv

// Interleave writes channels into dst using the batched layout: element i
// of channel c lands at dst[i*len(channels)+c]. All channels must have the
// same length.
//
// Returns ErrNilSlice if dst or any channel is nil.
// Returns ErrLengthMismatch if channel lengths differ or dst is too short.
func Interleave(dst []complex64, channels [][]complex64) error {
	n, err := validateChannels(dst, channels)
	if err != nil {
		return err
	}

	stride := len(channels)
	for c, src := range channels {
		for i := range n {
			dst[i*stride+c] = src[i]
		}
	}

	return nil
}

// Deinterleave is the inverse of Interleave: channel c receives
// src[i*len(channels)+c] for every i.
func Deinterleave(channels [][]complex64, src []complex64) error {
	n, err := validateChannels(src, channels)
	if err != nil {
		return err
	}

	stride := len(channels)
	for c, dst := range channels {
		for i := range n {
			dst[i] = src[i*stride+c]
		}
	}

	return nil
}

// Channel copies channel c of the interleaved buffer src into dst.
//
// Returns ErrInvalidStride if reps < 1 or c is not in [0, reps).
// Returns ErrLengthMismatch if src cannot hold len(dst) elements at that stride.
func Channel(dst, src []complex64, c, reps int) error {
	if dst == nil || src == nil {
		return ErrNilSlice
	}

	if reps < 1 || c < 0 || c >= reps {
		return ErrInvalidStride
	}

	if len(dst) == 0 {
		return nil
	}

	maxInt := int(^uint(0) >> 1)
	maxIndex := len(dst) - 1

	if maxIndex > (maxInt-c)/reps {
		return ErrInvalidStride
	}

	if len(src) < 1+maxIndex*reps+c {
		return ErrLengthMismatch
	}

	for i := range dst {
		dst[i] = src[i*reps+c]
	}

	return nil
}

func validateChannels(buf []complex64, channels [][]complex64) (int, error) {
	if buf == nil || len(channels) == 0 {
		return 0, ErrNilSlice
	}

	n := len(channels[0])
	for _, ch := range channels {
		if ch == nil {
			return 0, ErrNilSlice
		}

		if len(ch) != n {
			return 0, ErrLengthMismatch
		}
	}

	if len(buf) < n*len(channels) {
		return 0, ErrLengthMismatch
	}

	return n, nil
}
