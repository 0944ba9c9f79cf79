package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrInvalidVector = errors.New("invalid vector blob")

// vectorToBytes serializes an embedding as little-endian float32 bytes.
func vectorToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToVector deserializes a blob written by vectorToBytes.
func bytesToVector(data []byte, dimensions int) ([]float32, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) != dimensions*4 {
		return nil, fmt.Errorf("%w: expected %d bytes for %d dimensions, got %d",
			ErrInvalidVector, dimensions*4, dimensions, len(data))
	}
	out := make([]float32, dimensions)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}
