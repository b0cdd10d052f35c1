package oto

import (
	"encoding/binary"
	"math"

	"github.com/vsariola/rack"
)

// FloatBufferToBytes appends the buffer to dst as interleaved little endian
// float32 samples, clamped to [-1, 1].
func FloatBufferToBytes(buf rack.AudioBuffer, dst []byte) []byte {
	for _, frame := range buf {
		for _, v := range frame {
			v = min(max(v, -1), 1)
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	}
	return dst
}
