package sampling

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// shakeDomain separates constant streams from other uses of the same seed.
const shakeDomain = "koalabear-perm/constants/v1"

// ShakeSource is a Source reading little-endian words from SHAKE128.
type ShakeSource struct {
	h   sha3.ShakeHash
	buf [168]byte // SHAKE128 rate
	pos int
	end int
}

// NewShakeSource absorbs the domain tag and seed and returns a reader over the
// squeezed stream.
func NewShakeSource(seed []byte) *ShakeSource {
	h := sha3.NewShake128()
	h.Write([]byte(shakeDomain))
	h.Write([]byte{byte(len(seed)), byte(len(seed) >> 8)})
	h.Write(seed)
	return &ShakeSource{h: h}
}

// NextU32 returns the next 4 bytes of output as a little-endian word.
func (s *ShakeSource) NextU32() uint32 {
	if s.pos+4 > s.end {
		leftover := s.end - s.pos
		if leftover > 0 {
			copy(s.buf[:leftover], s.buf[s.pos:s.end])
		}
		n, err := s.h.Read(s.buf[leftover:])
		if err != nil {
			panic(err)
		}
		s.pos = 0
		s.end = leftover + n
	}
	v := binary.LittleEndian.Uint32(s.buf[s.pos:])
	s.pos += 4
	return v
}
