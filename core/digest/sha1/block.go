package sha1

import (
	"encoding/binary"
	"math/bits"
)

const (
	k0 = 0x5A827999
	k1 = 0x6ED9EBA1
	k2 = 0x8F1BBCDC
	k3 = 0xCA62C1D6
)

// compress runs the compression function over every complete block in p,
// folding each result into h. len(p) must be a multiple of BlockSize.
func compress(h *[5]uint32, p []byte) {
	var w [80]uint32
	for len(p) >= BlockSize {
		for t := 0; t < 16; t++ {
			w[t] = binary.BigEndian.Uint32(p[t*4:])
		}
		for t := 16; t < 80; t++ {
			w[t] = bits.RotateLeft32(w[t-3]^w[t-8]^w[t-14]^w[t-16], 1)
		}

		a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
		for t := 0; t < 80; t++ {
			var f, k uint32
			switch {
			case t < 20:
				f, k = b&c|^b&d, k0
			case t < 40:
				f, k = b^c^d, k1
			case t < 60:
				f, k = b&c|b&d|c&d, k2
			default:
				f, k = b^c^d, k3
			}
			tmp := bits.RotateLeft32(a, 5) + f + e + w[t] + k
			a, b, c, d, e = tmp, a, bits.RotateLeft32(b, 30), c, d
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d
		h[4] += e

		p = p[BlockSize:]
	}
}
