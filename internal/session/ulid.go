package session

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULID generation for document ids: 26-character Crockford Base32 strings
// with a millisecond timestamp prefix, so ids sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// 48-bit big-endian timestamp, then randomness with a sequence counter
	// in the first two random bytes to keep same-millisecond ids distinct.
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeBase32(b)
}

// encodeBase32 renders 128 bits as 26 Crockford characters, left-padded
// with two zero bits.
func encodeBase32(b [16]byte) string {
	out := make([]byte, 0, 26)
	acc := uint(0)
	nbits := 2
	for _, by := range b {
		acc = acc<<8 | uint(by)
		nbits += 8
		for nbits >= 5 {
			nbits -= 5
			out = append(out, crockford[(acc>>nbits)&31])
		}
	}
	return string(out)
}
