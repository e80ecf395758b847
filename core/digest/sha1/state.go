package sha1

import (
	"encoding/binary"
	"errors"
)

const (
	magic         = "kstd.sha1\x01"
	marshaledSize = len(magic) + 5*4 + BlockSize + 8
)

var (
	ErrInvalidStateIdentifier = errors.New("sha1: invalid hash state identifier")
	ErrInvalidStateSize       = errors.New("sha1: invalid hash state size")
)

// MarshalBinary snapshots the running state so a computation can be resumed
// later with UnmarshalBinary.
func (e *Engine) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic...)
	for _, v := range e.h {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, e.x[:e.nx]...)
	b = b[:len(b)+len(e.x)-e.nx]
	b = binary.BigEndian.AppendUint64(b, e.len)
	return b, nil
}

func (e *Engine) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return ErrInvalidStateIdentifier
	}
	if len(b) != marshaledSize {
		return ErrInvalidStateSize
	}
	b = b[len(magic):]
	for i := range e.h {
		e.h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	copy(e.x[:], b[:BlockSize])
	b = b[BlockSize:]
	e.len = binary.BigEndian.Uint64(b)
	e.nx = int(e.len % BlockSize)
	return nil
}
