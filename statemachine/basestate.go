package statemachine

import (
	"bytes"
	"fmt"
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// BaseState is a fixed-length bit vector: the wire representation of a game position.
// Bits are stored LSB-first within each byte.
type BaseState struct {
	size int
	data []byte
}

// NewBaseState returns a zeroed bit vector holding size bits.
// One spare byte is always allocated to match the external raw format.
func NewBaseState(size int) *BaseState {
	if size < 0 {
		panic(fmt.Sprintf("statemachine: negative base state size %d", size))
	}
	return &BaseState{
		size: size,
		data: make([]byte, size/8+1),
	}
}

// Len returns the number of bits.
func (bs *BaseState) Len() int { return bs.size }

// RawBytes returns the number of bytes Raw produces.
func (bs *BaseState) RawBytes() int { return len(bs.data) }

func (bs *BaseState) Get(index int) bool {
	bs.check(index)
	return bs.data[index>>3]&(1<<(index&7)) != 0
}

func (bs *BaseState) Set(index int, value bool) {
	bs.check(index)
	if value {
		bs.data[index>>3] |= 1 << (index & 7)
	} else {
		bs.data[index>>3] &^= 1 << (index & 7)
	}
}

func (bs *BaseState) check(index int) {
	if index < 0 || index >= bs.size {
		panic(fmt.Sprintf("statemachine: base index %d out of range [0, %d)", index, bs.size))
	}
}

// Equals reports whether every stored byte matches.
func (bs *BaseState) Equals(other *BaseState) bool {
	return bytes.Equal(bs.data, other.data)
}

func (bs *BaseState) Hash() uint64 {
	return xxhash.Sum64(bs.data)
}

// Assign copies other into bs. Both must have the same size.
func (bs *BaseState) Assign(other *BaseState) {
	if bs.size != other.size {
		panic(fmt.Sprintf("statemachine: assigning base state of size %d to size %d", other.size, bs.size))
	}
	copy(bs.data, other.data)
}

func (bs *BaseState) Copy() *BaseState {
	data := make([]byte, len(bs.data))
	copy(data, bs.data)
	return &BaseState{size: bs.size, data: data}
}

// Raw exports the bytes with each byte bit-reversed (MSB-first).
func (bs *BaseState) Raw() []byte {
	buf := make([]byte, len(bs.data))
	for i, b := range bs.data {
		buf[i] = bits.Reverse8(b)
	}
	return buf
}

// SetRaw imports bytes produced by Raw.
func (bs *BaseState) SetRaw(buf []byte) error {
	if len(buf) != len(bs.data) {
		return fmt.Errorf("%w: raw base state has %d bytes, expected %d", ErrRange, len(buf), len(bs.data))
	}
	for i, b := range buf {
		bs.data[i] = bits.Reverse8(b)
	}
	return nil
}

func (bs *BaseState) String() string {
	var sb strings.Builder
	sb.Grow(bs.size)
	for i := 0; i < bs.size; i++ {
		if bs.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
