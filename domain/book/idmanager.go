package book

import (
	"errors"
	"math/bits"
)

// NumOrders is the fixed per-maker order slot capacity, one bit per
// slot in the taken bitmap.
const NumOrders = 32

var (
	ErrAlreadyAllocated = errors.New("book: id range already allocated")
	ErrNotAllocated     = errors.New("book: id not allocated")
	ErrOutOfRange       = errors.New("book: id outside maker range")
	ErrAllocatorFull    = errors.New("book: no free order id for maker")
)

// IDManager tracks one maker's order ids: a contiguous range of
// NumOrders ids claimed once from the list, with a bitmap of which are
// live. Fetch always returns the lowest free id, so a freshly
// allocated range hands ids out ascending and reused ids come back
// ascending among free bits, not FIFO by release time.
type IDManager struct {
	firstID   uint32
	taken     uint32
	allocated bool
}

// Allocate binds the manager to its id range. It may only happen once
// per maker.
func (m *IDManager) Allocate(firstID uint32) error {
	if m.allocated {
		return ErrAlreadyAllocated
	}
	m.firstID = firstID
	m.taken = 0
	m.allocated = true
	return nil
}

// Allocated reports whether the maker has an id range yet.
func (m *IDManager) Allocated() bool { return m.allocated }

// Fetch claims and returns the lowest free id.
func (m *IDManager) Fetch() (uint32, error) {
	if !m.allocated {
		return 0, ErrNotAllocated
	}
	bit := bits.TrailingZeros32(^m.taken)
	if bit >= NumOrders {
		return 0, ErrAllocatorFull
	}
	m.taken |= 1 << bit
	return m.firstID + uint32(bit), nil
}

// Release clears the id's bit, making it immediately eligible for the
// next Fetch.
func (m *IDManager) Release(id uint32) error {
	if !m.allocated {
		return ErrNotAllocated
	}
	if id < m.firstID || id >= m.firstID+NumOrders {
		return ErrOutOfRange
	}
	bit := id - m.firstID
	if m.taken&(1<<bit) == 0 {
		return ErrNotAllocated
	}
	m.taken &^= 1 << bit
	return nil
}

// Restore rebuilds the manager from snapshot state.
func (m *IDManager) Restore(firstID, taken uint32) {
	m.firstID = firstID
	m.taken = taken
	m.allocated = true
}

// FirstID returns the first id of the maker's range.
func (m *IDManager) FirstID() uint32 { return m.firstID }

// Taken returns the raw occupancy bitmap.
func (m *IDManager) Taken() uint32 { return m.taken }

// Live returns the number of currently taken ids.
func (m *IDManager) Live() int { return bits.OnesCount32(m.taken) }
