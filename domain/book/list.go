package book

import (
	"errors"
	"math"
	"math/big"

	"makerbook/infra/memory"
)

var (
	ErrBadAmount      = errors.New("book: amount out of range")
	ErrRateTooHigh    = errors.New("book: implied rate above maximum")
	ErrNotFound       = errors.New("book: order not found")
	ErrIDInUse        = errors.New("book: order id already in list")
	ErrSentinel       = errors.New("book: operation on sentinel id")
	ErrIDSpaceFull    = errors.New("book: id space exhausted")
	ErrBadInsertPoint = errors.New("book: insert position breaks sort order")
)

// List is a doubly linked list of orders sorted best-for-taker first:
// for every adjacent live pair (a, b), a delivers at least as much
// SrcAmount per DstAmount as b. Equal-rate orders keep submission
// order, oldest first.
//
// Storage slots are arena style: orders live in a map keyed by small
// integer id, links are ids, and freed slots return to a pool. The
// list performs no locking; callers serialize access.
type List struct {
	slots      map[uint32]*Order
	nextFreeID uint32
	size       int
	pool       *memory.Pool[Order]
}

func NewList(pool *memory.Pool[Order]) *List {
	l := &List{
		slots:      make(map[uint32]*Order),
		nextFreeID: FirstFreeID,
		pool:       pool,
	}
	l.slots[HeadID] = &Order{ID: HeadID, Next: TailID}
	l.slots[TailID] = &Order{ID: TailID}
	return l
}

// AllocateIDs reserves a contiguous range of n ids and returns the
// first. Ranges are never reclaimed; reuse happens inside a range via
// the per-maker IDManager.
func (l *List) AllocateIDs(n uint32) (uint32, error) {
	if uint64(l.nextFreeID)+uint64(n) > math.MaxUint32 {
		return 0, ErrIDSpaceFull
	}
	first := l.nextFreeID
	l.nextFreeID += n
	return first, nil
}

// NextFreeID exposes the allocation cursor for snapshots.
func (l *List) NextFreeID() uint32 { return l.nextFreeID }

// RestoreNextFreeID resets the allocation cursor from a snapshot.
func (l *List) RestoreNextFreeID(v uint32) {
	if v >= FirstFreeID {
		l.nextFreeID = v
	}
}

// Get returns the live order with the given id.
func (l *List) Get(id uint32) (*Order, error) {
	if id == HeadID || id == TailID {
		return nil, ErrSentinel
	}
	o, ok := l.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

// First returns the id of the best order, or TailID when empty.
func (l *List) First() uint32 {
	return l.slots[HeadID].Next
}

// Next returns the id after the given live node.
func (l *List) Next(id uint32) (uint32, error) {
	o, err := l.Get(id)
	if err != nil {
		return 0, err
	}
	return o.Next, nil
}

func (l *List) Len() int { return l.size }

// IDs returns the live order ids, best first.
func (l *List) IDs() []uint32 {
	out := make([]uint32, 0, l.size)
	for id := l.First(); id != TailID; id = l.slots[id].Next {
		out = append(out, id)
	}
	return out
}

// Insert places a new order at its sorted position. hint names a node
// to anchor the position scan; it is a performance hint only and is
// re-validated, so a stale or foreign hint degrades to a scan from the
// head instead of corrupting links.
func (l *List) Insert(id uint32, maker Address, src, dst *big.Int, hint uint32) error {
	if id == HeadID || id == TailID {
		return ErrSentinel
	}
	if err := checkAmounts(src, dst); err != nil {
		return err
	}
	if _, ok := l.slots[id]; ok {
		return ErrIDInUse
	}

	prev := l.findPosition(src, dst, hint)

	o := l.pool.Get()
	o.Reset()
	o.ID = id
	o.Maker = maker
	o.SrcAmount = new(big.Int).Set(src)
	o.DstAmount = new(big.Int).Set(dst)
	l.slots[id] = o
	l.linkAfter(o, prev)
	l.size++
	return nil
}

// InsertAfter places the order directly after a known live anchor,
// failing instead of falling back when the position would break the
// sort order. Batch submissions chain on their own previous id.
func (l *List) InsertAfter(id uint32, maker Address, src, dst *big.Int, prev uint32) error {
	if id == HeadID || id == TailID {
		return ErrSentinel
	}
	if err := checkAmounts(src, dst); err != nil {
		return err
	}
	if _, ok := l.slots[id]; ok {
		return ErrIDInUse
	}
	if !l.validAnchor(src, dst, prev) {
		return ErrBadInsertPoint
	}

	o := l.pool.Get()
	o.Reset()
	o.ID = id
	o.Maker = maker
	o.SrcAmount = new(big.Int).Set(src)
	o.DstAmount = new(big.Int).Set(dst)
	l.slots[id] = o
	l.linkAfter(o, prev)
	l.size++
	return nil
}

// Remove unlinks the order and releases its slot for reuse. The id is
// no longer a valid hint afterwards.
func (l *List) Remove(id uint32) error {
	o, err := l.Get(id)
	if err != nil {
		return err
	}
	l.unlink(o)
	delete(l.slots, id)
	o.Reset()
	l.pool.Put(o)
	l.size--
	return nil
}

// Update rewrites an order's amounts. When the new rate keeps the node
// between its current neighbors the rewrite is in place; otherwise the
// node is unlinked and reinserted at its new sorted position.
func (l *List) Update(id uint32, src, dst *big.Int, hint uint32) error {
	o, err := l.Get(id)
	if err != nil {
		return err
	}
	if err := checkAmounts(src, dst); err != nil {
		return err
	}

	if l.keepsPosition(o, src, dst) {
		o.SrcAmount.Set(src)
		o.DstAmount.Set(dst)
		return nil
	}

	l.unlink(o)
	prev := l.findPosition(src, dst, hint)
	o.SrcAmount.Set(src)
	o.DstAmount.Set(dst)
	l.linkAfter(o, prev)
	return nil
}

// MoveAfter relinks a live order directly after anchor. Unlike Insert
// and Update, ties are allowed on both sides, so an order can be
// placed back ahead of equal-rate peers it originally preceded. Batch
// rollback uses it to restore exact pre-batch positions.
func (l *List) MoveAfter(id, anchor uint32) error {
	o, err := l.Get(id)
	if err != nil {
		return err
	}
	if anchor == id || anchor == TailID {
		return ErrBadInsertPoint
	}
	a, ok := l.slots[anchor]
	if !ok {
		return ErrBadInsertPoint
	}
	if o.Prev == anchor {
		return nil
	}

	next := a.Next
	if anchor != HeadID && better(o.SrcAmount, o.DstAmount, a) {
		return ErrBadInsertPoint
	}
	if next != TailID {
		n := l.slots[next]
		if better(n.SrcAmount, n.DstAmount, o) {
			return ErrBadInsertPoint
		}
	}

	l.unlink(o)
	l.linkAfter(o, anchor)
	return nil
}

// SetAmounts rewrites amounts without repositioning. Used for partial
// fills, where src and dst shrink by the same fraction and the node's
// relative ordering cannot improve past a neighbor.
func (l *List) SetAmounts(id uint32, src, dst *big.Int) error {
	o, err := l.Get(id)
	if err != nil {
		return err
	}
	if src.Sign() <= 0 || dst.Sign() <= 0 {
		return ErrBadAmount
	}
	o.SrcAmount.Set(src)
	o.DstAmount.Set(dst)
	return nil
}

// ---------------- position search ----------------

// findPosition returns the id of the node the new order should be
// linked after. A valid hint short-circuits the scan.
func (l *List) findPosition(src, dst *big.Int, hint uint32) uint32 {
	if hint != 0 && l.validAnchor(src, dst, hint) {
		return hint
	}
	prev := uint32(HeadID)
	for next := l.slots[prev].Next; next != TailID; next = l.slots[prev].Next {
		if better(src, dst, l.slots[next]) {
			break
		}
		prev = next
	}
	return prev
}

// validAnchor reports whether linking after the given node keeps the
// list sorted: the anchor must be the head or a live order no worse
// than the new one, and the new order must beat the anchor's successor.
func (l *List) validAnchor(src, dst *big.Int, anchor uint32) bool {
	if anchor == TailID {
		return false
	}
	a, ok := l.slots[anchor]
	if !ok {
		return false
	}
	if anchor != HeadID && better(src, dst, a) {
		return false
	}
	next := a.Next
	if next == TailID {
		return true
	}
	return better(src, dst, l.slots[next])
}

// keepsPosition reports whether new amounts keep the node strictly
// between its neighbors. A tie with the successor forces a reinsert so
// the older order keeps time priority.
func (l *List) keepsPosition(o *Order, src, dst *big.Int) bool {
	if o.Prev != HeadID && better(src, dst, l.slots[o.Prev]) {
		return false
	}
	if o.Next != TailID && !better(src, dst, l.slots[o.Next]) {
		return false
	}
	return true
}

// ---------------- link plumbing ----------------

func (l *List) linkAfter(o *Order, prevID uint32) {
	prev := l.slots[prevID]
	next := l.slots[prev.Next]
	o.Prev = prev.ID
	o.Next = next.ID
	prev.Next = o.ID
	next.Prev = o.ID
}

func (l *List) unlink(o *Order) {
	l.slots[o.Prev].Next = o.Next
	l.slots[o.Next].Prev = o.Prev
	o.Prev = 0
	o.Next = 0
}
