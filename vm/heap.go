package um

import (
	"encoding/binary"
	"errors"
)

// ErrMisalignedImage is returned by LoadImage when the supplied byte
// stream's length is not a multiple of 4. The spec leaves this case
// unspecified; this implementation rejects it outright rather than
// silently padding or truncating the tail.
var ErrMisalignedImage = errors.New("um: program image length is not a multiple of 4")

// arrayHeap is the dynamically growing collection of word-arrays
// indexed by 32-bit identifiers. Identifier 0 always refers to the
// currently executing program. Abandoned identifiers are pushed onto a
// LIFO free list along with their backing storage; allocate pops the
// pair back off, resizes the slice in place, and zero-fills it, the
// same reuse the original implementation does in its own free list
// (resize + fill(0) on pop) rather than minting a fresh slice.
type arrayHeap struct {
	arrays [][]Word // nil slot == inactive identifier
	free   []freeSlot
}

type freeSlot struct {
	id      Word
	storage []Word
}

func newArrayHeap() *arrayHeap {
	return &arrayHeap{
		arrays: [][]Word{{}}, // id 0 starts active and empty
	}
}

// loadProgram appends big-endian 32-bit words decoded from data onto
// array 0's current contents.
func (h *arrayHeap) loadProgram(data []byte) error {
	if len(data)%4 != 0 {
		return ErrMisalignedImage
	}
	words := make([]Word, len(data)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	h.arrays[0] = append(h.arrays[0], words...)
	return nil
}

// allocate returns a fresh or recycled identifier bound to a
// zero-filled array of the given capacity. A recycled identifier's
// backing slice is resized and zero-filled in place rather than
// discarded, so a heavy allocate/abandon cycle doesn't keep handing
// the garbage collector fresh large buffers.
func (h *arrayHeap) allocate(capacity Word) Word {
	if n := len(h.free); n > 0 {
		slot := h.free[n-1]
		h.free = h.free[:n-1]
		storage := resizeAndZero(slot.storage, int(capacity))
		h.arrays[slot.id] = storage
		return slot.id
	}
	h.arrays = append(h.arrays, make([]Word, capacity))
	return Word(len(h.arrays) - 1)
}

// resizeAndZero returns a slice of length n built from storage's
// backing array when it has enough capacity, zero-filled either way.
func resizeAndZero(storage []Word, n int) []Word {
	if cap(storage) < n {
		return make([]Word, n)
	}
	storage = storage[:n]
	for i := range storage {
		storage[i] = 0
	}
	return storage
}

// abandon frees id for reuse, retaining its backing storage on the
// free list for the next allocate to resize and zero-fill. Abandoning
// an inactive id (including an id never allocated) fails with
// InactiveArray. Identifier 0 is never abandonable by a well-formed
// program, even though it is always active while the machine runs;
// this is reported as the same InactiveArray error rather than a
// distinct kind, per spec.
func (h *arrayHeap) abandon(pc Word, id Word) error {
	if id == 0 || !h.active(id) {
		return newInactiveArrayError(pc, id)
	}
	storage := h.arrays[id]
	h.arrays[id] = nil
	h.free = append(h.free, freeSlot{id: id, storage: storage})
	return nil
}

func (h *arrayHeap) active(id Word) bool {
	return int(id) < len(h.arrays) && h.arrays[id] != nil
}

func (h *arrayHeap) read(pc, id, offset Word) (Word, error) {
	if !h.active(id) {
		return 0, newInactiveArrayError(pc, id)
	}
	a := h.arrays[id]
	if int(offset) >= len(a) {
		return 0, newOutOfBoundsError(pc, id, offset, Word(len(a)))
	}
	return a[offset], nil
}

func (h *arrayHeap) write(pc, id, offset, value Word) error {
	if !h.active(id) {
		return newInactiveArrayError(pc, id)
	}
	a := h.arrays[id]
	if int(offset) >= len(a) {
		return newOutOfBoundsError(pc, id, offset, Word(len(a)))
	}
	a[offset] = value
	return nil
}

// duplicate replaces array 0's contents with a copy of array id's
// contents. Array id itself is left active and unmodified.
func (h *arrayHeap) duplicate(pc, id Word) error {
	if !h.active(id) {
		return newInactiveArrayError(pc, id)
	}
	src := h.arrays[id]
	dst := make([]Word, len(src))
	copy(dst, src)
	h.arrays[0] = dst
	return nil
}

func (h *arrayHeap) programLen() Word {
	return Word(len(h.arrays[0]))
}

func (h *arrayHeap) programWord(offset Word) Word {
	return h.arrays[0][offset]
}
