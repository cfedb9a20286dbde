package um

import "testing"

func TestAllocateZerosCapacity(t *testing.T) {
	h := newArrayHeap()
	id := h.allocate(8)
	for off := Word(0); off < 8; off++ {
		v, err := h.read(0, id, off)
		assert(t, err == nil, "read failed: %v", err)
		assert(t, v == 0, "offset %d = %d, want 0", off, v)
	}
}

func TestAbandonedArrayRejectsFurtherAccess(t *testing.T) {
	h := newArrayHeap()
	id := h.allocate(4)
	assert(t, h.abandon(0, id) == nil, "abandon failed")

	_, err := h.read(0, id, 0)
	assert(t, Is(err, InactiveArray), "expected InactiveArray after abandon, got %v", err)

	err = h.write(0, id, 0, 1)
	assert(t, Is(err, InactiveArray), "expected InactiveArray after abandon, got %v", err)

	err = h.abandon(0, id)
	assert(t, Is(err, InactiveArray), "expected InactiveArray on double-abandon, got %v", err)
}

func TestFreedStorageIsZeroFilledEvenWhenCapacityMatches(t *testing.T) {
	h := newArrayHeap()
	id := h.allocate(4)
	assert(t, h.write(0, id, 0, 0xDEADBEEF) == nil, "write failed")
	assert(t, h.abandon(0, id) == nil, "abandon failed")

	reused := h.allocate(4)
	assert(t, reused == id, "expected reused id to match, got %d vs %d", reused, id)
	v, err := h.read(0, reused, 0)
	assert(t, err == nil, "read failed: %v", err)
	assert(t, v == 0, "expected reused storage to be zero-filled, got %d", v)
}

func TestDuplicateLeavesSourceActiveAndUnmodified(t *testing.T) {
	h := newArrayHeap()
	id := h.allocate(2)
	assert(t, h.write(0, id, 0, 7) == nil, "write failed")
	assert(t, h.write(0, id, 1, 8) == nil, "write failed")

	assert(t, h.duplicate(0, id) == nil, "duplicate failed")
	assert(t, h.programLen() == 2, "expected array 0 to have length 2, got %d", h.programLen())
	assert(t, h.programWord(0) == 7 && h.programWord(1) == 8, "array 0 does not match source contents")

	v, err := h.read(0, id, 0)
	assert(t, err == nil && v == 7, "source array should remain active and unmodified")
}

func TestOutOfBoundsCarriesLength(t *testing.T) {
	h := newArrayHeap()
	id := h.allocate(3)
	_, err := h.read(5, id, 10)
	me, ok := err.(*MachineError)
	assert(t, ok && me.Kind == OutOfBounds, "expected OutOfBounds, got %v", err)
	assert(t, me.PC == 5 && me.Array == id && me.Offset == 10 && me.Length == 3,
		"unexpected error context: %+v", me)
}
