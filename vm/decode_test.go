package um

import "testing"

func TestDecodeThreeRegisterLayout(t *testing.T) {
	// opcode 3 (addition), a=5, b=2, c=1
	platter := Word(3)<<28 | 5<<6 | 2<<3 | 1
	d := decode(platter)
	assert(t, d.op == OpAddition, "got op %v, want OpAddition", d.op)
	assert(t, d.a == 5 && d.b == 2 && d.c == 1, "got a=%d b=%d c=%d, want 5,2,1", d.a, d.b, d.c)
}

func TestDecodeOrthographyLayout(t *testing.T) {
	platter := ortho(6, 0x01ABCDEF)
	d := decode(platter)
	assert(t, d.op == OpOrthography, "got op %v, want OpOrthography", d.op)
	assert(t, d.a == 6, "got a=%d, want 6", d.a)
	assert(t, d.imm == 0x01ABCDEF, "got imm=0x%x, want 0x01ABCDEF", d.imm)
}

func TestDecodeIgnoresUpperBitsBelow13(t *testing.T) {
	// Bits 9..27 must be ignored for opcodes < 13.
	base := threeReg(OpHalt, 1, 2, 3)
	noisy := base | (0x7FFFF << 9)
	d1 := decode(base)
	d2 := decode(noisy)
	assert(t, d1 == d2, "decode should ignore bits 9..27 for opcode < 13: %+v vs %+v", d1, d2)
}

func TestInvalidOpcodesDecodeStructurally(t *testing.T) {
	for _, op := range []Opcode{14, 15} {
		platter := Word(op) << 28
		d := decode(platter)
		assert(t, d.op == op, "expected decode to still report op %d", op)
		assert(t, !d.op.Valid(), "opcode %d should not be Valid", op)
	}
}
