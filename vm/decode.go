package um

// decoded holds the fields extracted from a platter, regardless of
// which of the two layouts produced them. For ops other than
// Orthography, only a/b/c are meaningful; for Orthography, only a and
// imm are.
type decoded struct {
	op Opcode
	a  uint8
	b  uint8
	c  uint8

	imm Word
}

// decode extracts the opcode and operand fields from a single
// platter. Opcodes below 13 use the three-register layout (a, b, c at
// bit positions 6..8, 3..5, 0..2); opcode 13 (Orthography) uses a
// single register field at 25..27 plus a 25-bit immediate in 0..24.
// Opcodes 14 and 15 are returned as-is; the caller is responsible for
// rejecting them with InvalidOp.
func decode(platter Word) decoded {
	op := Opcode(platter >> 28)
	if op == OpOrthography {
		return decoded{
			op:  op,
			a:   uint8((platter >> 25) & 0x7),
			imm: platter & 0x01FFFFFF,
		}
	}
	return decoded{
		op: op,
		a:  uint8((platter >> 6) & 0x7),
		b:  uint8((platter >> 3) & 0x7),
		c:  uint8(platter & 0x7),
	}
}
