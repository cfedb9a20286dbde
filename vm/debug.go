package um

import (
	"fmt"
	"os"
)

// traceStep writes a one-line disassembly of the instruction about to
// execute to standard error, in the same spirit as the
// teacher's printCurrentState/formatInstructionStr pair — a debugging
// convenience that is only ever invoked when WithTrace(true) was
// passed to New, so it never runs in the hot path by default.
func (m *Machine) traceStep() {
	pc := m.pc
	if pc >= m.heap.programLen() {
		return
	}
	line := Disassemble(m.heap.programWord(pc))
	fmt.Fprintf(os.Stderr, "pc=%d %s regs=%v\n", pc, line, m.registers)
}

// Disassemble renders a single platter as a human-readable mnemonic
// line, adapted from the teacher's Bytecode.String()/strToInstrMap
// pair: there the map goes from assembly mnemonic to bytecode for a
// text assembler, here it goes the other way, from a decoded platter
// straight to a mnemonic listing, since the UM has no textual assembly
// surface to compile — only a binary platter stream to disassemble.
func Disassemble(platter Word) string {
	d := decode(platter)
	if d.op == OpOrthography {
		return fmt.Sprintf("%-5s r%d, #%d", d.op, d.a, d.imm)
	}
	if !d.op.Valid() {
		return fmt.Sprintf("?unknown? (0x%08x)", platter)
	}
	return fmt.Sprintf("%-5s r%d, r%d, r%d", d.op, d.a, d.b, d.c)
}
