// Package um implements the core of a word-addressed virtual machine:
// an array heap, eight general registers, a platter decoder, and the
// dispatch loop that executes the fourteen defined operations.
package um

// Word is the machine's native unit: an unsigned 32-bit value. All
// arithmetic on a Word wraps modulo 2^32, matching Go's unsigned
// overflow behavior directly.
type Word = uint32

const numRegisters = 8

// Machine owns a register file, an array heap, a program counter, and
// the I/O streams a running program interacts with. The zero value is
// not ready to use; construct one with New.
type Machine struct {
	registers [numRegisters]Word
	pc        Word

	heap *arrayHeap
	io   *ioAdapter

	checkInfiniteLoop bool
	trace             bool
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithInfiniteLoopCheck toggles the degenerate self-loop check on
// opcode 12 (program load) described in the engine's design notes. It
// is enabled by default.
func WithInfiniteLoopCheck(enabled bool) Option {
	return func(m *Machine) { m.checkInfiniteLoop = enabled }
}

// WithTrace enables per-instruction disassembly tracing to standard
// error. It is a debugging convenience only: it never
// changes the program's observable register, heap, or I/O behavior.
func WithTrace(enabled bool) Option {
	return func(m *Machine) { m.trace = enabled }
}

// New creates a Machine with an empty array 0, empty free list, zeroed
// registers, and PC at 0. The given reader/writer back opcode 11
// (Input) and opcode 10 (Output) respectively.
func New(in ByteReader, out ByteWriter, opts ...Option) *Machine {
	m := &Machine{
		heap:              newArrayHeap(),
		io:                newIOAdapter(in, out),
		checkInfiniteLoop: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SeedInput pushes code points onto the pre-run input queue, each
// transmitted as a single input byte. Callers are responsible for
// ensuring every code point fits in 0..255.
func (m *Machine) SeedInput(s string) {
	m.io.seedQueue(s)
}

// LoadImage installs program bytes as the initial contents of array 0.
// Multiple calls concatenate their word sequences in call order, the
// way the CLI loads multiple files in argument order. The byte length
// must be a multiple of 4; see ErrMisalignedImage.
func (m *Machine) LoadImage(data []byte) error {
	return m.heap.loadProgram(data)
}

// register returns the current value of register r (r must be in 0..7).
func (m *Machine) register(r uint8) Word {
	return m.registers[r]
}

func (m *Machine) setRegister(r uint8, v Word) {
	m.registers[r] = v
}
