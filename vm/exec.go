package um

import (
	"context"
	"errors"
)

// Run executes the loaded program until it halts successfully (opcode
// 7) or an error is raised. There is no resume-after-error semantics:
// once Run returns a non-nil error, the Machine's state is unspecified
// for further use.
//
// ctx is checked between instructions only, every stepCheckInterval
// steps, purely so a caller can stop polling a runaway program; it
// never interrupts a single instruction and never changes what the
// hosted program itself can observe.
func (m *Machine) Run(ctx context.Context) (err error) {
	defer func() {
		// Last-resort net: a malformed or adversarial heap index
		// pattern that slips past the explicit bounds checks below
		// surfaces as a panic. Convert it to the same OutOfBounds
		// shape the normal path reports instead of crashing the host.
		if r := recover(); r != nil {
			if err == nil {
				err = newOutOfBoundsError(m.pc, 0, 0, 0)
			}
		}
	}()

	steps := 0
	for {
		if ctx != nil {
			steps++
			if steps%stepCheckInterval == 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}
		}

		if err := m.step(); err != nil {
			if err == errHalt {
				return nil
			}
			return err
		}
	}
}

const stepCheckInterval = 4096

// errHalt is the internal sentinel step returns on opcode 7; Run
// translates it to a nil error.
var errHalt = errors.New("halt")

// step fetches the platter at (array 0, PC), decodes it, and executes
// its semantics, advancing PC by one unless the instruction itself
// replaced it. This is the hottest path in the machine: every
// allocation avoided here is a whole benchmark run's worth of GC
// pressure avoided.
func (m *Machine) step() error {
	if m.trace {
		m.traceStep()
	}

	pc := m.pc
	if pc >= m.heap.programLen() {
		return newOutOfBoundsError(pc, 0, pc, m.heap.programLen())
	}
	platter := m.heap.programWord(pc)
	d := decode(platter)
	m.pc = pc + 1

	switch d.op {
	case OpConditionalMove:
		if m.register(d.c) != 0 {
			m.setRegister(d.a, m.register(d.b))
		}

	case OpArrayIndex:
		v, err := m.heap.read(pc, m.register(d.b), m.register(d.c))
		if err != nil {
			return err
		}
		m.setRegister(d.a, v)

	case OpArrayAmendment:
		if err := m.heap.write(pc, m.register(d.a), m.register(d.b), m.register(d.c)); err != nil {
			return err
		}

	case OpAddition:
		m.setRegister(d.a, m.register(d.b)+m.register(d.c))

	case OpMultiplication:
		m.setRegister(d.a, m.register(d.b)*m.register(d.c))

	case OpDivision:
		divisor := m.register(d.c)
		if divisor == 0 {
			return newDivisionByZeroError(pc)
		}
		m.setRegister(d.a, m.register(d.b)/divisor)

	case OpNotAnd:
		m.setRegister(d.a, ^(m.register(d.b) & m.register(d.c)))

	case OpHalt:
		return errHalt

	case OpAllocation:
		id := m.heap.allocate(m.register(d.c))
		m.setRegister(d.b, id)

	case OpAbandonment:
		if err := m.heap.abandon(pc, m.register(d.c)); err != nil {
			return err
		}

	case OpOutput:
		ch := m.register(d.c)
		if ch > 255 {
			return newInvalidCharError(pc, ch)
		}
		if err := m.io.write(byte(ch)); err != nil {
			return newIOError(pc, err)
		}

	case OpInput:
		b, eof, err := m.io.readByte()
		if err != nil {
			return newIOError(pc, err)
		}
		if eof {
			m.setRegister(d.c, 0xFFFFFFFF)
		} else {
			m.setRegister(d.c, Word(b))
		}

	case OpLoadProgram:
		src := m.register(d.b)
		target := m.register(d.c)
		if m.checkInfiniteLoop && src == 0 && target == pc {
			return newInfiniteLoopError(pc)
		}
		if src != 0 {
			if err := m.heap.duplicate(pc, src); err != nil {
				return err
			}
		}
		m.pc = target

	case OpOrthography:
		m.setRegister(d.a, d.imm)

	default:
		return newInvalidOpError(pc, uint8(d.op))
	}

	return nil
}
