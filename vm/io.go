package um

import "io"

// ByteWriter is the output sink opcode 10 writes to. *bufio.Writer
// satisfies this directly, the same way the teacher binds vm.stdout to
// a *bufio.Writer over os.Stdout.
type ByteWriter interface {
	WriteByte(c byte) error
	Flush() error
}

// ByteReader is the input source opcode 11 reads from once the
// pre-seeded input queue is drained. *bufio.Reader satisfies this
// directly, the same way the teacher binds vm.stdin to a
// *bufio.Reader over os.Stdin.
type ByteReader interface {
	ReadByte() (byte, error)
}

// ioAdapter binds the machine to its external byte streams and holds
// the pre-seeded input queue that is drained before any byte is read
// from the external source.
type ioAdapter struct {
	in   ByteReader
	out  ByteWriter
	seed []byte
}

func newIOAdapter(in ByteReader, out ByteWriter) *ioAdapter {
	return &ioAdapter{in: in, out: out}
}

func (a *ioAdapter) seedQueue(s string) {
	a.seed = append(a.seed, []byte(s)...)
}

// write emits a single byte and flushes the sink immediately, so that
// a prompt reaches the console before a subsequent blocking read.
func (a *ioAdapter) write(b byte) error {
	if err := a.out.WriteByte(b); err != nil {
		return err
	}
	return a.out.Flush()
}

// readByte drains the pre-seeded queue first; once it is empty, it
// blocks on the external byte source. EOF is reported via the second
// return value rather than folded into the byte, so the caller can
// distinguish "read 0x00" from "end of input".
func (a *ioAdapter) readByte() (b byte, eof bool, err error) {
	if n := len(a.seed); n > 0 {
		b = a.seed[0]
		a.seed = a.seed[1:]
		return b, false, nil
	}
	b, err = a.in.ReadByte()
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return b, false, nil
}
