package rawterm

import (
	"fmt"
	"io"
)

// ByteReader is the one-byte-at-a-time input source the echo loop
// runs against. A Session is one; tests script their own.
type ByteReader interface {
	// ReadByte returns the byte read and a count of 0 or 1. A zero
	// count with a nil error is a timed-out read or end of input,
	// never a byte value.
	ReadByte() (byte, int, error)
}

// EchoKeys reads input one byte at a time and writes each byte's
// classification to out, one line per byte, until the quit byte shows
// up. Lines end in "\r\n" because output post-processing is off in
// raw mode.
//
// With bounded set, a zero-count read is a timeout: the loop carries
// on and prints nothing for that pass. Without it, a zero-count read
// is end of input and the loop finishes cleanly.
func EchoKeys(in ByteReader, out io.Writer, quit byte, bounded bool) error {
	for {
		b, n, err := in.ReadByte()
		if err != nil {
			return err
		}
		if n == 0 {
			if bounded {
				continue
			}
			return nil
		}
		fmt.Fprintf(out, "%s\r\n", Key(b))
		if b == quit {
			return nil
		}
	}
}
