// Rawterm puts an interactive terminal into raw mode and guarantees
// the original settings come back, no matter how the program leaves

package rawterm

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal means stdin was redirected from a file or pipe,
// so there is no terminal to configure.
var ErrNotTerminal = errors.New("not a terminal")

// OpError names the terminal operation that failed and keeps the
// system cause, so diagnostics read like perror output
// ("tcgetattr: inappropriate ioctl for device").
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

// Modes names the line-discipline capabilities raw mode turns off.
// A false field disables the capability, a true field leaves whatever
// the terminal already had. The zero value is full raw mode.
type Modes struct {
	Echo          bool // typed bytes reflected back to the display
	Canonical     bool // line buffering until a line terminator
	Signals       bool // SIGINT/SIGTSTP generation from ctrl-c, ctrl-z
	FlowControl   bool // ctrl-s/ctrl-q pause and resume output
	TranslateCR   bool // carriage return rewritten to newline on input
	PostProcess   bool // "\n" rewritten to "\r\n" on output
	ExtendedInput bool // literal-next and other driver conveniences
}

// rawAttrs derives the working attribute set from a captured baseline.
// Pure: the baseline goes in by value and comes back untouched, and each
// cleared group leaves unrelated bits alone. BRKINT, INPCK, ISTRIP and
// CS8 are not toggles; clearing the first three and forcing 8-bit
// characters is raw-mode convention regardless of what the caller wants.
func rawAttrs(base unix.Termios, m Modes, vmin, vtime uint8) unix.Termios {
	attr := base
	if !m.FlowControl {
		attr.Iflag &^= unix.IXON
	}
	if !m.TranslateCR {
		attr.Iflag &^= unix.ICRNL
	}
	attr.Iflag &^= unix.BRKINT | unix.INPCK | unix.ISTRIP
	attr.Cflag |= unix.CS8
	if !m.PostProcess {
		attr.Oflag &^= unix.OPOST
	}
	if !m.Echo {
		attr.Lflag &^= unix.ECHO
	}
	if !m.Canonical {
		attr.Lflag &^= unix.ICANON
	}
	if !m.Signals {
		attr.Lflag &^= unix.ISIG
	}
	if !m.ExtendedInput {
		attr.Lflag &^= unix.IEXTEN
	}
	attr.Cc[unix.VMIN] = vmin
	attr.Cc[unix.VTIME] = vtime
	return attr
}

// readTiming converts a timeout into the driver's VMIN/VTIME slots.
// Zero means block until at least one byte arrives. Anything else means
// return empty after that long with nothing typed; VTIME counts in
// tenths of a second and tops out at 25.5s.
func readTiming(timeout time.Duration) (vmin, vtime uint8) {
	if timeout <= 0 {
		return 1, 0
	}
	ds := int64(timeout / (100 * time.Millisecond))
	if ds < 1 {
		ds = 1
	}
	if ds > 255 {
		ds = 255
	}
	return 0, uint8(ds)
}

// Session owns the one terminal the process gets to reconfigure.
// The attributes captured by Open are never written to again; they are
// the sole source of truth for putting the terminal back.
type Session struct {
	f        *os.File
	orig     unix.Termios
	buf      [1]byte
	bounded  bool
	restored bool
}

// Open captures the terminal's current attributes so they can be
// restored later. It fails before touching anything if f is not an
// interactive terminal, which is what happens when stdin is redirected.
func Open(f *os.File) (*Session, error) {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) {
		return nil, &OpError{Op: "isatty", Err: ErrNotTerminal}
	}
	s := &Session{f: f}
	if err := termios.Tcgetattr(fd, &s.orig); err != nil {
		return nil, &OpError{Op: "tcgetattr", Err: err}
	}
	return s, nil
}

// Apply derives a working attribute set from the captured baseline and
// applies it, discarding unread input and draining pending output
// first. timeout > 0 makes reads return empty after that long instead
// of blocking forever.
func (s *Session) Apply(m Modes, timeout time.Duration) error {
	vmin, vtime := readTiming(timeout)
	attr := rawAttrs(s.orig, m, vmin, vtime)
	if err := termios.Tcsetattr(s.f.Fd(), termios.TCSAFLUSH, &attr); err != nil {
		return &OpError{Op: "tcsetattr", Err: err}
	}
	s.bounded = timeout > 0
	return nil
}

// EnterRaw is Apply with every capability disabled.
func (s *Session) EnterRaw(timeout time.Duration) error {
	return s.Apply(Modes{}, timeout)
}

// Restore puts the original attributes back, once. Calling it again is
// a no-op, so a deferred Restore and an explicit one don't fight.
func (s *Session) Restore() error {
	if s.restored {
		return nil
	}
	s.restored = true
	if err := termios.Tcsetattr(s.f.Fd(), termios.TCSAFLUSH, &s.orig); err != nil {
		return &OpError{Op: "tcsetattr", Err: err}
	}
	return nil
}

// Close restores the terminal, satisfying io.Closer.
func (s *Session) Close() error { return s.Restore() }

// Bounded reports whether the last Apply gave reads a timeout.
func (s *Session) Bounded() bool { return s.bounded }

// ReadByte asks the terminal for a single byte. A count of zero with a
// nil error is not failure: under a timeout it means nothing was typed
// in time, without one it means end of input. Cygwin reports the
// timed-out read as EAGAIN instead of a zero count, so that one errno
// is folded into the zero-count case.
func (s *Session) ReadByte() (byte, int, error) {
	n, err := unix.Read(int(s.f.Fd()), s.buf[:])
	if err == unix.EAGAIN {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, &OpError{Op: "read", Err: err}
	}
	if n <= 0 {
		return 0, 0, nil
	}
	return s.buf[0], 1, nil
}

// Size reports the terminal's column and row counts.
func (s *Session) Size() (cols, rows int, err error) {
	return term.GetSize(int(s.f.Fd()))
}
