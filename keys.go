package rawterm

import (
	"fmt"
	"strconv"
)

const (
	KeyNull      = 0
	KeyCtrlC     = 3
	KeyCtrlD     = 4
	KeyTab       = 9
	KeyEnter     = 13
	KeyCtrlQ     = 17
	KeyCtrlS     = 19
	KeyCtrlZ     = 26
	KeyEsc       = 27
	KeyBackspace = 127

	// KeyQuit ends the echo loop
	KeyQuit = 'q'
)

// Key is one byte as delivered by a raw-mode read.
type Key byte

// Control reports whether the key is a non-printable control byte,
// decimal 0-31 or 127.
func (k Key) Control() bool {
	return k <= 31 || k == KeyBackspace
}

// String renders the key the way the echo loop prints it: control
// bytes as just the decimal value, everything else as the decimal
// value plus the character.
func (k Key) String() string {
	if k.Control() {
		return strconv.Itoa(int(k))
	}
	return fmt.Sprintf("%d ('%c')", byte(k), k)
}
