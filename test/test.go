package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Rosettea/rawterm"
)

// Echoes keycodes until 'q'. Reads time out after 100ms so the loop
// could animate something later; timed-out passes print nothing.
// Check the shell's $? afterwards: 0 on quit, 1 on any terminal or
// read failure.
func main() {
	os.Exit(run())
}

func run() int {
	sess, err := rawterm.Open(os.Stdin)
	if err != nil {
		return die(err)
	}
	defer sess.Restore()

	if err := sess.EnterRaw(100 * time.Millisecond); err != nil {
		return die(err)
	}

	if err := rawterm.EchoKeys(sess, os.Stdout, rawterm.KeyQuit, sess.Bounded()); err != nil {
		return die(err)
	}
	return 0
}

func die(err error) int {
	fmt.Fprintf(os.Stderr, "%v\r\n", err)
	return 1
}
