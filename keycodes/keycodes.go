package main

import (
	"fmt"
	"os"

	"github.com/Rosettea/rawterm"
)

// Blocking variant of the keycode echo: no read timeout, so the loop
// ends on the quit byte or on end of input.
func main() {
	os.Exit(run())
}

func run() int {
	sess, err := rawterm.Open(os.Stdin)
	if err != nil {
		return die(err)
	}
	defer sess.Restore()

	if err := sess.EnterRaw(0); err != nil {
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
