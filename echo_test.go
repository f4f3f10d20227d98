package rawterm

import (
	"bytes"
	"errors"
	"testing"
)

type step struct {
	b   byte
	n   int
	err error
}

// scriptReader plays back a fixed sequence of reads. Running off the
// end is a test bug, surfaced as an error so the loop can't spin.
type scriptReader struct {
	steps []step
	pos   int
}

func (r *scriptReader) ReadByte() (byte, int, error) {
	if r.pos >= len(r.steps) {
		return 0, 0, errors.New("script exhausted")
	}
	st := r.steps[r.pos]
	r.pos++
	return st.b, st.n, st.err
}

func TestEchoKeys(t *testing.T) {
	readErr := &OpError{Op: "read", Err: errors.New("input/output error")}

	tests := []struct {
		name    string
		steps   []step
		bounded bool
		want    string
		wantErr error
	}{
		{
			name:  "Printable bytes then quit",
			steps: []step{{b: 'h', n: 1}, {b: 'i', n: 1}, {b: 'q', n: 1}},
			want:  "104 ('h')\r\n105 ('i')\r\n113 ('q')\r\n",
		},
		{
			name:  "Control byte then quit",
			steps: []step{{b: 3, n: 1}, {b: 'q', n: 1}},
			want:  "3\r\n113 ('q')\r\n",
		},
		{
			name:    "Timeouts are silent and do not end the loop",
			steps:   []step{{n: 0}, {n: 0}, {n: 0}, {b: 'q', n: 1}},
			bounded: true,
			want:    "113 ('q')\r\n",
		},
		{
			name:  "End of input without a timeout ends the loop",
			steps: []step{{b: 'h', n: 1}, {n: 0}},
			want:  "104 ('h')\r\n",
		},
		{
			name:    "Read error is fatal",
			steps:   []step{{b: 'h', n: 1}, {err: readErr}},
			bounded: true,
			want:    "104 ('h')\r\n",
			wantErr: readErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &scriptReader{steps: tt.steps}
			var out bytes.Buffer

			err := EchoKeys(in, &out, KeyQuit, tt.bounded)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("Expected output %q, got %q", tt.want, got)
			}
			if in.pos != len(tt.steps) {
				t.Errorf("Expected all %d reads consumed, got %d", len(tt.steps), in.pos)
			}
		})
	}
}

// A zero count must never be read as end of input while reads are
// bounded; only the quit byte ends this loop.
func TestEchoKeysTimeoutIsNotEndOfInput(t *testing.T) {
	steps := make([]step, 50)
	steps[len(steps)-1] = step{b: 'q', n: 1}

	in := &scriptReader{steps: steps}
	var out bytes.Buffer

	if err := EchoKeys(in, &out, KeyQuit, true); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if in.pos != len(steps) {
		t.Errorf("Expected the loop to ride out %d timeouts, stopped after %d reads", len(steps)-1, in.pos)
	}
	if got := out.String(); got != "113 ('q')\r\n" {
		t.Errorf("Expected only the quit byte to be echoed, got %q", got)
	}
}
