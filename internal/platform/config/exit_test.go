package config

import (
	"bytes"
	"os"
	"testing"
)

func TestExitfWritesMessageAndExits(t *testing.T) {
	var out bytes.Buffer
	code := -1
	stderr = &out
	exit = func(c int) { code = c }
	t.Cleanup(func() {
		stderr = os.Stderr
		exit = os.Exit
	})

	Exitf("parse flags: %s", "bad -seed")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if out.String() != "parse flags: bad -seed\n" {
		t.Fatalf("unexpected stderr %q", out.String())
	}
}
