package display

import (
	"fmt"
	"io"
	"os"
)

// Display writes leveled diagnostics to stderr so stdout stays reserved for
// inventory output. It is the only place the rest of the code talks to a
// terminal for logging purposes.
type Display struct {
	Verbosity int
	Out       io.Writer
}

func New(verbosity int) *Display {
	return &Display{Verbosity: verbosity, Out: os.Stderr}
}

func (d *Display) V(format string, args ...any) {
	d.emit(1, "", format, args...)
}

func (d *Display) VV(format string, args ...any) {
	d.emit(2, "", format, args...)
}

func (d *Display) Warning(format string, args ...any) {
	d.emit(0, "[WARNING]: ", format, args...)
}

func (d *Display) Error(format string, args ...any) {
	d.emit(0, "[ERROR]: ", format, args...)
}

func (d *Display) emit(level int, prefix, format string, args ...any) {
	if d == nil || d.Verbosity < level {
		return
	}
	out := d.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, prefix+format+"\n", args...)
}
