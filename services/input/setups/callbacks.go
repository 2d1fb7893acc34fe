package setups

import (
	"io"
	"runtime"
	"strconv"

	"macropad-go/services/input"
)

// Callbacks returns the macros the built-in layouts refer to, printing
// to w.
func Callbacks(w io.Writer) input.Callbacks {
	return input.Callbacks{
		"freemem": func() {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			_, _ = io.WriteString(w, "Free memory: "+strconv.FormatUint(ms.HeapIdle, 10)+"\n")
		},
		"hello": func() { _, _ = io.WriteString(w, "macro triggered\n") },
	}
}
