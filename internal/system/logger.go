package system

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared harness logger. It prints to stderr with
// timestamps so log lines survive next to whatever the active display
// backend does with the terminal.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})
