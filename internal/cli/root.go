package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"vtcon/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "vtcon",
	Short: "vtcon – stdin-to-display console harness",
	Long: "vtcon copies standard input onto every connected display output " +
		"as console text while cooperating with the virtual terminal " +
		"subsystem: it suspends all hardware access when its VT is switched " +
		"away and resumes when switched back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(app.Config{})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a terminating error to the process exit status: the
// errno value when one is in the chain, 1 otherwise.
func exitCode(err error) int {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 1
}
