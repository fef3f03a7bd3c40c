package cli

// Exit codes for the semrel CLI.
// "No change needed" is a success.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an unrecoverable error: history unavailable,
	// manifest unwritable, or an invalid version string
	ExitFailure = 1
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
