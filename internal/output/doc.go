// Package output handles console output and exit codes for the hyf-plan CLI.
//
// Every command writes through a Printer, which switches between a
// human-readable form (lipgloss styles, disabled when not attached to a
// terminal) and a JSON form selected by the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "cs101.algo1.issue.md created in current directory."})
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad identifier, missing plan/class, malformed data
//	output.ExitSystemError // 2: I/O failure writing the issue file
//
// Errors built with NewUserError or NewSystemError carry their code; any
// other error is reported as a user error.
package output
