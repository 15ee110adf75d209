package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quadrafund.io/quadra/lib/errors"
)

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		var errorString string
		if quadraError, ok := err.(*errors.Error); ok {
			errorString = quadraError.Message
		} else {
			errorString = err.Error()
		}

		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString)
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		var errorString string
		if quadraError, ok := err.(*errors.Error); ok {
			errorString = quadraError.Message
		} else {
			errorString = err.Error()
		}

		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString)
	}

	cmd.Help()

	os.Exit(1)
}
