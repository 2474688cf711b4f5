// Package main is the entry point for the wowvault CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tdalbo/wowvault/cmd/wowvault/commands"
	apperrors "github.com/tdalbo/wowvault/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *apperrors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "\n%s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(apperrors.ExitUser)
	}
}
