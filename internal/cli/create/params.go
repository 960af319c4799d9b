package create

import (
	"strings"

	"entq/internal/errcodes"
)

type createCmdArgs struct {
	DisplayName string
}

// parseArgs joins the arguments so unquoted multi-word names work.
func parseArgs(args []string) *createCmdArgs {
	return &createCmdArgs{DisplayName: strings.TrimSpace(strings.Join(args, " "))}
}

func validateArgs(a *createCmdArgs) error {
	if a.DisplayName == "" {
		return errcodes.ErrMissingDisplayName
	}

	return nil
}
