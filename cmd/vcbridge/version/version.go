package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/consts"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Prints out the version",
		RunE:  versionFunc,
	}
	return cmd
}

func versionFunc(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s@%s (%s, %s)\n", consts.Name, consts.Version, consts.SchemeSHA256Block, consts.SchemeChunkedMiMC)
	return nil
}
