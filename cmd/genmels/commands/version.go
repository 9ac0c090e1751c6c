package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/build"
)

func newVersionCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, build.String())
			if g.verbose {
				fmt.Fprintf(out, "  go:     %s\n", runtime.Version())
				if g.cfgFile != "" {
					fmt.Fprintf(out, "  config: %s\n", g.cfgFile)
				}
			}
		},
	}
}
