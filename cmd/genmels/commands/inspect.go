package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jurevreca12/mel-engine/dsp/filter/mel"
	"github.com/jurevreca12/mel-engine/dsp/meltable"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

type inspectOptions struct {
	table      tableFlags
	dumpConfig bool
}

func newInspectCmd(g *globalOptions) *cobra.Command {
	o := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show per-filter support and table statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, g, o)
		},
	}

	o.table.register(cmd.Flags())
	cmd.Flags().BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")

	return cmd
}

func runInspect(cmd *cobra.Command, g *globalOptions, o *inspectOptions) error {
	cfg, res, err := g.loadConfig(cmd, &o.table)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if o.dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}

		_, err = out.Write(data)

		return err
	}

	built, err := buildTable(cfg, res)
	if err != nil {
		return err
	}

	tbl := built.table

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d mel filters, %d bins, %s, %s",
		built.matrix.NumFilters(), built.matrix.NumBins(), tbl.Format, tbl.Strategy)))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Filter\tStream\tFirst\tLast\tPeak\tStop\n")

	for i, st := range mel.Support(built.matrix.Rows(), tbl.Threshold) {
		stream, stop := "-", "-"
		if tbl.Strategy.HasStops() {
			stream = meltable.StreamOf(i).String()
			stop = fmt.Sprint(tbl.Stops[i])
		}

		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.4f\t%s\n", i, stream, st.First, st.Last, st.Peak, stop)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	zero, both := 0, 0
	for _, e := range tbl.Entries {
		switch {
		case e.A.IsZero() && e.B.IsZero():
			zero++
		case !e.A.IsZero() && !e.B.IsZero():
			both++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d\n", labelStyle.Render("entries:"), tbl.Len())
	fmt.Fprintf(out, "%s %d\n", labelStyle.Render("empty entries:"), zero)
	fmt.Fprintf(out, "%s %d\n", labelStyle.Render("entries with two weights:"), both)
	fmt.Fprintf(out, "%s %g\n", labelStyle.Render("threshold:"), tbl.Threshold)

	return nil
}
