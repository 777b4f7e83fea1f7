package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect DUMP",
		Short: "Show the dimensions of a dump and check its size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.conv.InspectFile(args[0])
			if err != nil {
				a.notifier.Failure(err)
				return ErrReported
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
			fmt.Fprintf(w, "layout:\t%s\n", info.Layout)
			fmt.Fprintf(w, "dimensions:\t%dx%d\n", info.Width, info.Height)
			fmt.Fprintf(w, "header:\t%d bytes\n", info.HeaderSize)
			fmt.Fprintf(w, "field width:\t%d bytes\n", info.FieldWidth)
			fmt.Fprintf(w, "expected size:\t%d bytes\n", info.Expected)
			fmt.Fprintf(w, "actual size:\t%d bytes\n", info.Actual)
			if info.WellFormed() {
				fmt.Fprintf(w, "status:\tok\n")
			} else {
				fmt.Fprintf(w, "status:\t%s\n", info.Problem)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !info.WellFormed() {
				return ErrReported
			}
			return nil
		},
	}
}
