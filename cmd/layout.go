package cmd

import (
	"PixelDump/layout"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLayoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [FILE]",
		Short: "Validate a dump layout and print it",
		Long: `Validate a dump layout file and print its normalised YAML.

Without FILE the layout selected by the configuration is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.opts.Layout
			if len(args) == 1 {
				var err error
				if l, err = layout.Load(args[0]); err != nil {
					return err
				}
			}

			for _, w := range l.Warnings {
				a.logger.Warn("layout warning", zap.String("layout", l.Name()), zap.String("warning", w))
			}

			data, err := l.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
