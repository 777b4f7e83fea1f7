package cmd

import (
	"fmt"

	"PixelDump/testimage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSampleCommand(a *app) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "sample OUTPUT",
		Short: "Write a gradient test image (.png, .bmp or .tiff)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid sample size %dx%d", width, height)
			}
			if err := testimage.WriteFile(args[0], testimage.Gradient(width, height)); err != nil {
				return err
			}
			a.logger.Info("sample image written", zap.String("output", args[0]), zap.Int("width", width), zap.Int("height", height))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 256, "image width")
	cmd.Flags().IntVar(&height, "height", 256, "image height")
	return cmd
}
