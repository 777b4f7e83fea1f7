package cmd

import (
	"PixelDump/convert"

	"github.com/spf13/cobra"
)

func newEncodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode IMAGE OUTPUT",
		Short: "Convert an image into a dump",
		Long: `Convert an image (PNG, JPEG, GIF, BMP, TIFF or WebP) into a dump.

OUTPUT is the dump file. When OUTPUT is an existing directory the dump is
written there under the configured dump name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), convert.Request{
				Mode:   convert.ImageToBinary,
				Input:  args[0],
				Output: args[1],
			})
		},
	}
}

func newDecodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode DUMP OUTPUT_DIR",
		Short: "Convert a dump back into a PNG image",
		Long: `Convert a dump back into a PNG image.

The image is written into OUTPUT_DIR under the configured output name
(output_image.png by default).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), convert.Request{
				Mode:   convert.BinaryToImage,
				Input:  args[0],
				Output: args[1],
			})
		},
	}
}
