// Package cmd contains the commands of the pixeldump binary.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"PixelDump/config"
	"PixelDump/convert"
	"PixelDump/dialogue"
	"PixelDump/dump"
	"PixelDump/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrReported is returned by commands whose failure was already shown to
// the user.
var ErrReported = errors.New("reported")

const (
	configFlag         = "config"
	variantFlag        = "variant"
	fieldWidthFlag     = "field-width"
	legacyWidthFlag    = "legacy-width"
	legacyTruncateFlag = "legacy-truncate"
	maxDimensionFlag   = "max-dimension"
	outputNameFlag     = "output-name"
	dumpNameFlag       = "dump-name"
	layoutFileFlag     = "layout-file"
	localeFlag         = "locale"
	logFormatFlag      = "log-format"
	logLevelFlag       = "log-level"
	verboseFlag        = "verbose"
)

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	variantFlag:        "variant",
	fieldWidthFlag:     "field_width",
	legacyWidthFlag:    "legacy.width",
	legacyTruncateFlag: "legacy.truncate",
	maxDimensionFlag:   "max_dimension",
	outputNameFlag:     "output_name",
	dumpNameFlag:       "dump_name",
	layoutFileFlag:     "layout_file",
	localeFlag:         "locale",
	logFormatFlag:      "log.format",
	logLevelFlag:       "log.level",
}

// app is the state shared by the commands of one invocation.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	opts     dump.Options
	logger   *logger.ZapLogger
	text     dialogue.Messages
	notifier dialogue.Notifier
	conv     *convert.Converter
}

// NewRootCommand builds the command tree. Settings come from CLI flags,
// PIXELDUMP_* environment variables or pixeldump.yaml (in that order).
// Without a subcommand it asks for the conversion interactively.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "pixeldump",
		Short: "Convert images to raw RGB channel dumps and back",
		Long: `Convert images to raw RGB channel dumps and back.

A dump holds the image width and height as two 32-bit integers followed by
the red, green and blue channel of every pixel, row by row. Headerless
legacy dumps with a fixed width are supported with --variant legacy.

Run without a command to be asked for the mode, the input file and the
output folder.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}

	d := config.DefaultConfig()
	flags := root.PersistentFlags()
	flags.String(configFlag, "", "configuration file (default pixeldump.yaml in . or $HOME/.pixeldump)")
	flags.String(variantFlag, d.Variant, "dump variant: header or legacy")
	flags.Int(fieldWidthFlag, d.FieldWidth, "bytes per channel field: 1 or 4")
	flags.Int(legacyWidthFlag, d.Legacy.Width, "image width assumed for legacy dumps")
	flags.Bool(legacyTruncateFlag, d.Legacy.Truncate, "drop a trailing partial row of a legacy dump instead of failing")
	flags.Int(maxDimensionFlag, d.MaxDimension, "largest width or height accepted from a dump")
	flags.String(outputNameFlag, d.OutputName, "file name of decoded images")
	flags.String(dumpNameFlag, d.DumpName, "file name of dumps written into a directory")
	flags.String(layoutFileFlag, d.LayoutFile, "custom dump layout file (YAML)")
	flags.String(localeFlag, d.Locale, "language of notifications: ru or en")
	flags.String(logFormatFlag, d.Log.Format, "log format: text or json")
	flags.String(logLevelFlag, d.Log.Level, "log level: none, debug, info, warn or error")
	flags.BoolP(verboseFlag, "v", false, "include the underlying error in failure notifications")

	for flag, key := range flagKeys {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newEncodeCommand(a),
		newDecodeCommand(a),
		newInspectCommand(a),
		newLayoutCommand(a),
		newSampleCommand(a),
		newConfigCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString(configFlag)
	cfg, err := config.ReadConfig(a.v, configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.text, err = dialogue.MessagesFor(cfg.Locale)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool(verboseFlag)
	a.notifier = &dialogue.Console{
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
		Text:    a.text,
		Verbose: verbose,
	}

	a.logger, err = logger.NewLogger(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}

	a.opts, err = cfg.DumpOptions()
	if err != nil {
		return err
	}
	a.conv = convert.New(a.opts,
		convert.WithOutputName(cfg.OutputName),
		convert.WithDumpName(cfg.DumpName),
		convert.WithLogger(a.logger),
	)
	return nil
}

// run performs one conversion and reports its outcome.
func (a *app) run(ctx context.Context, req convert.Request) error {
	path, err := a.conv.Run(ctx, req)
	if err != nil {
		a.notifier.Failure(err)
		return ErrReported
	}
	a.notifier.Success(req.Mode, path)
	return nil
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	p := dialogue.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), a.text)
	req, err := p.ShowRequest()
	if err != nil {
		return err
	}
	return a.run(cmd.Context(), req)
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
