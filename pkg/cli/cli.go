// Package cli wires the chromakey command line: one cobra subcommand per
// entry in stdimg.Commands, plus commands, version and update.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/chromakey/pkg/imgio"
	"github.com/Fepozopo/chromakey/pkg/pipeline"
	"github.com/Fepozopo/chromakey/pkg/stdimg"
)

// Version is the release version, set at build time with
// -ldflags "-X github.com/Fepozopo/chromakey/pkg/cli.Version=1.2.3".
var Version = "0.1.0"

// Execute runs the CLI against os.Args and returns the process exit code.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes one invocation with explicit streams. Usage problems return
// ExitUsage, any other failure ExitFailure.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, store: NewMetaStoreFromStdimg(stdimg.Commands)}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "chromakey: %v\n", err)
	switch {
	case IsUsage(err):
		return ExitUsage
	case !a.started:
		// cobra rejected the invocation before any command ran
		return ExitUsage
	default:
		return ExitFailure
	}
}

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	store          *StdMetaStore
	started        bool
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chromakey",
		Short:         "Blue/green-screen masks and compositing for PPM and common image formats",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		_ = cmd.Help()
		return usageErrorf("", "missing command")
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	for _, spec := range stdimg.Commands {
		root.AddCommand(a.modeCommand(spec))
	}
	root.AddCommand(a.commandsCommand(), a.versionCommand(), a.updateCommand())
	return root
}

func (a *app) modeCommand(spec stdimg.CommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   spec.Usage,
		Short: spec.Description,
		Long:  GenerateTooltipFromStdSpec(spec),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != len(spec.Args) {
				return usageErrorf(spec.Name, "expected %d arguments, got %d (usage: chromakey %s)", len(spec.Args), len(args), spec.Usage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.started = true
			return a.runMode(cmd.Context(), spec.Name, args)
		},
	}
}

func (a *app) runMode(ctx context.Context, name string, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(a.stderr, cfg.Debug)
	pipeline.SetLogger(logger)
	defer pipeline.SetLogger(nil)

	vals, err := NormalizeArgsFromStd(a.store, name, args)
	if err != nil {
		return err
	}
	opts, err := buildOptions(name, vals, cfg)
	if err != nil {
		return err
	}

	if cfg.Magick {
		if !imgio.MagickAvailable {
			logger.Warn("ImageMagick requested but not compiled in; using built-in codecs", "env", EnvMagick)
		}
		codec, stop := imgio.StartMagick()
		defer stop()
		opts.Codec = codec
	}

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: wrote %s (%dx%d)\n", name, res.Output, res.Width, res.Height)
	return nil
}

// buildOptions turns normalized arguments into pipeline options.
func buildOptions(name string, vals map[string]string, cfg Config) (pipeline.Options, error) {
	mode, err := pipeline.ParseMode(name)
	if err != nil {
		return pipeline.Options{}, &UsageError{Command: name, Err: err}
	}
	opts := pipeline.Options{
		Mode:       mode,
		Input:      vals["input"],
		Foreground: vals["foreground"],
		Background: vals["background"],
		Mask:       vals["mask"],
		Output:     vals["output"],
	}

	if k, ok := vals["keyColor"]; ok {
		key, err := stdimg.ParseKey(k)
		if err != nil {
			return opts, &UsageError{Command: name, Err: err}
		}
		if mode == pipeline.ModeKeyOut {
			opts.Segment = stdimg.DefaultKeyOutOptions(key)
		} else {
			opts.Segment = stdimg.DefaultSegmentOptions(key)
		}
		opts.Segment = cfg.Apply(opts.Segment)
	}

	// Values were validated by NormalizeArgsFromStd; parse errors cannot occur here.
	if s, ok := vals["dx"]; ok {
		opts.DX, _ = strconv.Atoi(s)
	}
	if s, ok := vals["dy"]; ok {
		opts.DY, _ = strconv.Atoi(s)
	}
	if s, ok := vals["scaleFactor"]; ok {
		opts.Scale, _ = strconv.ParseFloat(s, 64)
	}
	if s, ok := vals["rotate"]; ok {
		opts.Rotate = s == "true"
	}
	if mode == pipeline.ModeAdjust {
		opts.Adjust = stdimg.DefaultAdjustOptions()
	}
	return opts, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) commandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the image commands with their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.started = true
			for i, c := range a.store.Commands {
				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				tip, err := a.store.GetTooltip(c.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s\n  usage: chromakey %s\n%s\n", c.Name, c.Usage, tip)
			}
			return nil
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chromakey version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.started = true
			fmt.Fprintln(a.stdout, Version)
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.started = true
			return CheckForUpdates(cmd.Context(), a.stdin, a.stdout)
		},
	}
}
