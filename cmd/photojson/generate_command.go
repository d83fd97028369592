package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"photojson/internal/catalog"
	"photojson/internal/config"
	"photojson/internal/document"
	"photojson/internal/logging"
	"photojson/internal/palette"
	"photojson/internal/preflight"
)

type generateOptions struct {
	colors  int
	pretty  bool
	workers int
	method  string
	quality int
	verbose bool
	quiet   bool
	summary bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <path> [destination]",
		Short: "Catalog every image below path into a JSON document",
		Long: "Walk path, extract kind, dimensions and a color palette from every JPEG and PNG file,\n" +
			"and write the catalog to destination. Without a destination the document goes to\n" +
			"standard output; a directory receives images_output.json; otherwise destination\n" +
			"must be a .json file.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg, args); err != nil {
				return err
			}
			return runGenerate(cmd, cfg, args[0], opts.summary)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.colors, "colors", "n", 0, "Palette size per image (1-255)")
	flags.BoolVarP(&opts.pretty, "pretty", "p", false, "Indent the JSON document")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Images to inspect concurrently")
	flags.StringVar(&opts.method, "method", "", "Palette method: median_cut, dominant or kmeans (only median_cut output is stable across runs)")
	flags.IntVar(&opts.quality, "quality", 0, "Sample every Nth pixel")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every skipped entry")
	flags.BoolVar(&opts.quiet, "quiet", false, "Only log errors")
	flags.BoolVar(&opts.summary, "summary", false, "Print a summary table to stderr")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// apply layers explicitly set flags and the optional destination argument
// over the loaded config, then validates the result.
func (o generateOptions) apply(cmd *cobra.Command, cfg *config.Config, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("colors") {
		cfg.Catalog.PaletteSize = o.colors
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = o.pretty
	}
	if flags.Changed("workers") {
		cfg.Catalog.Workers = o.workers
	}
	if flags.Changed("method") {
		method, err := palette.ParseMethod(o.method)
		if err != nil {
			return err
		}
		cfg.Catalog.PaletteMethod = string(method)
	}
	if flags.Changed("quality") {
		cfg.Catalog.SampleQuality = o.quality
	}
	switch {
	case o.verbose:
		cfg.Logging.Level = "debug"
	case o.quiet:
		cfg.Logging.Level = "error"
	}
	if len(args) > 1 {
		dest, err := config.ExpandPath(args[1])
		if err != nil {
			return fmt.Errorf("resolve destination: %w", err)
		}
		cfg.Output.Destination = dest
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, root string, summary bool) error {
	// Reject a bad destination before spending time on the walk.
	if _, err := document.ResolveDestination(cfg.Output.Destination); err != nil {
		return err
	}

	runCtx, logger, err := runLogger(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "generate")

	if check := preflight.CheckRoot("Catalog root", root); !check.Passed {
		logging.WarnWithContext(logger, "catalog root not readable", "preflight_failed",
			logging.String("detail", check.Detail),
			logging.String(logging.FieldErrorHint, "check the path and its permissions"),
			logging.String(logging.FieldImpact, "the document will list no images from this root"),
		)
	}

	method, err := palette.ParseMethod(cfg.Catalog.PaletteMethod)
	if err != nil {
		return err
	}
	quantizer, err := palette.New(method)
	if err != nil {
		return err
	}
	inspector := catalog.NewInspector(
		catalog.WithPaletteSize(uint8(cfg.Catalog.PaletteSize)),
		catalog.WithQuality(cfg.Catalog.SampleQuality),
		catalog.WithQuantizer(quantizer),
	)

	reporter := newProgressReporter(cmd.ErrOrStderr())
	walker := catalog.NewWalker(inspector,
		catalog.WithWorkers(cfg.Catalog.Workers),
		catalog.WithLogger(logger),
		catalog.WithObserver(reporter.observe),
	)

	started := time.Now()
	result, err := walker.Walk(runCtx, root)
	reporter.stop()
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	target, err := document.NewWriter(cmd.OutOrStdout(), logger).Write(result.Images, cfg.Output.Destination, cfg.Output.Pretty)
	if err != nil {
		return err
	}

	logger.Info("catalog finished",
		logging.String("root", result.Root),
		logging.String("target", targetLabel(target)),
		logging.Int("images", len(result.Images)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int("failed", result.Failures()),
		logging.String("method", string(method)),
		logging.Duration("elapsed", time.Since(started)),
	)

	if summary {
		fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(result))
	}
	return nil
}

func targetLabel(target string) string {
	if target == "" {
		return "stdout"
	}
	return target
}
