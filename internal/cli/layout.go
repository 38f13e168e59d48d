package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/layout"
)

// spinnerDelay keeps the spinner hidden for layouts that finish quickly.
const spinnerDelay = 300 * time.Millisecond

// layoutFlags holds the layout command's flag values. Spacing flags only
// override the config file when set explicitly.
type layoutFlags struct {
	output  string
	noCache bool
	layout  layout.Config
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Compute positions and connector paths for a diagram",
		Long: `Compute positions and connector paths for a diagram document.

The input is a JSON document with "shapes" and "links". Shapes connected by
generalization or realization links are layered with parents above children
and their links are routed through bend points. Remaining shapes are placed
in rows below the hierarchy. The result is the same document with updated
coordinates and paths.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], flags, cmd.Flags())
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	cmd.Flags().Float64Var(&flags.layout.HorizontalGap, "horizontal-gap", layout.DefaultHorizontalGap, "space between shapes in a level")
	cmd.Flags().Float64Var(&flags.layout.VerticalGap, "vertical-gap", layout.DefaultVerticalGap, "space between levels")
	cmd.Flags().Float64Var(&flags.layout.NonHierarchyGap, "non-hierarchy-gap", layout.DefaultNonHierarchyGap, "space between the hierarchy and the rows below it")
	cmd.Flags().Float64Var(&flags.layout.Margin, "margin", layout.DefaultMargin, "offset of the drawing from the origin")
	cmd.Flags().Float64Var(&flags.layout.MaxWidth, "max-width", layout.DefaultMaxWidth, "row width before non-hierarchy shapes wrap")
	cmd.Flags().IntVar(&flags.layout.MaxCrossingReductionPasses, "passes", layout.DefaultMaxCrossingReductionPasses, "maximum crossing reduction passes")

	return cmd
}

// overrideLayout copies explicitly set spacing flags onto cfg.
func overrideLayout(cfg *layout.Config, set *pflag.FlagSet, flags layout.Config) {
	if set.Changed("horizontal-gap") {
		cfg.HorizontalGap = flags.HorizontalGap
	}
	if set.Changed("vertical-gap") {
		cfg.VerticalGap = flags.VerticalGap
	}
	if set.Changed("non-hierarchy-gap") {
		cfg.NonHierarchyGap = flags.NonHierarchyGap
	}
	if set.Changed("margin") {
		cfg.Margin = flags.Margin
	}
	if set.Changed("max-width") {
		cfg.MaxWidth = flags.MaxWidth
	}
	if set.Changed("passes") {
		cfg.MaxCrossingReductionPasses = flags.MaxCrossingReductionPasses
	}
}

// runLayout reads the document, lays it out (or fetches a cached result) and
// writes the output.
func (c *CLI) runLayout(ctx context.Context, out io.Writer, input string, flags layoutFlags, set *pflag.FlagSet) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	overrideLayout(&cfg.Layout, set, flags.layout)

	toStdout := flags.output == "-"
	outputPath := flags.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if !toStdout {
		if err := errors.ValidatePath(outputPath); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}

	data, err := os.ReadFile(input)
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.New(errors.ErrCodeFileNotFound, "diagram not found: %s", input)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	store := c.newCache(ctx, cfg.Cache, flags.noCache)
	defer store.Close()
	key := newKeyer().LayoutKey(cache.Hash(data), cfg.Layout)

	prog := newProgress(c.Logger)
	result, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Debug("cache read failed", "err", err)
	}

	var stats layout.Stats
	if !cached {
		d, err := diagram.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("load diagram %s: %w", input, err)
		}

		spin := startSpinner(ctx, os.Stderr, "Computing layout...", spinnerDelay)
		stats, err = layout.New(layout.WithLogger(c.Logger)).Run(ctx, d.Shapes(), d.Links(), cfg.Layout)
		if err != nil {
			spin.StopWithError("Layout failed")
			return fmt.Errorf("compute layout: %w", err)
		}
		spin.Stop()

		var buf bytes.Buffer
		if err := diagram.WriteJSON(d, &buf); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		result = buf.Bytes()
		if err := store.Set(ctx, key, result, cfg.Cache.TTL.Duration); err != nil {
			printWarning("Could not cache layout: %v", err)
		}
	}
	prog.done("layout finished", "input", input, "cached", cached)

	if toStdout {
		_, err := out.Write(result)
		return err
	}

	if err := os.WriteFile(outputPath, result, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(stats, cached)
	if !cached && stats.Crossings > 0 {
		printNextStep("Try more passes", fmt.Sprintf("%s layout --passes %d %s", appName, max(stats.Passes, cfg.Layout.MaxCrossingReductionPasses)*2, input))
	}
	return nil
}
