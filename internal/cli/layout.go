package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KyleKincer/tableyeah/pkg/cache"
	tyerrors "github.com/KyleKincer/tableyeah/pkg/errors"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// layoutOptions holds the flags for the layout command.
type layoutOptions struct {
	output  string
	noCache bool
	pretty  bool
}

// layoutCommand creates the layout command for computing timeline layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := &layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout <day-sheet.json>",
		Short: "Compute a lane-packed timeline layout from a day sheet",
		Long: `Compute a timeline layout from a day-sheet JSON file.

Each table becomes one row; overlapping reservations on the same table
are packed into parallel lanes and flagged as conflicts. Reservations
whose start time cannot be parsed are dropped with a warning, never
failing the pass.

The layout is written as JSON to --output, or to stdout when no output
path is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runLayout(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")

	return cmd
}

// runLayout executes the layout command.
func (c *CLI) runLayout(ctx context.Context, sheetPath string, opts *layoutOptions) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	policy, window := cfg.Policy(), cfg.Window()

	sheet, err := timeline.ReadDaySheetFile(sheetPath)
	if err != nil {
		return err
	}

	layoutCache, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer layoutCache.Close()

	prog := newProgress(logger)
	key := cache.LayoutKey(sheet, policy, window)

	var (
		layout  *timeline.Layout
		dropped []timeline.Dropped
		served  bool
	)
	if data, ok, cacheErr := layoutCache.Get(ctx, key); cacheErr != nil {
		logger.Warn("layout cache get failed", "err", cacheErr)
	} else if ok {
		if layout, err = timeline.UnmarshalLayout(data); err == nil {
			served = true
		}
	}
	if !served {
		layout, dropped = timeline.Build(sheet, policy, window)
		if data, marshalErr := timeline.MarshalLayout(layout); marshalErr == nil {
			if cacheErr := layoutCache.Set(ctx, key, data, cache.DefaultLayoutTTL); cacheErr != nil {
				logger.Warn("layout cache set failed", "err", cacheErr)
			}
		}
	}

	for _, d := range dropped {
		logger.Warn("excluded from layout", "reservation", d.ReservationID, "reason", d.Reason)
	}
	prog.done(fmt.Sprintf("Laid out %d reservations across %d rows", layout.BarCount(), len(layout.Rows)))

	if err := writeLayoutOutput(layout, opts); err != nil {
		return err
	}

	// Keep stdout clean for piping when no output file is given.
	if opts.output != "" {
		printSuccess("Layout for %s", sheet.Date)
		printStats(len(layout.Rows), layout.BarCount(), len(dropped), served)
		printFile(opts.output)
		printNextStep("Inspect conflicts", "tableyeah conflicts "+sheetPath)
	}
	return nil
}

// writeLayoutOutput writes the layout to the requested destination.
func writeLayoutOutput(layout *timeline.Layout, opts *layoutOptions) error {
	var (
		data []byte
		err  error
	)
	if opts.pretty {
		data, err = json.MarshalIndent(layout, "", "  ")
	} else {
		data, err = timeline.MarshalLayout(layout)
	}
	if err != nil {
		return tyerrors.Wrap(tyerrors.ErrCodeInternal, err, "encode layout")
	}

	if opts.output == "" {
		_, err = fmt.Println(strings.TrimRight(string(data), "\n"))
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return tyerrors.Wrap(tyerrors.ErrCodeInternal, err, "write %s", opts.output)
	}
	return nil
}
