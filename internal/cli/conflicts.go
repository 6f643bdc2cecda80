package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KyleKincer/tableyeah/pkg/conflictgraph"
	tyerrors "github.com/KyleKincer/tableyeah/pkg/errors"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// conflictsOptions holds the flags for the conflicts command.
type conflictsOptions struct {
	output string
	format string
}

// conflictsCommand creates the conflicts command for exporting double-bookings.
func (c *CLI) conflictsCommand() *cobra.Command {
	opts := &conflictsOptions{}

	cmd := &cobra.Command{
		Use:   "conflicts <day-sheet.json>",
		Short: "Export a day's double-bookings as a graph",
		Long: `Export the conflict graph of a day sheet.

Every pair of reservations that overlap on the same table becomes an
edge. The graph is emitted as Graphviz DOT by default, or rendered to
SVG with --format svg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConflicts(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot or svg")

	return cmd
}

// runConflicts executes the conflicts command.
func (c *CLI) runConflicts(sheetPath string, opts *conflictsOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	sheet, err := timeline.ReadDaySheetFile(sheetPath)
	if err != nil {
		return err
	}

	layout, dropped := timeline.Build(sheet, cfg.Policy(), cfg.Window())
	for _, d := range dropped {
		c.Logger.Warn("excluded from layout", "reservation", d.ReservationID, "reason", d.Reason)
	}

	edges := conflictgraph.Edges(layout)
	dot := conflictgraph.ToDOT(layout)

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = conflictgraph.RenderSVG(dot)
		if err != nil {
			return err
		}
	default:
		return tyerrors.New(tyerrors.ErrCodeUnsupported, "unknown format %q (want dot or svg)", opts.format)
	}

	if opts.output == "" {
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return tyerrors.Wrap(tyerrors.ErrCodeInternal, err, "write %s", opts.output)
	}

	if len(edges) == 0 {
		printSuccess("No double-bookings on %s", sheet.Date)
	} else {
		printWarning("%d double-bookings on %s", len(edges), sheet.Date)
	}
	printFile(opts.output)
	return nil
}
