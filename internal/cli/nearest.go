package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/formatter"
)

var (
	nearestX        float64
	nearestY        float64
	nearestDistance float64
	nearestMax      int
	nearestCatalog  string
	nearestKind     string
)

func newNearestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearest [DIR] --x X --y Y",
		Short: "Find the investigations closest to a point",
		Long: `List the investigations within a search distance of a point, closest
first. Investigations come from DIR, a catalog saved with 'gefsum scan --save',
or the configured CPT and borehole directories.

Examples:
  gefsum nearest --x 132100 --y 457900
  gefsum nearest ./boringen --x 132100 --y 457900 --distance 250 --max 3
  gefsum nearest --catalog catalog.yaml --x 132100 --y 457900 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNearest,
	}

	cmd.Flags().Float64Var(&nearestX, "x", 0, "x coordinate of the point")
	cmd.Flags().Float64Var(&nearestY, "y", 0, "y coordinate of the point")
	cmd.Flags().Float64VarP(&nearestDistance, "distance", "d", 0, "search distance in metres (default from config)")
	cmd.Flags().IntVarP(&nearestMax, "max", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().StringVar(&nearestCatalog, "catalog", "", "catalog file written by 'gefsum scan --save'")
	cmd.Flags().StringVarP(&nearestKind, "kind", "k", "auto", "kind of the files in DIR (auto, cpt, borehole)")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func runNearest(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	distance := cfg.Scan.SearchDistance
	if cmd.Flags().Changed("distance") {
		distance = nearestDistance
	}
	limit := cfg.Scan.MaxResults
	if cmd.Flags().Changed("max") {
		limit = nearestMax
	}
	if distance < 0 || limit < 1 {
		return fmt.Errorf("distance must be non-negative and max at least 1")
	}

	var (
		c   *catalog.Catalog
		err error
	)
	if nearestCatalog != "" {
		c, err = catalog.LoadFromFile(nearestCatalog)
	} else {
		c, err = buildCatalog(cmd, args, nearestKind)
	}
	if err != nil {
		return err
	}

	matches := c.Closest(nearestX, nearestY, distance, limit)
	entries := make([]formatter.Entry, 0, len(matches))
	for _, m := range matches {
		d := m.Distance
		entries = append(entries, formatter.Entry{Investigation: m.Investigation, Distance: &d})
	}

	title := fmt.Sprintf("Within %.0f m of %.2f, %.2f", distance, nearestX, nearestY)
	output, err := formatter.FormatEntries(getOutputFormat(), useColor(), title, entries)
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, "")
}
