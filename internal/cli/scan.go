package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/formatter"
	"github.com/yildizm/GefSum/internal/model"
)

var (
	scanKind       string
	scanSave       string
	scanOutputFile string
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "List the GEF files in a directory with their coordinates",
		Long: `Search a directory recursively for .gef files and read the position of
each one from its #XYID header. Only the header up to #XYID is read.

Without a directory the configured CPT and borehole directories are scanned
and each file gets the kind of the directory it was found in.

Examples:
  gefsum scan ./sonderingen --kind cpt
  gefsum scan --save catalog.yaml
  gefsum scan -o csv ./boringen`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanKind, "kind", "k", "auto", "kind of the files in DIR (auto, cpt, borehole)")
	cmd.Flags().StringVar(&scanSave, "save", "", "save the catalog as YAML for later nearest searches")
	cmd.Flags().StringVar(&scanOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	c, err := buildCatalog(cmd, args, scanKind)
	if err != nil {
		return err
	}

	if scanSave != "" {
		if err := c.SaveToFile(scanSave); err != nil {
			return err
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Catalog saved to: %s\n", scanSave)
		}
	}

	investigations := c.List()
	entries := make([]formatter.Entry, 0, len(investigations))
	for _, inv := range investigations {
		entries = append(entries, formatter.Entry{Investigation: inv})
	}

	title := fmt.Sprintf("Catalog: %d CPT, %d borehole", c.Count(model.KindCPT), c.Count(model.KindBorehole))
	output, err := formatter.FormatEntries(getOutputFormat(), useColor(), title, entries)
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, scanOutputFile)
}

// buildCatalog scans the directory in args, or the configured directories when args is empty
func buildCatalog(cmd *cobra.Command, args []string, kindFlag string) (*catalog.Catalog, error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	opts, err := parserOptions()
	if err != nil {
		return nil, err
	}
	scanner := catalog.NewScanner(opts, newLogger("scan"))

	if len(args) == 0 {
		cfg := GetGlobalConfig()
		return scanner.Build(ctx, existingDir(cfg.Scan.CPTDir), existingDir(cfg.Scan.BoreholeDir))
	}

	kind, err := resolveKind(kindFlag)
	if err != nil {
		return nil, err
	}
	investigations, err := scanner.ScanDirectory(ctx, args[0], kind)
	if err != nil {
		return nil, err
	}
	c := catalog.New()
	c.Add(investigations...)
	return c, nil
}

// existingDir drops configured directories that are not present
func existingDir(dir string) string {
	if dir == "" || !fileExists(dir) {
		return ""
	}
	return dir
}
