package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/formatter"
	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/monitor"
	"github.com/yildizm/GefSum/internal/parser"
)

var (
	parseKind       string
	parseOutputFile string
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse GEF files and show their profile",
		Long: `Parse GEF-CPT and GEF-BORE files and print the header facts and the
cone resistance profile or the soil layers.

The investigation kind is detected from #PROCEDURECODE or #REPORTCODE unless
--kind is given. Directories are searched for .gef files.

Examples:
  gefsum parse CPT-01.gef
  gefsum parse --kind borehole B-17.GEF
  gefsum parse -o json ./sonderingen > cpts.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().StringVarP(&parseKind, "kind", "k", "", "investigation kind (auto, cpt, borehole)")
	cmd.Flags().StringVar(&parseOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := newLogger("parse")

	kind, err := resolveKind(parseKind)
	if err != nil {
		return err
	}
	opts, err := parserOptions()
	if err != nil {
		return err
	}
	format := getOutputFormat()
	f, err := formatter.New(format, useColor(), plotOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	files, err := collectGEFFiles(args)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	failed := 0
	stats := monitor.NewParseStats()
	for _, path := range files {
		record, err := stats.Track(func() (model.Record, error) {
			return parser.ParseFile(path, kind, opts)
		})
		if err != nil {
			if len(files) == 1 {
				return err
			}
			log.ErrorWithFields("failed to parse", []logger.Field{logger.File(path), logger.Error(err)})
			failed++
			continue
		}
		logRecord(log, record)

		data, err := f.Format(record)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		if out.Len() > 0 {
			out.WriteString(recordSeparator(format))
		}
		out.Write(data)
	}

	if err := writeOutput(cmd, out.Bytes(), parseOutputFile); err != nil {
		return err
	}
	snap := stats.Snapshot()
	log.InfoWithFields("parse complete", []logger.Field{
		logger.Count(int(snap.Files())),
		logger.F("failed", snap.Failed),
		logger.Duration(snap.TotalParseTime),
	})
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(files))
	}
	return nil
}

// recordSeparator keeps multi-record output readable by the tools consuming the format
func recordSeparator(format string) string {
	switch format {
	case "yaml", "yml":
		return "---\n"
	case "csv", "json":
		return ""
	default:
		return "\n"
	}
}
