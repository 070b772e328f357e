package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/config"
	"github.com/yildizm/GefSum/internal/formatter"
	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/project"
)

var exportOut string

func newExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export parsed GEF files",
		Long: `Export borehole logs as DAM soil profiles or write records to an
Excel workbook.`,
	}

	exportCmd.PersistentFlags().StringVar(&exportOut, "out", "", "output file (default: stdout for dam)")

	exportCmd.AddCommand(newExportDAMCommand())
	exportCmd.AddCommand(newExportXLSXCommand())

	return exportCmd
}

func newExportDAMCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dam FILE...",
		Short: "Write borehole layers as a DAM soilprofiles.csv",
		Long: `Parse borehole files and write one DAM soil profile per borehole. Each
profile is named after the borehole and its first layer starts at the
configured top level.

Examples:
  gefsum export dam ./boringen --out soilprofiles.csv
  gefsum export dam B-17.gef B-18.gef`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExportDAM,
	}
}

func newExportXLSXCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "xlsx FILE...",
		Short: "Write CPT samples and borehole layers to an Excel workbook",
		Long: `Parse GEF files and write every record to its own worksheet.

Examples:
  gefsum export xlsx CPT-01.gef --out CPT-01.xlsx
  gefsum export xlsx ./sonderingen --out sonderingen.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExportXLSX,
	}
}

func runExportDAM(cmd *cobra.Command, args []string) error {
	records, err := parseRecords(cmd, args, model.KindBorehole)
	if err != nil {
		return err
	}

	profiles := make([]project.Profile, 0, len(records))
	for _, record := range records {
		borehole, ok := record.(*model.Borehole)
		if !ok {
			continue
		}
		profiles = append(profiles, project.ProfileFromBorehole(borehole))
	}

	var out bytes.Buffer
	if err := project.WriteSoilProfiles(&out, profiles, exportOptions(GetGlobalConfig())); err != nil {
		return err
	}
	if err := writeOutput(cmd, out.Bytes(), exportOut); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d soil profiles to %s\n", GetEmoji("export"), len(profiles), exportOut)
	}
	return nil
}

func runExportXLSX(cmd *cobra.Command, args []string) error {
	if exportOut == "" {
		return fmt.Errorf("--out is required for xlsx export")
	}

	kind, err := resolveKind("")
	if err != nil {
		return err
	}
	records, err := parseRecords(cmd, args, kind)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := formatter.WriteXLSX(&out, records); err != nil {
		return err
	}
	if err := writeOutputBytesToFile(out.Bytes(), exportOut); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d records to %s\n", GetEmoji("export"), len(records), exportOut)
	return nil
}

// parseRecords parses the files in args in parallel. Files that fail are
// logged; it is an error only when nothing could be parsed.
func parseRecords(cmd *cobra.Command, args []string, kind model.Kind) ([]model.Record, error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	opts, err := parserOptions()
	if err != nil {
		return nil, err
	}
	files, err := collectGEFFiles(args)
	if err != nil {
		return nil, err
	}

	log := newLogger("export")
	results, err := catalog.ParseAll(ctx, investigationsFor(files, kind), GetGlobalConfig().Scan.Workers, opts)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			log.WarnWithFields("skipping file", []logger.Field{logger.File(r.Investigation.Filename), logger.Error(r.Err)})
			continue
		}
		logRecord(log, r.Record)
		records = append(records, r.Record)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("none of the %d files could be parsed", len(files))
	}
	return records, nil
}

func exportOptions(cfg *config.Config) project.ExportOptions {
	return project.ExportOptions{
		TopLevel:   cfg.Export.TopLevel,
		Separator:  cfg.Export.Separator,
		ShortNames: cfg.Export.SoilName != "full",
	}
}
