package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/config"
	"github.com/yildizm/GefSum/internal/formatter"
	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

// resolveKind returns the kind named by a --kind flag, or the configured kind when the flag is empty
func resolveKind(flag string) (model.Kind, error) {
	if flag == "" {
		return GetGlobalConfig().Kind()
	}
	if flag == "auto" {
		return model.KindNone, nil
	}
	return model.ParseKind(flag)
}

func plotOptions(cfg *config.Config) formatter.PlotOptions {
	return formatter.PlotOptions{
		QCMax:        cfg.Output.QCMax,
		RfMax:        cfg.Output.RfMax,
		MinElevation: cfg.Output.PlotMinElevation,
	}
}

// commandContext bounds a command by the configured timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := GetGlobalConfig().Scan.Timeout; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// collectGEFFiles expands directories to the GEF files below them. Files are
// passed through so that a wrong extension is reported by the parser.
func collectGEFFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		cleanPath := filepath.Clean(arg)
		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file does not exist: %s", cleanPath)
			}
			return nil, fmt.Errorf("cannot access file: %w", err)
		}
		if !info.IsDir() {
			files = append(files, cleanPath)
			continue
		}
		found, err := catalog.FindGEFFiles(cleanPath)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no GEF files found in %s", strings.Join(args, ", "))
	}
	return files, nil
}

// investigationsFor turns file arguments into investigations of the given kind
func investigationsFor(files []string, kind model.Kind) []model.Investigation {
	investigations := make([]model.Investigation, 0, len(files))
	for _, file := range files {
		investigations = append(investigations, model.Investigation{Kind: kind, Filename: file})
	}
	return investigations
}

// logRecord reports what was dropped while parsing a record
func logRecord(log *logger.Logger, record model.Record) {
	cpt, ok := record.(*model.CPT)
	if !ok || cpt.Skipped == 0 {
		return
	}
	log.DebugWithFields("voided samples skipped", []logger.Field{logger.File(cpt.Filename), logger.Count(cpt.Skipped)})
}

// writeOutput writes to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, output []byte, path string) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, path); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to: %s\n", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := file.Write(output); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	return file.Close()
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func parserOptions() (parser.Options, error) {
	opts, err := GetGlobalConfig().ParserOptions()
	if err != nil {
		return parser.Options{}, fmt.Errorf("invalid parse settings: %w", err)
	}
	return opts, nil
}
