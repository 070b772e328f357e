package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/ui"
)

var (
	viewKind  string
	viewTheme string
)

func newViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [FILE|DIR...]",
		Short: "Browse GEF files in an interactive terminal UI",
		Long: `Parse GEF files in the background and browse them: a list of records with
a detail view showing the header facts next to the cone resistance and
friction ratio profile or the coloured soil layer column.

Without arguments the configured CPT and borehole directories are opened.

Examples:
  gefsum view ./sonderingen
  gefsum view CPT-01.gef B-17.gef --theme high-contrast`,
		RunE: runView,
	}

	cmd.Flags().StringVarP(&viewKind, "kind", "k", "", "investigation kind (auto, cpt, borehole)")
	cmd.Flags().StringVar(&viewTheme, "theme", "default", fmt.Sprintf("color theme %v", ui.GetAvailableThemes()))

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	var investigations []model.Investigation
	if len(args) == 0 {
		c, err := buildCatalog(cmd, nil, "")
		if err != nil {
			return err
		}
		investigations = c.List()
	} else {
		kind, err := resolveKind(viewKind)
		if err != nil {
			return err
		}
		files, err := collectGEFFiles(args)
		if err != nil {
			return err
		}
		investigations = investigationsFor(files, kind)
	}
	if len(investigations) == 0 {
		return fmt.Errorf("no GEF files to show")
	}

	opts, err := parserOptions()
	if err != nil {
		return err
	}
	if !ui.SetThemeByName(viewTheme) {
		return fmt.Errorf("unknown theme: %s", viewTheme)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ui.Run(ctx, investigations, ui.Options{
		Workers: cfg.Scan.Workers,
		Parser:  opts,
		Plot:    plotOptions(cfg),
		Theme:   viewTheme,
	})
}
