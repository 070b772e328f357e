package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
	"github.com/yildizm/GefSum/internal/project"
)

var (
	projectPath    string
	projectForce   bool
	projectReset   bool
	projectAll     bool
	projectCatalog string
)

func newProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage a soil profile project",
		Long: `A project holds the soil types and the locations for which soil profiles
are compiled. Locations get their layers from a borehole, either named
explicitly or the closest one within the search distance.`,
	}

	projectCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "project file (default from config)")

	projectCmd.AddCommand(newProjectInitCommand())
	projectCmd.AddCommand(newProjectImportCommand())
	projectCmd.AddCommand(newProjectAssignCommand())
	projectCmd.AddCommand(newProjectShowCommand())
	projectCmd.AddCommand(newProjectExportCommand())

	return projectCmd
}

func newProjectInitCommand() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project with the default soil types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := getProjectPath()
			if !projectForce && fileExists(path) {
				return fmt.Errorf("project file already exists at %s (use --force to overwrite)", path)
			}
			if err := project.New().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Project created at: %s\n", GetEmoji("success"), path)
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&projectForce, "force", "f", false, "overwrite an existing project file")

	return initCmd
}

func newProjectImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import-locations CSV",
		Short: "Add locations from a name,x,y CSV file",
		Long: `Read locations from a CSV file with a header line followed by name,x,y
rows. Rows that cannot be read are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runProjectImport,
	}

	importCmd.Flags().BoolVar(&projectReset, "reset", false, "remove existing locations first")

	return importCmd
}

func newProjectAssignCommand() *cobra.Command {
	assignCmd := &cobra.Command{
		Use:   "assign [LOCATION [BOREHOLE]]",
		Short: "Give locations the layers of a borehole",
		Long: `Copy the soil layers of a borehole to a location. Without a borehole file
the closest borehole within the search distance is used, taken from --catalog
or the configured borehole directory.

Examples:
  gefsum project assign DP-12 ./boringen/B-17.gef
  gefsum project assign DP-12
  gefsum project assign --all --catalog catalog.yaml`,
		Args: cobra.MaximumNArgs(2),
		RunE: runProjectAssign,
	}

	assignCmd.Flags().BoolVar(&projectAll, "all", false, "assign every location from its closest borehole")
	assignCmd.Flags().StringVar(&projectCatalog, "catalog", "", "catalog file written by 'gefsum scan --save'")

	return assignCmd
}

func newProjectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the soil types and locations of the project",
		Args:  cobra.NoArgs,
		RunE:  runProjectShow,
	}
}

func newProjectExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the assigned location profiles as a DAM soilprofiles.csv",
		Args:  cobra.NoArgs,
		RunE:  runProjectExport,
	}

	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")

	return exportCmd
}

func getProjectPath() string {
	if projectPath != "" {
		return projectPath
	}
	return GetGlobalConfig().Project.Path
}

func runProjectImport(cmd *cobra.Command, args []string) error {
	path := getProjectPath()
	p, err := project.Load(path)
	if err != nil {
		return err
	}
	if projectReset {
		p.Reset()
	}

	before := len(p.Locations)
	skipped, err := p.LoadLocationsFile(args[0])
	if err != nil {
		return err
	}
	log := newLogger("project")
	for _, rowErr := range skipped {
		log.Warn("skipping %v", rowErr)
	}

	if err := p.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d locations (%d rows skipped)\n",
		GetEmoji("location"), len(p.Locations)-before, len(skipped))
	return nil
}

func runProjectAssign(cmd *cobra.Command, args []string) error {
	path := getProjectPath()
	p, err := project.Load(path)
	if err != nil {
		return err
	}
	opts, err := parserOptions()
	if err != nil {
		return err
	}

	switch {
	case len(args) == 2:
		borehole, err := parser.ParseBoreholeFile(args[1], opts)
		if err != nil {
			return err
		}
		if err := p.AssignLayers(args[0], borehole.Layers); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d layers from %s\n", GetEmoji("layer"), args[0], len(borehole.Layers), args[1])
	case len(args) == 1 || projectAll:
		names := args
		if projectAll {
			names = nil
			for _, loc := range p.Locations {
				names = append(names, loc.Name)
			}
		}
		if err := assignClosest(cmd, p, names, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("name a location or use --all")
	}

	return p.Save(path)
}

// assignClosest gives each named location the layers of its closest borehole.
// Locations without a borehole in range are reported and left unchanged.
func assignClosest(cmd *cobra.Command, p *project.Project, names []string, opts parser.Options) error {
	c, err := boreholeCatalog(cmd)
	if err != nil {
		return err
	}
	cfg := GetGlobalConfig()
	log := newLogger("project")
	out := cmd.OutOrStdout()

	for _, name := range names {
		loc, err := p.Location(name)
		if err != nil {
			return err
		}

		matches := c.Closest(loc.X, loc.Y, cfg.Scan.SearchDistance, 1)
		if len(matches) == 0 {
			fmt.Fprintf(out, "%s %s: no borehole within %.0f m\n", GetEmoji("warning"), name, cfg.Scan.SearchDistance)
			continue
		}

		borehole, err := parser.ParseBoreholeFile(matches[0].Filename, opts)
		if err != nil {
			log.Warn("%s: %v", name, err)
			continue
		}
		if err := p.AssignLayers(name, borehole.Layers); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s: %d layers from %s (%.1f m)\n",
			GetEmoji("layer"), name, len(borehole.Layers), matches[0].Filename, matches[0].Distance)
	}
	return nil
}

// boreholeCatalog returns the boreholes of --catalog or the configured borehole directory
func boreholeCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if projectCatalog != "" {
		loaded, err := catalog.LoadFromFile(projectCatalog)
		if err != nil {
			return nil, err
		}
		c := catalog.New()
		for _, inv := range loaded.List() {
			if inv.Kind == model.KindBorehole {
				c.Add(inv)
			}
		}
		return c, nil
	}

	dir := GetGlobalConfig().Scan.BoreholeDir
	if !fileExists(dir) {
		return nil, fmt.Errorf("borehole directory does not exist: %s", dir)
	}
	return buildCatalog(cmd, []string{dir}, "borehole")
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	p, err := project.Load(getProjectPath())
	if err != nil {
		return err
	}

	var output []byte
	switch format := getOutputFormat(); format {
	case "json":
		output, err = json.MarshalIndent(p, "", "  ")
		output = append(output, '\n')
	case "yaml":
		output, err = yaml.Marshal(p)
	case "text":
		output = []byte(projectText(p))
	default:
		return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format project: %w", err)
	}
	return writeOutput(cmd, output, "")
}

func projectText(p *project.Project) string {
	opts := termfmt.DefaultOptions()
	opts.Color = useColor()
	opts.Emoji = true

	var b strings.Builder
	fmt.Fprintf(&b, "%s Soil types (%d)\n", GetEmoji("layer"), len(p.SoilTypes))
	items := make([]termfmt.TreeItem, 0, len(p.SoilTypes))
	for i, st := range p.SoilTypes {
		items = append(items, termfmt.TreeItem{Label: st.Name, Value: st.Color, Last: i == len(p.SoilTypes)-1})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n\n")

	fmt.Fprintf(&b, "%s Locations (%d)\n", GetEmoji("location"), len(p.Locations))
	if len(p.Locations) == 0 {
		b.WriteString("└─ none\n")
		return b.String()
	}
	items = make([]termfmt.TreeItem, 0, len(p.Locations))
	for i, loc := range p.Locations {
		value := fmt.Sprintf("%.2f, %.2f", loc.X, loc.Y)
		if len(loc.Layers) > 0 {
			value += fmt.Sprintf(" (%d layers)", len(loc.Layers))
		}
		items = append(items, termfmt.TreeItem{Label: loc.Name, Value: value, Last: i == len(p.Locations)-1})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")
	return b.String()
}

func runProjectExport(cmd *cobra.Command, args []string) error {
	p, err := project.Load(getProjectPath())
	if err != nil {
		return err
	}

	profiles := p.Profiles()
	if len(profiles) == 0 {
		return fmt.Errorf("no location has soil layers; run 'gefsum project assign' first")
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
