package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ezflow/internal/analysis"
	"github.com/san-kum/ezflow/internal/config"
	"github.com/san-kum/ezflow/internal/flow"
	"github.com/san-kum/ezflow/internal/metrics"
	"github.com/san-kum/ezflow/internal/storage"
	"github.com/san-kum/ezflow/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Vortex parameters
	strength float64
	xv       float64
	yv       float64
	spacing  float64
	// Grid
	xStart, xEnd float64
	yStart, yEnd float64
	nx, ny       int
	// Output
	svgFile      string
	kind         string
	levels       int
	scale        float64
	integrator   string
	save         bool
	previewWidth int
	// Scene source
	configFile string
	preset     string
	// Profile row index
	profileRow int
	spectrum   bool
	outFile    string
)

// main registers the ezflow commands and exits with status 1 when a command
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "ezflow",
		Short:        "2d potential flow fields of vortices and vortex rows",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ezflow", "data directory")

	vortexCmd := &cobra.Command{
		Use:   "vortex",
		Short: "velocity and streamfunction of a point vortex",
		Args:  cobra.NoArgs,
		RunE:  runVortex,
	}
	vortexCmd.Flags().Float64Var(&strength, "strength", 1.0, "vortex strength")
	vortexCmd.Flags().Float64Var(&xv, "xv", 0.0, "vortex x position")
	vortexCmd.Flags().Float64Var(&yv, "yv", 0.0, "vortex y position")
	addGridFlags(vortexCmd)
	addOutputFlags(vortexCmd)

	rowCmd := &cobra.Command{
		Use:   "row",
		Short: "velocity of an infinite row of vortices along the x-axis",
		Args:  cobra.NoArgs,
		RunE:  runRow,
	}
	rowCmd.Flags().Float64Var(&strength, "strength", 1.0, "strength of each vortex")
	rowCmd.Flags().Float64Var(&spacing, "spacing", 1.0, "distance between vortices")
	addGridFlags(rowCmd)
	addOutputFlags(rowCmd)

	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "superposed field of a scene file or preset",
		Args:  cobra.NoArgs,
		RunE:  runScene,
	}
	addSceneFlags(sceneCmd)
	addGridFlags(sceneCmd)
	addOutputFlags(sceneCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON (default latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render a stored run (default latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addOutputFlags(plotCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run field to CSV (default latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	profileCmd := &cobra.Command{
		Use:   "profile [run_id]",
		Short: "plot u and v along one grid row (default latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  profileRun,
	}
	profileCmd.Flags().IntVar(&profileRow, "row", -1, "grid row index (default middle row)")
	profileCmd.Flags().BoolVar(&spectrum, "spectrum", false, "report the dominant wavelength of each profile")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	newSceneCmd := &cobra.Command{
		Use:   "new-scene [preset]",
		Short: "write a preset as a scene file",
		Args:  cobra.ExactArgs(1),
		RunE:  newScene,
	}
	newSceneCmd.Flags().StringVarP(&outFile, "out", "o", "scene.yaml", "output file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "explore a scene interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	addGridFlags(liveCmd)

	rootCmd.AddCommand(vortexCmd, rowCmd, sceneCmd, listCmd, showCmd, plotCmd, exportCSVCmd, profileCmd, presetsCmd, newSceneCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&xStart, "x-start", config.DefaultXStart, "grid x start")
	cmd.Flags().Float64Var(&xEnd, "x-end", config.DefaultXEnd, "grid x end")
	cmd.Flags().Float64Var(&yStart, "y-start", config.DefaultYStart, "grid y start")
	cmd.Flags().Float64Var(&yEnd, "y-end", config.DefaultYEnd, "grid y end")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "grid points along x")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "grid points along y")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&svgFile, "svg", "", "write the plot to an SVG file")
	cmd.Flags().StringVar(&kind, "kind", config.KindStreamline, "plot kind: streamline, contour, speed")
	cmd.Flags().IntVar(&levels, "levels", config.DefaultLevels, "contour levels")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "SVG pixels per unit")
	cmd.Flags().StringVar(&integrator, "integrator", config.IntegratorRK4, "streamline integrator: rk4, euler")
	cmd.Flags().IntVar(&previewWidth, "width", 60, "terminal preview width in cells (0 disables)")
	if cmd.Name() != "plot" {
		cmd.Flags().BoolVar(&save, "save", false, "store the run")
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a scene preset")
}

// applyFlags overrides cfg with every grid and output flag the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("x-start") {
		cfg.Grid.XStart = xStart
	}
	if f.Changed("x-end") {
		cfg.Grid.XEnd = xEnd
	}
	if f.Changed("y-start") {
		cfg.Grid.YStart = yStart
	}
	if f.Changed("y-end") {
		cfg.Grid.YEnd = yEnd
	}
	if f.Changed("nx") {
		cfg.Grid.NX = nx
	}
	if f.Changed("ny") {
		cfg.Grid.NY = ny
	}
	if f.Changed("kind") {
		cfg.Plot.Kind = kind
	}
	if f.Changed("levels") {
		cfg.Plot.Levels = levels
	}
	if f.Changed("scale") {
		cfg.Plot.Scale = scale
	}
	if f.Changed("integrator") {
		cfg.Plot.Integrator = integrator
	}
}

// loadScene resolves --config, then --preset, falling back to the pair preset.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case preset != "":
		cfg, err = config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	default:
		cfg, _ = config.GetPreset("pair")
	}
	applyFlags(cmd, cfg)
	return cfg, cfg.Validate()
}

func runVortex(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Name = "vortex"
	cfg.Vortices = []config.VortexConfig{{Strength: strength, X: xv, Y: yv}}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	g := cfg.FlowGrid()
	u, v, psi := flow.VortexField(strength, xv, yv, g.X, g.Y)
	return report(cmd, "vortex", cfg, g, flow.Field{U: u, V: v, Psi: psi})
}

func runRow(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Name = "row"
	cfg.Rows = []config.RowConfig{{Strength: strength, Spacing: spacing}}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	g := cfg.FlowGrid()
	u, v := flow.VortexRowField(strength, spacing, g.X, g.Y)
	return report(cmd, "row", cfg, g, flow.Field{U: u, V: v})
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	g, f := cfg.Field()
	return report(cmd, "scene", cfg, g, f)
}

// report prints a field summary and preview, then writes the SVG and stores
// the run when asked to.
func report(cmd *cobra.Command, runKind string, cfg *config.Config, g flow.Grid, f flow.Field) error {
	values := metrics.Evaluate(metrics.Defaults(), g, f)
	printSummary(cfg, f, values)

	fig, err := buildFigure(cfg, g, f)
	if err != nil {
		return err
	}
	if previewWidth > 0 {
		fmt.Println(preview(fig, previewWidth))
	}
	if svgFile != "" {
		if err := writeSVG(svgFile, fig, cfg.Plot.Scale); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}

	if save {
		st := storage.New(dataDir)
		runID, err := st.Save(runKind, cfg, g, f, values)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tGRID\tPSI\tSINGULAR\tMAX SPEED\tCIRCULATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%t\t%d\t%.4g\t%.4g\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cols, run.Rows,
			run.HasPsi,
			run.NonFinite,
			run.Metrics["max_speed"],
			run.Metrics["circulation"],
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	meta, g, f, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	cfg := meta.Scene
	if cfg == nil {
		return fmt.Errorf("run %s has no scene", meta.ID)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	printSummary(cfg, f, meta.Metrics)

	fig, err := buildFigure(cfg, g, f)
	if err != nil {
		return err
	}
	if previewWidth > 0 {
		fmt.Println(preview(fig, previewWidth))
	}
	if svgFile != "" {
		if err := writeSVG(svgFile, fig, cfg.Plot.Scale); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	_, g, f, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.WriteCSV(os.Stdout, g, f)
	}

	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := storage.WriteCSV(file, g, f); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func profileRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	meta, g, f, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	row := profileRow
	if row < 0 {
		row = meta.Rows / 2
	}
	if row >= meta.Rows {
		return fmt.Errorf("row %d out of range (grid has %d rows)", row, meta.Rows)
	}
	_, y := g.At(row, 0)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("row %d at y = %.4g, %d samples\n\n", row, y, meta.Cols)

	for _, series := range []struct {
		name string
		data []float64
	}{
		{"u", rowProfile(f.U, row)},
		{"v", rowProfile(f.V, row)},
	} {
		if !anyFinite(series.data) {
			fmt.Printf("%s: no finite samples\n\n", series.name)
			continue
		}
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s along y = %.4g", series.name, y)),
		)
		fmt.Println(graph)
		fmt.Println()

		if spectrum {
			x0, _ := g.At(row, 0)
			x1, _ := g.At(row, meta.Cols-1)
			dx := (x1 - x0) / float64(meta.Cols-1)
			lambda, err := analysis.DominantWavelength(series.data, dx)
			if err != nil {
				fmt.Printf("%s spectrum: %v\n\n", series.name, err)
				continue
			}
			fmt.Printf("%s dominant wavelength: %.4g\n\n", series.name, lambda)
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tVORTICES\tROWS")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", name, len(cfg.Vortices), len(cfg.Rows))
	}
	return w.Flush()
}

func newScene(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetPreset(args[0])
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, config.ListPresets())
	}
	if err := config.Save(outFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewExplorer(sceneOf(cfg)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// resolveRunID returns the run named on the command line, or the latest
// stored run when there is none.
func resolveRunID(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	latest, err := st.Latest()
	if err != nil {
		return "", err
	}
	return latest.ID, nil
}

func anyFinite(xs []float64) bool {
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
