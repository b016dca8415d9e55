package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/config"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/ephemeris"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/metrics"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/render"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/storage"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/viz"
)

var (
	dataDir       string
	dt            float64
	days          float64
	stepsPerFrame int
	source        string
	epoch         string
	bodies        []string
	configFile    string
	preset        string
	// render flags
	output    string
	canvas    float64
	bodyScale float64
	imgWidth  int
	imgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solarsym",
		Short: "solar system simulation and rendering",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".solarsym", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and store the trajectory",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "run simulation and write an animated gif",
		RunE:  renderSimulation,
	}
	addSimFlags(renderCmd)
	renderCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "output gif path")
	renderCmd.Flags().Float64Var(&canvas, "canvas", config.DefaultCanvasSize, "view half-width in meters")
	renderCmd.Flags().Float64Var(&bodyScale, "body-scale", config.DefaultBodyScale, "body radius magnification")
	renderCmd.Flags().IntVar(&imgWidth, "width", 500, "image width")
	renderCmd.Flags().IntVar(&imgHeight, "height", 500, "image height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Float64Var(&canvas, "canvas", config.DefaultCanvasSize, "view half-width in meters")
	liveCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "gif path for recordings")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-body distance from the origin",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list catalog bodies",
		RunE:  listBodies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, renderCmd, liveCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, bodiesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&days, "days", config.DefaultDurationDays, "simulated duration in days")
	cmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", config.DefaultStepsPerFrame, "integration steps per captured frame")
	cmd.Flags().StringVar(&source, "source", "catalog", "initial state source (catalog|horizons)")
	cmd.Flags().StringVar(&epoch, "epoch", config.DefaultEpoch, "reference epoch for ephemeris lookups")
	cmd.Flags().StringSliceVar(&bodies, "bodies", nil, "body names (default: whole catalog)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("days") {
		cfg.DurationDays = days
	}
	if cmd.Flags().Changed("steps-per-frame") {
		cfg.StepsPerFrame = stepsPerFrame
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = source
	}
	if cmd.Flags().Changed("epoch") {
		cfg.Epoch = epoch
	}
	if cmd.Flags().Changed("bodies") {
		cfg.Bodies = bodies
	}
	if cmd.Flags().Changed("out") {
		cfg.Render.Output = output
	}
	if cmd.Flags().Changed("canvas") {
		cfg.Render.CanvasSize = canvas
	}
	if cmd.Flags().Changed("body-scale") {
		cfg.Render.BodyScale = bodyScale
	}
	if cmd.Flags().Changed("width") {
		cfg.Render.Width = imgWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Render.Height = imgHeight
	}

	return cfg, nil
}

// buildSystem resolves initial states through the configured source and
// constructs the system. Any provider failure aborts here; a system is
// never built with bodies missing.
func buildSystem(ctx context.Context, cfg *config.Config) (*orbit.System, error) {
	epochTime, err := cfg.EpochTime()
	if err != nil {
		return nil, err
	}

	var src ephemeris.Source
	switch cfg.Source {
	case "catalog":
		src = ephemeris.NewCatalog()
	case "horizons":
		src = ephemeris.NewHorizons()
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}

	list, err := ephemeris.Build(ctx, src, cfg.Bodies, epochTime)
	if err != nil {
		return nil, err
	}

	return orbit.New(list...)
}

func newRunner(sys *orbit.System) *sim.Runner {
	r := sim.New(sys)
	r.AddMetric(metrics.NewEnergyDrift())
	r.AddMetric(metrics.NewMomentumDrift())
	return r
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sys, err := buildSystem(ctx, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := newRunner(sys)

	fmt.Printf("simulating %d bodies for %.0f days (dt=%.0fs)...\n",
		sys.Len(), cfg.DurationDays, cfg.Dt)
	start := time.Now()

	result, err := runner.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Source:        cfg.Source,
		Epoch:         cfg.Epoch,
		Bodies:        cfg.Bodies,
		Dt:            cfg.Dt,
		DurationDays:  cfg.DurationDays,
		StepsPerFrame: cfg.StepsPerFrame,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	return nil
}

func renderSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sys, err := buildSystem(ctx, cfg)
	if err != nil {
		return err
	}

	runner := newRunner(sys)

	r := render.New(render.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		CanvasSize: cfg.Render.CanvasSize,
		BodyScale:  cfg.Render.BodyScale,
	})
	runner.AddObserver(r)

	fmt.Printf("rendering %d bodies for %.0f days (dt=%.0fs, %d steps/frame)...\n",
		sys.Len(), cfg.DurationDays, cfg.Dt, cfg.StepsPerFrame)
	start := time.Now()

	result, err := runner.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	if err := r.Save(cfg.Render.Output); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("frames: %d\n", r.Frames())
	fmt.Printf("wrote %s\n", cfg.Render.Output)
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sys, err := buildSystem(ctx, cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, cfg.Dt, cfg.StepsPerFrame, cfg.Render.CanvasSize, cfg.Render.Output)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tBODIES\tDAYS\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%.0fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Source,
			len(run.Bodies),
			run.DurationDays,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frames))

	maxPlots := 6
	for idx, body := range frames[0].Bodies {
		if idx >= maxPlots {
			fmt.Printf("(%d more bodies not shown)\n", len(frames[0].Bodies)-maxPlots)
			break
		}

		data := make([]float64, len(frames))
		for i, f := range frames {
			if idx < len(f.Bodies) {
				data[i] = f.Bodies[idx].X.Norm() / 1e9 // Gm
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance from origin (Gm)", body.Name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for _, b := range frames[0].Bodies {
		header = append(header, b.Name+"_x", b.Name+"_y")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{strconv.FormatFloat(f.Time, 'f', 3, 64)}
		for _, b := range f.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X.X, 'e', 9, 64),
				strconv.FormatFloat(b.X.Y, 'e', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, frames)
}

func listBodies(cmd *cobra.Command, args []string) error {
	src := ephemeris.NewCatalog()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOR\tRADIUS (km)\tMASS (kg)")

	for _, name := range ephemeris.Names() {
		st, err := src.Lookup(cmd.Context(), name, time.Time{})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3e\n", st.Name, st.Color, st.R/1e3, st.M)
	}

	return w.Flush()
}
