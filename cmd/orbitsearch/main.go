package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"orbitsearch/internal/config"
	"orbitsearch/internal/optim"
	"orbitsearch/internal/physics"
	"orbitsearch/internal/storage"
	"orbitsearch/internal/viz"
)

var (
	dataDir string
	modes   int
	freq    float64
	method  string
	iters   int
	mean    []float64
	params  []string
	quiet   bool
	noSave  bool
	// Seed flags
	seedType string
	center   []float64
	axisA    []float64
	axisB    []float64
	x0       []float64
	period   float64
	// Phase plot axes
	xAxis int
	yAxis int
	// Config file and preset
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsearch",
		Short: "spectral periodic-orbit search for nonlinear dynamical systems",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsearch", "data directory")

	searchCmd := &cobra.Command{
		Use:   "search [system]",
		Short: "search for a periodic orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	addSearchFlags(searchCmd)

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "search with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSearchFlags(liveCmd)
	liveCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	liveCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list available systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range physics.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved orbit and its residual history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a saved orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export orbit samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(searchCmd, liveCmd, systemsCmd, presetsCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&modes, "modes", config.DefaultModes, "stored Fourier modes")
	cmd.Flags().Float64Var(&freq, "freq", config.DefaultFreq, "initial frequency guess")
	cmd.Flags().StringVar(&method, "method", "lbfgs", "descent method (lbfgs, bfgs, cg, gradient, nelder-mead)")
	cmd.Flags().IntVar(&iters, "iters", config.DefaultIterations, "max major iterations")
	cmd.Flags().Float64SliceVar(&mean, "mean", nil, "mean state offset")
	cmd.Flags().StringArrayVar(&params, "param", nil, "system parameter override (name=value)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	cmd.Flags().StringVar(&seedType, "seed-type", "", "seed type (ellipse, flow)")
	cmd.Flags().Float64SliceVar(&center, "center", nil, "ellipse center")
	cmd.Flags().Float64SliceVar(&axisA, "axis-a", nil, "ellipse cosine semi-axis")
	cmd.Flags().Float64SliceVar(&axisB, "axis-b", nil, "ellipse sine semi-axis")
	cmd.Flags().Float64SliceVar(&x0, "x0", nil, "flow seed initial state")
	cmd.Flags().Float64Var(&period, "period", 0, "flow seed trial period")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig merges preset, config file, and CLI flags, with later sources
// winning.
func buildConfig(cmd *cobra.Command, system string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.System = system
	cfg.Params = nil
	cfg.Mean = nil

	if preset != "" {
		p := config.GetPreset(system, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(system))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.System = system
	}

	if cmd.Flags().Changed("modes") {
		cfg.Modes = modes
	}
	if cmd.Flags().Changed("freq") {
		cfg.Freq = freq
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("iters") {
		cfg.MaxIterations = iters
	}
	if cmd.Flags().Changed("mean") {
		cfg.Mean = mean
	}
	if cmd.Flags().Changed("seed-type") {
		cfg.Seed.Type = seedType
	}
	if cmd.Flags().Changed("center") {
		cfg.Seed.Center = center
	}
	if cmd.Flags().Changed("axis-a") {
		cfg.Seed.AxisA = axisA
	}
	if cmd.Flags().Changed("axis-b") {
		cfg.Seed.AxisB = axisB
	}
	if cmd.Flags().Changed("x0") {
		cfg.Seed.X0 = x0
	}
	if cmd.Flags().Changed("period") {
		cfg.Seed.Period = period
	}

	for _, p := range params {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q, want name=value", p)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", p, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = v
	}

	return cfg, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	traj, err := cfg.BuildSeed(sys)
	if err != nil {
		return err
	}
	meanState, err := cfg.MeanState(sys.Dim())
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("searching %s orbit (%d modes, %s)...\n", cfg.System, traj.ModeCount(), cfg.Method)
	}
	start := time.Now()

	trace := &optim.Trace{}
	result, err := optim.Search(sys, traj, cfg.Freq, optim.Options{
		Method:        cfg.Method,
		Mean:          meanState,
		MaxIterations: cfg.MaxIterations,
		Trace:         trace,
		Quiet:         quiet,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(cfg.System, cfg.Method, result, trace)
		if err != nil {
			return err
		}
	}

	printSummary(cfg.System, result, elapsed, runID)

	if !quiet && trace.Len() > 1 {
		history := make([]float64, trace.Len())
		for i := range history {
			r := trace.At(i).GlobalResidual
			if r <= 0 {
				r = 1e-300
			}
			history[i] = math.Log10(r)
		}
		graph := asciigraph.Plot(history,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("log10 residual"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	return nil
}

func printSummary(system string, result optim.Result, elapsed time.Duration, runID string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "system\t%s\n", system)
	fmt.Fprintf(w, "status\t%s\n", result.Status)
	fmt.Fprintf(w, "residual\t%.6e\n", result.Residual)
	fmt.Fprintf(w, "frequency\t%.8f\n", result.Freq)
	if result.Freq != 0 {
		fmt.Fprintf(w, "period\t%.8f\n", 2*math.Pi/result.Freq)
	}
	fmt.Fprintf(w, "iterations\t%d\n", result.Iterations)
	fmt.Fprintf(w, "func evals\t%d\n", result.FuncEvals)
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	if runID != "" {
		fmt.Fprintf(w, "run id\t%s\n", runID)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	if xAxis >= sys.Dim() || yAxis >= sys.Dim() {
		return fmt.Errorf("axes out of range for %d-dimensional system", sys.Dim())
	}
	traj, err := cfg.BuildSeed(sys)
	if err != nil {
		return err
	}
	meanState, err := cfg.MeanState(sys.Dim())
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.System, xAxis, yAxis)
	trace := &optim.Trace{}

	go func() {
		result, err := optim.Search(sys, traj, cfg.Freq, optim.Options{
			Method:        cfg.Method,
			Mean:          meanState,
			MaxIterations: cfg.MaxIterations,
			Trace:         trace,
			Quiet:         true,
			Observer:      m.Observer(),
		})
		m.Finish(result, err)
	}()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	if last, ok := trace.Last(); ok && !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		// Persist whatever the trace last saw; the search goroutine may
		// still be running if the user quit early.
		result := optim.Result{
			Trajectory: last.Trajectory,
			Freq:       last.Freq,
			Residual:   last.GlobalResidual,
			Status:     optim.IterationLimit,
			Iterations: last.Iteration,
		}
		runID, err := st.Save(cfg.System, cfg.Method, result, trace)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tMETHOD\tMODES\tFREQ\tRESIDUAL\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6f\t%.2e\t%s\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.Modes,
			run.Freq,
			run.Residual,
			run.Status,
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

	curve, _, err := st.LoadOrbit(runID)
	if err != nil {
		return err
	}
	if len(curve) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("frequency: %.6f (period %.6f)\n\n", meta.Freq, 2*math.Pi/meta.Freq)

	for dim := range curve {
		graph := asciigraph.Plot(curve[dim],
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("x%d over one period", dim)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	residuals, err := st.LoadTrace(runID)
	if err == nil && len(residuals) > 1 {
		history := make([]float64, len(residuals))
		for i, r := range residuals {
			if r <= 0 {
				r = 1e-300
			}
			history[i] = math.Log10(r)
		}
		graph := asciigraph.Plot(history,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("log10 residual"),
		)
		fmt.Println(graph)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	curve, _, err := st.LoadOrbit(runID)
	if err != nil {
		return err
	}
	if len(curve) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if xAxis >= len(curve) || yAxis >= len(curve) {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	canvas := viz.NewCanvas(70, 24)
	canvas.PlotClosedCurve(curve, xAxis, yAxis)
	fmt.Print(canvas.String())

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	curve, thetas, err := st.LoadOrbit(runID)
	if err != nil {
		return err
	}
	if len(curve) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"theta"}
	for i := range curve {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j := range thetas {
		row := []string{strconv.FormatFloat(thetas[j], 'f', 6, 64)}
		for i := range curve {
			row = append(row, strconv.FormatFloat(curve[i][j], 'f', 6, 64))
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

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
