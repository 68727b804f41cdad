package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mverlet/spinlab/internal/analysis"
	"github.com/mverlet/spinlab/internal/config"
	"github.com/mverlet/spinlab/internal/export"
	"github.com/mverlet/spinlab/internal/lattice"
	"github.com/mverlet/spinlab/internal/metrics"
	"github.com/mverlet/spinlab/internal/sim"
	"github.com/mverlet/spinlab/internal/storage"
	"github.com/mverlet/spinlab/internal/viz"
)

var (
	dataDir     string
	rows        int
	cols        int
	temperature float64
	energyJ     float64
	kB          float64
	seed        int64
	start       string
	sweeps      int
	therm       int
	sampleEvery int
	// Config file and preset
	configFile string
	preset     string
	// Live view
	frameRate      int
	sweepsPerFrame int
	// Temperature sweep
	tMin  float64
	tMax  float64
	steps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spinlab",
		Short: "2D Ising lattice Monte Carlo lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spinlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [dynamics]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().IntVar(&sweeps, "sweeps", config.DefaultSweeps, "measurement sweeps")
	runCmd.Flags().IntVar(&therm, "therm", config.DefaultTherm, "thermalization sweeps")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "sweeps between samples")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [dynamics]",
		Short: "run with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&sweepsPerFrame, "sweeps-per-frame", 1, "sweeps per frame")

	sweepCmd := &cobra.Command{
		Use:   "sweep [dynamics]",
		Short: "sweep the temperature range",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemperatureSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&tMin, "t-min", 1.5, "lowest temperature")
	sweepCmd.Flags().Float64Var(&tMax, "t-max", 3.5, "highest temperature")
	sweepCmd.Flags().IntVar(&steps, "steps", 21, "temperature steps")
	sweepCmd.Flags().IntVar(&sweeps, "sweeps", 500, "measurement sweeps per point")
	sweepCmd.Flags().IntVar(&therm, "therm", 200, "thermalization sweeps per point")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export final lattice and energy series as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [dynamics]",
		Short: "list available presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for dynamics: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [dynamics]",
		Short: "benchmark sweep throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchDynamics,
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature")
	cmd.Flags().Float64Var(&energyJ, "j", config.DefaultEnergyJ, "coupling constant")
	cmd.Flags().Float64Var(&kB, "kb", config.DefaultKB, "boltzmann constant")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&start, "start", lattice.StartHot, "initial condition (hot|cold)")
}

// resolveConfig merges preset, config file and CLI flags (flags win)
// into one run configuration for the given dynamics.
func resolveConfig(cmd *cobra.Command, dynamics string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(dynamics, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(dynamics))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Dynamics = dynamics
	if cmd.Flags().Changed("rows") || cfg.Rows == 0 {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") || cfg.Cols == 0 {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("temp") || cfg.Temperature == 0 {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("j") || cfg.EnergyJ == 0 {
		cfg.EnergyJ = energyJ
	}
	if cmd.Flags().Changed("kb") || cfg.KB == 0 {
		cfg.KB = kB
	}
	if cmd.Flags().Changed("start") || cfg.Start == "" {
		cfg.Start = start
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("sweeps") || cfg.Sweeps == 0 {
		cfg.Sweeps = sweeps
	}
	if cmd.Flags().Changed("therm") {
		cfg.Therm = therm
	}
	if cmd.Flags().Changed("sample-every") || cfg.SampleEvery == 0 {
		cfg.SampleEvery = sampleEvery
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	model, err := lattice.New(cfg.LatticeConfig())
	if err != nil {
		return err
	}

	runner := sim.New(model)
	sites := model.Rows() * model.Cols()
	runner.AddMetric(metrics.NewMeanEnergy())
	runner.AddMetric(metrics.NewMeanMagnetization())
	runner.AddMetric(metrics.NewSpecificHeat(model.KB(), model.Temperature(), sites))
	runner.AddMetric(metrics.NewSusceptibility(model.KB(), model.Temperature(), sites))

	fmt.Printf("running %s on %dx%d at T=%.3f...\n", cfg.Dynamics, cfg.Rows, cfg.Cols, cfg.Temperature)
	begin := time.Now()

	result, err := runner.Run(context.Background(), cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(begin)

	runID, err := st.Save(storage.RunMetadata{
		Dynamics:    cfg.Dynamics,
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Temperature: cfg.Temperature,
		EnergyJ:     model.EnergyJ(),
		KB:          model.KB(),
		Seed:        cfg.Seed,
	}, result, model.Snapshot())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("sweeps: %d, samples: %d\n", result.SweepsRun, len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	return viz.RunLive(cfg.LatticeConfig(), frameRate, sweepsPerFrame)
}

func runTemperatureSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	base := cfg.LatticeConfig()
	simCfg := sim.Config{Sweeps: sweeps, Therm: therm, SampleEvery: 1}

	fmt.Printf("sweeping %s on %dx%d over T in [%.2f, %.2f], %d points...\n",
		cfg.Dynamics, cfg.Rows, cfg.Cols, tMin, tMax, steps)

	points, err := analysis.TemperatureSweep(context.Background(), base, simCfg, tMin, tMax, steps, cfg.Seed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tENERGY\t|M|/SITE\tC_V\tCHI")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.2f\t%.4f\t%.4f\t%.4f\n",
			p.Temperature, p.MeanEnergy, p.MeanMagnetism, p.SpecificHeat, p.Susceptibility)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	magnetism := make([]float64, len(points))
	for i, p := range points {
		magnetism[i] = p.MeanMagnetism
	}
	fmt.Println()
	fmt.Println(viz.PlotSeries(magnetism, "|M| per site vs temperature"))

	fmt.Printf("\nsusceptibility peak at T=%.3f (onsager: %.3f)\n",
		analysis.CriticalEstimate(points), analysis.Onsager)

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
	fmt.Fprintln(w, "ID\tDYNAMICS\tSHAPE\tTEMP\tSWEEPS\tTIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.3f\t%d\t%s\n",
			run.ID,
			run.Dynamics,
			run.Rows, run.Cols,
			run.Temperature,
			run.Sweeps,
			run.Timestamp.Format("2006-01-02 15:04:05"),
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dynamics: %s, %dx%d, T=%.3f\n", meta.Dynamics, meta.Rows, meta.Cols, meta.Temperature)
	fmt.Printf("samples: %d\n\n", len(samples))

	energy := make([]float64, len(samples))
	magnetism := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
		magnetism[i] = s.Magnetism
	}

	fmt.Println(viz.PlotSeries(energy, "total energy"))
	fmt.Println()
	fmt.Println(viz.PlotSeries(magnetism, "|M|"))

	grid, err := st.LoadLattice(runID)
	if err == nil && len(grid) <= 48 {
		fmt.Println()
		fmt.Println(viz.RenderGrid(grid))
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	grid, err := st.LoadLattice(runID)
	if err != nil {
		return err
	}
	latticePath := runID + "_lattice.svg"
	if err := os.WriteFile(latticePath, []byte(export.GridToSVG(grid, 8)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", latticePath)

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	energy := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
	}
	energyPath := runID + "_energy.svg"
	if err := os.WriteFile(energyPath, []byte(export.SeriesToSVG(energy, 800, 300, "#00ff88")), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", energyPath)

	return nil
}

func benchDynamics(cmd *cobra.Command, args []string) error {
	dynamics := args[0]

	sizes := []int{16, 32, 64}
	benchSweeps := 200

	fmt.Printf("benchmarking %s\n\n", dynamics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSWEEPS\tTIME\tSWEEPS/SEC")

	for _, size := range sizes {
		model, err := lattice.New(lattice.Config{
			Rows:        size,
			Cols:        size,
			Dynamics:    dynamics,
			Temperature: config.DefaultTemperature,
			Seed:        42,
		})
		if err != nil {
			return err
		}

		begin := time.Now()
		for n := 0; n < benchSweeps; n++ {
			if err := model.Sweep(); err != nil {
				return err
			}
		}
		elapsed := time.Since(begin)

		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\n",
			size, size, benchSweeps, elapsed, float64(benchSweeps)/elapsed.Seconds())
	}

	return w.Flush()
}
