package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dfeen87/sdcr-core/internal/config"
	"github.com/dfeen87/sdcr-core/internal/domains/interferometry"
	"github.com/dfeen87/sdcr-core/internal/domains/neutrinos"
	"github.com/dfeen87/sdcr-core/internal/domains/neutron"
	"github.com/dfeen87/sdcr-core/internal/experiment"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
	"github.com/dfeen87/sdcr-core/internal/observables"
	"github.com/dfeen87/sdcr-core/internal/recovery"
	"github.com/dfeen87/sdcr-core/internal/store"
	"github.com/dfeen87/sdcr-core/internal/sweep"
	"github.com/dfeen87/sdcr-core/internal/tui"
	"github.com/dfeen87/sdcr-core/internal/validate"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

var (
	dataDir string

	phaseRate       float64
	mixingRate      float64
	dephasing       float64
	mixingDephasing float64
	tFinal          float64
	points          int
	rtol            float64
	atol            float64
	method          string
	configFile      string
	validateInput   bool
	noSave          bool

	recoveryTol float64

	epsMin    float64
	epsMax    float64
	epsPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sdcr",
		Short: "symmetry-driven coherence restoration lab",
		Long: "Toolkit for exploring the SDCR hypothesis in open-quantum-system\n" +
			"dynamics: Lindblad integration, symmetry selection and explicit\n" +
			"recovery (null) tests.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sdcr", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the interferometry three-variant comparison",
		RunE:  runInterferometry,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	nulltestCmd := &cobra.Command{
		Use:   "nulltest",
		Short: "verify the SDCR recovery (null) limit",
		Long: "Integrates the baseline evolution directly and again through the\n" +
			"orchestrator with a disabled selector; the two trajectories must\n" +
			"agree within tolerance or the command fails.",
		RunE: runNullTest,
	}
	addModelFlags(nulltestCmd)
	nulltestCmd.Flags().Float64Var(&recoveryTol, "tol", 1e-8, "absolute tolerance")

	sweepCmd := &cobra.Command{
		Use:       "sweep [neutron|neutrino]",
		Short:     "sweep the SDCR modulation parameter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"neutron", "neutrino"},
		RunE:      runSweep,
	}
	sweepCmd.Flags().Float64Var(&epsMin, "eps-min", 1e-5, "sweep start")
	sweepCmd.Flags().Float64Var(&epsMax, "eps-max", 3e-4, "sweep end")
	sweepCmd.Flags().IntVar(&epsPoints, "points", 120, "sample count")

	neutronCmd := &cobra.Command{
		Use:   "neutron",
		Short: "neutron lifetime discrepancy at a single SDCR point",
		RunE:  runNeutron,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the comparison in a live terminal view",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	rootCmd.AddCommand(runCmd, nulltestCmd, sweepCmd, neutronCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&phaseRate, "phase-rate", config.DefaultPhaseRate, "relative phase accumulation rate")
	cmd.Flags().Float64Var(&mixingRate, "mixing-rate", 0, "beam-splitter mixing strength")
	cmd.Flags().Float64Var(&dephasing, "dephasing", config.DefaultDephasingRate, "path-basis dephasing rate")
	cmd.Flags().Float64Var(&mixingDephasing, "mixing-dephasing", 0, "sigma_x-basis dephasing rate")
	cmd.Flags().Float64Var(&tFinal, "time", config.DefaultTFinal, "final time")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "evaluation points")
	cmd.Flags().Float64Var(&rtol, "rtol", config.DefaultRTol, "relative tolerance")
	cmd.Flags().Float64Var(&atol, "atol", config.DefaultATol, "absolute tolerance")
	cmd.Flags().StringVar(&method, "method", "rk45", "integration method")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().BoolVar(&validateInput, "validate", false, "pre-flight validation of the initial state")
}

// applyConfig folds a config file into the flag variables; explicit
// flags win.
func applyConfig(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("time") {
		tFinal = cfg.TFinal
	}
	if !cmd.Flags().Changed("points") {
		points = cfg.Points
	}
	if !cmd.Flags().Changed("method") {
		method = cfg.Method
	}
	if !cmd.Flags().Changed("rtol") {
		rtol = cfg.RTol
	}
	if !cmd.Flags().Changed("atol") {
		atol = cfg.ATol
	}
	if !cmd.Flags().Changed("phase-rate") {
		phaseRate = cfg.Model.PhaseRate
	}
	if !cmd.Flags().Changed("mixing-rate") {
		mixingRate = cfg.Model.MixingRate
	}
	if !cmd.Flags().Changed("dephasing") {
		dephasing = cfg.Model.DephasingRate
	}
	if !cmd.Flags().Changed("mixing-dephasing") {
		mixingDephasing = cfg.Model.MixingDephasingRate
	}
	if !cmd.Flags().Changed("validate") {
		validateInput = cfg.Validate
	}
	return nil
}

func modelParams() interferometry.Params {
	return interferometry.Params{
		PhaseRate:           phaseRate,
		MixingRate:          mixingRate,
		DephasingRate:       dephasing,
		MixingDephasingRate: mixingDephasing,
	}
}

func solverOptions() lindblad.Options {
	opts := lindblad.DefaultOptions()
	opts.Method = method
	opts.RTol = rtol
	opts.ATol = atol
	return opts
}

func preflight() error {
	if !validateInput {
		return nil
	}
	return validate.DensityMatrix(interferometry.InitialState())
}

func runInterferometry(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	if err := preflight(); err != nil {
		return err
	}

	log.Info().
		Float64("phase_rate", phaseRate).
		Float64("dephasing", dephasing).
		Float64("t_final", tFinal).
		Int("points", points).
		Msg("running interferometry comparison")

	start := time.Now()
	times, set, err := interferometry.RunVariants(context.Background(), modelParams(), tFinal, points, solverOptions())
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("integration complete")

	series, err := collectSeries(set)
	if err != nil {
		return err
	}

	base, sdcr := series[0].Values, series[1].Values
	residual, err := observables.CompareSeries(sdcr, base)
	if err != nil {
		return err
	}
	maxResidual := 0.0
	for _, r := range residual {
		if r > maxResidual {
			maxResidual = r
		} else if -r > maxResidual {
			maxResidual = -r
		}
	}

	fmt.Printf("recovery == baseline: %v\n", recovery.Check(set.Recovery, set.Baseline, 1e-8))
	fmt.Printf("max |sdcr - baseline| coherence residual: %.3e\n", maxResidual)
	fmt.Printf("final coherence: baseline %.6f, sdcr %.6f\n",
		base[len(base)-1], sdcr[len(sdcr)-1])

	if noSave {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runMetadata(), times, series)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runMetadata() store.RunMetadata {
	return store.RunMetadata{
		Model:  "interferometry",
		TFinal: tFinal,
		Points: points,
		Method: method,
		RTol:   rtol,
		ATol:   atol,
	}
}

// collectSeries extracts the standard observable columns from a
// three-variant run. The first two columns are baseline and SDCR
// coherence, which the run summary depends on.
func collectSeries(set *experiment.Set) ([]store.Series, error) {
	cols := []struct {
		name string
		traj *lindblad.Trajectory
		fn   observables.Func
	}{
		{"baseline_coherence", set.Baseline, observables.Coherence01},
		{"sdcr_coherence", set.SDCR, observables.Coherence01},
		{"recovery_coherence", set.Recovery, observables.Coherence01},
		{"baseline_purity", set.Baseline, observables.Purity},
		{"sdcr_purity", set.SDCR, observables.Purity},
		{"baseline_phase", set.Baseline, observables.Phase01},
	}
	series := make([]store.Series, len(cols))
	for i, c := range cols {
		values, err := observables.TimeSeries(c.traj, c.fn)
		if err != nil {
			return nil, err
		}
		series[i] = store.Series{Name: c.name, Values: values}
	}
	return series, nil
}

func runNullTest(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	if err := preflight(); err != nil {
		return err
	}

	h, ops, err := interferometry.BuildModel(modelParams())
	if err != nil {
		return err
	}
	rho0 := interferometry.InitialState()
	span := lindblad.TimeSpan{T0: 0, TF: tFinal}
	tEval := evalGrid(tFinal, points)
	opts := solverOptions()

	baseline, err := lindblad.Solve(rho0, h, ops, span, tEval, opts)
	if err != nil {
		return err
	}

	projector, err := interferometry.Projector()
	if err != nil {
		return err
	}
	disabled := recovery.NewSelector(projector, false)
	recovered, err := recovery.SolveWithRecovery(rho0, h, ops, span, tEval, disabled, opts)
	if err != nil {
		return err
	}

	if !recovery.Check(recovered, baseline, recoveryTol) {
		return fmt.Errorf("recovery check failed: disabled selector did not reproduce baseline within %g", recoveryTol)
	}
	fmt.Println("SDCR recovery / null test: PASS")
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := sweep.Config{Min: epsMin, Max: epsMax, Points: epsPoints}

	var (
		xs, ys  []float64
		caption string
		err     error
	)
	switch args[0] {
	case "neutron":
		cfg.Label = "neutron lifetime discrepancy"
		base := neutron.DefaultParams()
		xs, ys, err = sweep.Run(cfg, func(eps float64) (float64, error) {
			p := base
			p.Epsilon = eps
			return neutron.Discrepancy(p), nil
		})
		caption = "delta tau (beam - bottle) [s] vs epsilon"
	case "neutrino":
		cfg.Label = "neutrino survival probability"
		base := neutrinos.DefaultParams()
		xs, ys, err = sweep.Run(cfg, func(eps float64) (float64, error) {
			p := base
			p.Epsilon = eps
			return neutrinos.SurvivalProbability(p)
		})
		caption = "P(nu->nu) vs epsilon"
	default:
		return fmt.Errorf("unknown sweep target: %s", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Printf("epsilon range: [%.3g, %.3g], %d points\n", xs[0], xs[len(xs)-1], len(xs))
	return nil
}

func runNeutron(cmd *cobra.Command, args []string) error {
	p := neutron.DefaultParams()
	fmt.Println("SDCR neutron lifetime demonstration")
	fmt.Printf("  intrinsic lifetime: %9.3f s\n", p.TauIntrinsic)
	fmt.Printf("  modulation epsilon: %9.2e\n", p.Epsilon)
	fmt.Printf("  bottle lifetime:    %9.3f s\n", neutron.BottleLifetime(p))
	fmt.Printf("  beam lifetime:      %9.3f s\n", neutron.BeamLifetime(p))
	fmt.Printf("  discrepancy:        %9.3f s\n", neutron.Discrepancy(p))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tPOINTS\tMETHOD")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%s\n", r.ID, r.Model, r.TFinal, r.Points, r.Method)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	for _, col := range series {
		fmt.Println(asciigraph.Plot(col.Values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.Name),
		))
		fmt.Println()
	}
	if len(times) > 0 {
		fmt.Printf("t in [%g, %g], %d points\n", times[0], times[len(times)-1], len(times))
	}
	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, *meta, times, series)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, times, series)
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	if err := preflight(); err != nil {
		return err
	}

	times, set, err := interferometry.RunVariants(context.Background(), modelParams(), tFinal, points, solverOptions())
	if err != nil {
		return err
	}

	base, err := observables.TimeSeries(set.Baseline, observables.Coherence01)
	if err != nil {
		return err
	}
	sdcr, err := observables.TimeSeries(set.SDCR, observables.Coherence01)
	if err != nil {
		return err
	}
	purity, err := observables.TimeSeries(set.Baseline, observables.Purity)
	if err != nil {
		return err
	}

	_, err = tui.NewProgram(tui.Run{
		Times:             times,
		BaselineCoherence: base,
		SDCRCoherence:     sdcr,
		Purity:            purity,
	}).Run()
	return err
}

func evalGrid(tf float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = tf * float64(i) / float64(n-1)
	}
	return grid
}
