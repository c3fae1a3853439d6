package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/decsim/internal/analysis"
	"github.com/san-kum/decsim/internal/config"
	"github.com/san-kum/decsim/internal/dynamo"
	"github.com/san-kum/decsim/internal/experiment"
	"github.com/san-kum/decsim/internal/storage"
	"github.com/san-kum/decsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	methods    []string
	x0         string
	y0         string
	h          string
	steps      int
	precision  uint32
	rounding   string
	xDigits    uint32
	errDigits  uint32
	configFile string
	preset     string
	save       bool
	plot       bool
	quiet      bool
)

// main registers the commands and runs the classic demo (y' = 2y with RK4)
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "decsim",
		Short: "decimal-precision ODE integration checked against exact solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProblem(cmd, []string{""})
		},
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".decsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log run details")
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem and print the deviation from its exact solution",
		Args:  cobra.ExactArgs(1),
		RunE:  runProblem,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the deviation")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method...]",
		Short: "run several methods concurrently on the same grid",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().BoolVar(&plot, "plot", false, "plot the deviations")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's deviation",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list problems and methods",
		Run: func(cmd *cobra.Command, args []string) {
			registry := experiment.NewRegistry()
			fmt.Printf("problems: %v\n", registry.ListProblems())
			fmt.Printf("methods:  %v\n", registry.ListMethods())
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, problemsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Failure(err))
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()
	cmd.Flags().StringSliceVarP(&methods, "method", "m", defaults.Methods, "integration methods (rk4, ab4)")
	cmd.Flags().StringVar(&x0, "x0", defaults.X0, "initial x")
	cmd.Flags().StringVar(&y0, "y0", defaults.Y0, "initial y")
	cmd.Flags().StringVar(&h, "h", defaults.H, "step size")
	cmd.Flags().IntVarP(&steps, "steps", "n", defaults.Steps, "step count")
	cmd.Flags().Uint32Var(&precision, "prec", defaults.Precision, "significant digits")
	cmd.Flags().StringVar(&rounding, "rounding", defaults.Rounding, "rounding mode")
	cmd.Flags().Uint32Var(&xDigits, "x-digits", defaults.Display.XDigits, "display digits for x")
	cmd.Flags().Uint32Var(&errDigits, "err-digits", defaults.Display.ErrDigits, "display digits for deviations")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file, environment and
// flags, in increasing priority. An empty problem keeps whatever the lower
// layers chose.
func resolveConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		name := problem
		if name == "" {
			name = cfg.Problem
		}
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
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

	if problem != "" {
		cfg.Problem = problem
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Methods = methods
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("h") {
		cfg.H = h
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("prec") {
		cfg.Precision = precision
	}
	if flags.Changed("rounding") {
		cfg.Rounding = rounding
	}
	if flags.Changed("x-digits") {
		cfg.Display.XDigits = xDigits
	}
	if flags.Changed("err-digits") {
		cfg.Display.ErrDigits = errDigits
	}

	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func execute(cfg *config.Config) (dynamo.Config, []*experiment.Result, error) {
	run, err := cfg.RunConfig()
	if err != nil {
		return dynamo.Config{}, nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return dynamo.Config{}, nil, err
	}
	defer logger.Sync()

	exp := experiment.New(experiment.Config{
		Problem: cfg.Problem,
		Methods: cfg.Methods,
		Run:     run,
	}, experiment.NewRegistry(), logger)

	results, err := exp.Run(context.Background())
	return run, results, err
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	run, results, err := execute(cfg)
	if err != nil {
		return err
	}

	digits := viz.Digits{X: cfg.Display.XDigits, Err: cfg.Display.ErrDigits}
	for _, res := range results {
		if !quiet {
			if err := viz.WriteDeviations(os.Stdout, res.Deviations, digits); err != nil {
				return err
			}
			fmt.Println()
		}
		fmt.Println(viz.Summary(res, digits))

		if plot {
			fmt.Println(viz.DeviationPlot(fmt.Sprintf("deviation (%s)", res.Method), res.Deviations))
		}
	}

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, res := range results {
		runID, err := st.Save(run, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		cfg.Methods = args[1:]
	} else if !cmd.Flags().Changed("method") && preset == "" && configFile == "" {
		cfg.Methods = experiment.NewRegistry().ListMethods()
	}

	_, results, err := execute(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header(fmt.Sprintf("comparing %v on %s (h=%s, n=%d, prec=%d)",
		cfg.Methods, cfg.Problem, cfg.H, cfg.Steps, cfg.Precision)))
	digits := viz.Digits{X: cfg.Display.XDigits, Err: cfg.Display.ErrDigits}
	if err := viz.CompareTable(os.Stdout, results, digits); err != nil {
		return err
	}

	if plot {
		series := make([][]analysis.Deviation, len(results))
		for i, res := range results {
			series[i] = res.Deviations
		}
		fmt.Println()
		fmt.Println(viz.DeviationPlot("deviation by method", series...))
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
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tH\tSTEPS\tPREC\tFINAL_DEV")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.H,
			run.Steps,
			run.Precision,
			run.FinalDeviation,
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

	rows, err := st.LoadRows(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	devs := make([]analysis.Deviation, len(rows))
	for i, row := range rows {
		devs[i] = analysis.Deviation{X: row.X, Err: row.Deviation}
	}

	fmt.Println(viz.Field("run", meta.ID))
	fmt.Println(viz.Field("problem", meta.Problem))
	fmt.Println(viz.Field("method", meta.Method))
	fmt.Println(viz.Field("samples", fmt.Sprint(len(rows))))
	fmt.Println()
	fmt.Println(viz.DeviationPlot(fmt.Sprintf("deviation (%s, h=%s)", meta.Method, meta.H), devs))

	return nil
}
