package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/rainharvest/internal/observability"
	"github.com/couchcryptid/rainharvest/internal/report"
	"github.com/couchcryptid/rainharvest/internal/simulation"
)

var rootCmd = &cobra.Command{
	Use:   "rainharvest",
	Short: "Rainwater harvesting system calculator",
	Long: `Estimates annual rainwater collection for a roof and sizes a storage
tank against a fixed daily demand, using a simulated year of rainfall.`,
	SilenceUsage: true,
}

var (
	roofArea    float64
	consumption float64
	meanRain    float64
	stdDev      float64
	runoffCoeff float64
	simDays     int
	simSeed     uint64
	viewName    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a one-year harvest simulation and size the storage tank",
	Long: `Runs the generate-convert-size pipeline over a simulated year.
Parameters not supplied as flags are gathered interactively.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	registerSimulateFlags()
	rootCmd.AddCommand(simulateCmd)
}

func registerSimulateFlags() {
	flags := simulateCmd.Flags()
	flags.Float64Var(&roofArea, "roof-area", 0, "roof area in square meters")
	flags.Float64Var(&consumption, "daily-consumption", 0, "daily water consumption in liters")
	flags.Float64Var(&meanRain, "mean-rainfall", 0, "average daily rainfall in mm")
	flags.Float64Var(&stdDev, "std-dev", 0, "rainfall standard deviation in mm")
	flags.Float64Var(&runoffCoeff, "runoff-coefficient", 0, "runoff coefficient (0.0 to 1.0)")
	flags.IntVar(&simDays, "days", 0, "simulation horizon in days (default one year)")
	flags.Uint64Var(&simSeed, "seed", 0, "random seed for a reproducible run")
	flags.StringVar(&viewName, "view", "monthly", "data view: weekly or monthly")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Engine construction is shared across invocations so Prometheus collectors
// register exactly once per process.
var (
	engineOnce sync.Once
	engine     *simulation.Engine
)

func sharedEngine() *simulation.Engine {
	engineOnce.Do(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		engine = simulation.NewEngine(nil, logger, observability.NewMetrics(), 0)
	})
	return engine
}

// paramPrompt pairs a flag with its interactive prompt, in the order the
// calculator asks for them. Each prompt enforces the same bound the engine
// validates, so out-of-range interactive input is re-asked instead of
// failing the run afterwards.
type paramPrompt struct {
	flag   string
	ask    func(*Prompter) (float64, error)
	target *float64
}

func paramPrompts() []paramPrompt {
	return []paramPrompt{
		{"roof-area", func(p *Prompter) (float64, error) {
			return p.PositiveFloat("roof_area", "Roof Area (in square meters): ")
		}, &roofArea},
		{"daily-consumption", func(p *Prompter) (float64, error) {
			return p.Float("daily_consumption", "Daily Water Consumption (in liters): ", 0)
		}, &consumption},
		{"mean-rainfall", func(p *Prompter) (float64, error) {
			return p.Float("mean_rainfall", "Average Daily Rainfall (in mm): ", 0)
		}, &meanRain},
		{"std-dev", func(p *Prompter) (float64, error) {
			return p.Float("std_dev", "Rainfall Variation (standard deviation in mm): ", 0)
		}, &stdDev},
		{"runoff-coefficient", func(p *Prompter) (float64, error) {
			return p.UnitIntervalFloat("runoff_coefficient", "Runoff Coefficient (0.0 to 1.0): ")
		}, &runoffCoeff},
	}
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	prompter := NewPrompter(cmd.InOrStdin(), out)

	interactive, err := gatherParams(cmd, prompter, out)
	if err != nil {
		return err
	}

	params := simulation.Params{
		RoofArea:          roofArea,
		RunoffCoefficient: runoffCoeff,
		DailyConsumption:  consumption,
		MeanRainfall:      meanRain,
		StdDev:            stdDev,
		Days:              simDays,
	}
	if cmd.Flags().Changed("seed") {
		seed := simSeed
		params.Seed = &seed
	}

	result, err := sharedEngine().Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	printAnalysis(out, result)

	view, err := resolveView(cmd, prompter, out, interactive)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report.Render(report.Build(view, result.Rainfall, result.Harvested)))
	return nil
}

// gatherParams prompts for every parameter not supplied as a flag. Returns
// whether any prompting happened.
func gatherParams(cmd *cobra.Command, prompter *Prompter, out io.Writer) (bool, error) {
	var missing []paramPrompt
	for _, p := range paramPrompts() {
		if !cmd.Flags().Changed(p.flag) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	fmt.Fprintln(out, "\nRainwater Harvesting System Calculator")
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintln(out, "\nPlease enter the following details:")

	for _, p := range missing {
		v, err := p.ask(prompter)
		if err != nil {
			return true, err
		}
		*p.target = v
	}
	return true, nil
}

func printAnalysis(out io.Writer, result simulation.Result) {
	fmt.Fprintln(out, "\nRainwater Harvesting Analysis Results")
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "Roof Area: %.1f m²\n", result.Params.RoofArea)
	fmt.Fprintf(out, "Daily Water Consumption: %.1f L\n", result.Params.DailyConsumption)
	fmt.Fprintf(out, "Runoff Coefficient: %.2f\n", result.Params.RunoffCoefficient)
	fmt.Fprintln(out, "\nAnnual Statistics:")
	fmt.Fprintf(out, "Total Rainfall: %.1f mm\n", result.TotalRainfall)
	fmt.Fprintf(out, "Total Harvestable Water: %.1f L\n", result.TotalHarvested)
	fmt.Fprintf(out, "Recommended Storage Capacity: %.1f L\n", result.Sizing.RecommendedCapacity)
	fmt.Fprintf(out, "Annual Overflow: %.1f L\n", result.Sizing.TotalOverflow)
	if result.Efficiency != nil {
		fmt.Fprintf(out, "System Efficiency: %.1f%%\n", *result.Efficiency)
	} else {
		fmt.Fprintln(out, "System Efficiency: n/a (no water harvested)")
	}
}

// resolveView picks the table view: an explicit --view wins, interactive
// sessions get the 1/2 menu, and plain flag runs fall back to the flag
// default.
func resolveView(cmd *cobra.Command, prompter *Prompter, out io.Writer, interactive bool) (report.View, error) {
	if cmd.Flags().Changed("view") || !interactive {
		return report.ParseView(viewName)
	}

	fmt.Fprintln(out, "\nSelect data view:")
	fmt.Fprintln(out, "1. Weekly Data (First Week)")
	fmt.Fprintln(out, "2. Monthly Data")

	choice, err := prompter.Choice("\nEnter your choice (1 or 2): ", "1", "2")
	if err != nil {
		return "", err
	}
	if choice == "1" {
		return report.ViewWeekly, nil
	}
	return report.ViewMonthly, nil
}
