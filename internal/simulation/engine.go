package simulation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/rainharvest/internal/domain"
	"github.com/couchcryptid/rainharvest/internal/observability"
)

// ResultPublisher delivers a completed result to an external sink.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result Result) error
}

// Result is the outcome of one simulation run. The two series are carried
// for callers that render period tables but are excluded from the wire form;
// the aggregate fields describe the whole year.
type Result struct {
	ID     string `json:"id"`
	Params Params `json:"params"`

	Rainfall  domain.RainfallSeries  `json:"-"`
	Harvested domain.HarvestedSeries `json:"-"`

	Sizing         domain.SizingResult `json:"sizing"`
	TotalRainfall  float64             `json:"total_rainfall_mm"`
	TotalHarvested float64             `json:"total_harvested_liters"`
	// Efficiency is nil when undefined (zero harvested water).
	Efficiency *float64 `json:"efficiency_percent,omitempty"`

	Seed        uint64    `json:"seed"`
	CompletedAt time.Time `json:"completed_at"`
}

// Engine runs the generate-convert-size pipeline. It is stateless across
// runs; every invocation allocates fresh series.
type Engine struct {
	publisher ResultPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	days      int
}

// NewEngine creates an Engine. Pass a nil publisher to disable result
// publishing. days is the default horizon applied when a request omits one.
func NewEngine(publisher ResultPublisher, logger *slog.Logger, metrics *observability.Metrics, days int) *Engine {
	if days <= 0 {
		days = domain.DefaultSimulationDays
	}
	return &Engine{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		days:      days,
	}
}

// CheckReadiness reports whether the engine can serve traffic. The engine
// holds no external connections, so it is ready as soon as it exists.
func (e *Engine) CheckReadiness(_ context.Context) error {
	return nil
}

// Run validates params, executes the three-stage pipeline, and hands the
// result to the publisher when one is configured. Publish failures are
// logged and counted but never fail the run.
func (e *Engine) Run(ctx context.Context, params Params) (Result, error) {
	if params.Days == 0 {
		params.Days = e.days
	}
	if err := params.Validate(); err != nil {
		e.metrics.InvalidParams.Inc()
		return Result{}, err
	}

	start := time.Now()

	seed := pickSeed(params.Seed)
	rng := rand.New(rand.NewPCG(seed, 0))

	rainfall := domain.GenerateRainfall(rng, params.Days, params.MeanRainfall, params.StdDev)
	harvested := domain.ConvertHarvest(rainfall, params.harvesterConfig())
	sizing := domain.SizeStorage(harvested, params.DailyConsumption)

	result := Result{
		ID:             resultID(params, seed),
		Params:         params,
		Rainfall:       rainfall,
		Harvested:      harvested,
		Sizing:         sizing,
		TotalRainfall:  rainfall.Total(),
		TotalHarvested: harvested.Total(),
		Seed:           seed,
		CompletedAt:    clock.Now(),
	}

	eff, err := domain.Efficiency(result.TotalHarvested, sizing.TotalOverflow)
	switch {
	case errors.Is(err, domain.ErrUndefinedMetric):
		// Nothing harvested all year; efficiency stays nil.
	case err == nil:
		result.Efficiency = &eff
	}

	e.metrics.SimulationsCompleted.Inc()
	e.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	e.metrics.RecommendedCapacity.Observe(sizing.RecommendedCapacity)

	e.publish(ctx, result)

	e.logger.Info("simulation complete",
		"result_id", result.ID,
		"days", params.Days,
		"seed", seed,
		"capacity_liters", sizing.RecommendedCapacity,
		"overflow_liters", sizing.TotalOverflow,
	)

	return result, nil
}

func (e *Engine) publish(ctx context.Context, result Result) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishResult(ctx, result); err != nil {
		e.logger.Warn("result publish failed", "result_id", result.ID, "error", err)
		e.metrics.PublishErrors.Inc()
		return
	}
	e.metrics.ResultsPublished.Inc()
}

// pickSeed returns the explicit seed when set, otherwise a fresh one from
// the process-global source. The chosen seed is reported in the Result so
// any run can be replayed.
func pickSeed(explicit *uint64) uint64 {
	if explicit != nil {
		return *explicit
	}
	return rand.Uint64()
}

// resultID produces a deterministic ID from the run's inputs. The same
// params and seed always hash to the same ID, so replays are recognizable
// downstream.
func resultID(params Params, seed uint64) string {
	input := fmt.Sprintf("%g|%g|%g|%g|%g|%d|%d",
		params.RoofArea, params.RunoffCoefficient, params.DailyConsumption,
		params.MeanRainfall, params.StdDev, params.Days, seed)
	hash := sha256.Sum256([]byte(input))
	return "sim-" + hex.EncodeToString(hash[:8])
}
