package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/rainwater-advisor/internal/estimation"
	"github.com/jonathan/rainwater-advisor/internal/geocode"
	"github.com/jonathan/rainwater-advisor/internal/sizing"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// DefaultWaterTariffPerKL is the municipal water price used for payback, in
// currency units per kilolitre.
const DefaultWaterTariffPerKL = 50.0

// Progress steps reported during Assess
const (
	StepGeocode        = "geocode"
	StepRainfall       = "rainfall"
	StepGroundwater    = "groundwater"
	StepRecommendation = "recommendation"
	StepStructure      = "structure"
)

// ProgressEvent is emitted as Assess completes each step.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback receives progress events.
type ProgressCallback func(event ProgressEvent)

// Advisor runs full assessments: estimation, scoring, selection, sizing.
type Advisor struct {
	estimator   *estimation.Estimator
	geocoder    geocode.Geocoder
	tariffPerKL float64
	now         func() time.Time
	onProgress  ProgressCallback
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithRandomSource sets the jitter source used by the estimators.
func WithRandomSource(src estimation.RandomSource) Option {
	return func(a *Advisor) { a.estimator = estimation.New(src) }
}

// WithGeocoder replaces the offline geocoder.
func WithGeocoder(g geocode.Geocoder) Option {
	return func(a *Advisor) { a.geocoder = g }
}

// WithWaterTariff sets the tariff used for payback calculations.
func WithWaterTariff(perKL float64) Option {
	return func(a *Advisor) {
		if perKL > 0 {
			a.tariffPerKL = perKL
		}
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Advisor) { a.now = now }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Advisor) { a.onProgress = cb }
}

// New creates an Advisor. Without options it uses a time-seeded random
// source and the offline table geocoder.
func New(opts ...Option) *Advisor {
	a := &Advisor{
		estimator:   estimation.New(estimation.NewTimeSource()),
		geocoder:    geocode.NewTableGeocoder(),
		tariffPerKL: DefaultWaterTariffPerKL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// With returns a copy of the advisor with extra options applied, e.g. a
// per-request progress callback.
func (a *Advisor) With(opts ...Option) *Advisor {
	c := *a
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

func (a *Advisor) progress(step, format string, args ...any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: fmt.Sprintf(format, args...)})
	}
}

// Assess runs the complete pipeline for a site. Zero AnnualRainfallMm or
// GroundwaterDepthM are treated as unknown and filled from the estimators;
// missing coordinates are geocoded from Location when possible.
func (a *Advisor) Assess(ctx context.Context, in types.SiteInput) (*types.Assessment, error) {
	if !in.HasCoordinates() && in.Location != "" {
		loc, err := a.geocoder.Geocode(ctx, in.Location)
		switch {
		case err == nil:
			c := loc.Coordinates
			in.Coordinates = &c
			a.progress(StepGeocode, "resolved %q to %.4f,%.4f (%s)", in.Location, c.Lat, c.Lng, loc.Accuracy)
		case errors.Is(err, geocode.ErrNoMatch):
			a.progress(StepGeocode, "could not resolve %q, using regional defaults", in.Location)
		case ctx.Err() != nil:
			return nil, fmt.Errorf("failed to geocode location: %w", ctx.Err())
		default:
			// Estimates still work from the location name alone.
			a.progress(StepGeocode, "geocoder unavailable for %q (%v), using regional defaults", in.Location, err)
		}
	}

	rainfall := a.estimator.RainfallFor(in.Location, in.Coordinates)
	if in.AnnualRainfallMm == 0 {
		in.AnnualRainfallMm = rainfall.AnnualRainfallMm
	}
	a.progress(StepRainfall, "annual rainfall %.0fmm (%s)", in.AnnualRainfallMm, rainfall.Source)

	groundwater := a.estimator.GroundwaterFor(in.Location, in.Coordinates)
	if in.GroundwaterDepthM == 0 {
		in.GroundwaterDepthM = groundwater.DepthM
	}
	a.progress(StepGroundwater, "groundwater depth %.1fm (%s)", in.GroundwaterDepthM, groundwater.Source)

	rec, err := AnalyzeAndRecommend(in)
	if err != nil {
		return nil, err
	}
	a.progress(StepRecommendation, "%s, feasibility %d", rec.SystemType.Label(), rec.FeasibilityScore)

	specs, err := GenerateStructureSpecs(in, rec.SystemType)
	if err != nil {
		return nil, err
	}
	a.progress(StepStructure, "%d liters, estimated cost %d", specs.Capacity, specs.EstimatedCost)

	return &types.Assessment{
		ID:             uuid.New(),
		CreatedAt:      a.now().UTC(),
		Input:          in,
		Rainfall:       rainfall,
		Groundwater:    groundwater,
		Recommendation: *rec,
		Structure:      *specs,
		Harvest:        a.harvestSummary(in, specs.EstimatedCost),
	}, nil
}

func (a *Advisor) harvestSummary(in types.SiteInput, estimatedCost int) types.HarvestSummary {
	harvest := sizing.PotentialHarvestLiters(in.RoofAreaM2, in.AnnualRainfallMm)
	demand := sizing.DailyDemandLiters(in.NumDwellers) * 365

	summary := types.HarvestSummary{
		PotentialHarvestLiters: int(math.Round(harvest)),
		AnnualDemandLiters:     int(math.Round(demand)),
	}
	if demand > 0 {
		summary.DemandCoveragePercent = math.Round(math.Min(100, harvest/demand*100)*10) / 10
	}
	yearlySaving := math.Min(harvest, demand) / 1000 * a.tariffPerKL
	if yearlySaving > 0 {
		summary.PaybackYears = math.Round(float64(estimatedCost)/yearlySaving*10) / 10
	}
	return summary
}
