package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	bookings "bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/insights/core/domain"
	"bookings-insights-service/internal/insights/core/ports"
	"bookings-insights-service/internal/insights/core/timeline"
	"bookings-insights-service/internal/observability/logger"

	"go.uber.org/zap"
)

var (
	ErrInvalidRange       = timeline.ErrInvalidTimeRange
	ErrRangeBoundMissing  = timeline.ErrRangeBoundMissing
	ErrInvalidGranularity = timeline.ErrInvalidGranularity
	ErrInvalidMeasure     = timeline.ErrInvalidMeasure
	ErrInvalidAggregate   = timeline.ErrInvalidAggregate
	ErrTooManyBuckets     = timeline.ErrTooManyBuckets
)

// GranularityAuto picks hourly or daily from the span of the range.
const GranularityAuto = "auto"

// DefaultBreakdownLimit caps the vehicle-type breakdown.
const DefaultBreakdownLimit = 20

type Config struct {
	HourlyMaxSpanDays int
	MaxBuckets        int
	BreakdownLimit    int
}

type ExploreBookingsInput struct {
	SuccessOnly bool

	RangeEnabled bool
	Start        time.Time // zero when not given
	End          time.Time

	Granularity string // "", "auto", "hourly", "daily", "weekly", "monthly"
	Measure     string // booking column, required for sum/avg
	Aggregate   string // "", "count", "sum", "avg"
}

type ExploreBookingsUseCase struct {
	source   ports.RecordSourcePort
	composer timeline.Composer
	observer ports.PipelineObserver
	cfg      Config
}

func NewExploreBookingsUseCase(
	source ports.RecordSourcePort,
	composer timeline.Composer,
	observer ports.PipelineObserver,
	cfg Config,
) *ExploreBookingsUseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if cfg.HourlyMaxSpanDays <= 0 {
		cfg.HourlyMaxSpanDays = timeline.DefaultHourlyMaxSpanDays
	}
	if cfg.MaxBuckets <= 0 {
		cfg.MaxBuckets = timeline.DefaultMaxBuckets
	}
	if cfg.BreakdownLimit <= 0 {
		cfg.BreakdownLimit = DefaultBreakdownLimit
	}
	return &ExploreBookingsUseCase{source: source, composer: composer, observer: observer, cfg: cfg}
}

// Execute validates the input, probes the bounds of the store, fetches the
// filtered rows and buckets them. Every validation error is returned before
// the record source is touched.
func (uc *ExploreBookingsUseCase) Execute(ctx context.Context, in ExploreBookingsInput) (*domain.ExploreResult, error) {
	log := logger.FromContext(ctx)

	opts, err := uc.seriesOptions(in)
	if err != nil {
		return nil, err
	}

	pred, err := uc.composer.Compose(timeline.FilterSpec{
		SuccessOnly:  in.SuccessOnly,
		Range:        timeline.Range{Start: in.Start, End: in.End},
		RangeEnabled: in.RangeEnabled,
	})
	if err != nil {
		return nil, err
	}

	res := &domain.ExploreResult{
		SuccessOnly: in.SuccessOnly,
		Policy:      uc.composer.Policy(),
	}
	window, windowed := pred.ActiveRange()
	if windowed {
		res.Window = &window
	}

	bounds, found, err := uc.probe(ctx, in.SuccessOnly)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Debug("explore: no parseable event timestamps", zap.Bool("success_only", in.SuccessOnly))
		return res, nil
	}
	res.Bounds = bounds

	start := time.Now()
	rows, err := uc.source.FetchRows(ctx, pred)
	uc.observer.ObserveStage(ports.StageFetch, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	log.Debug("explore: rows fetched", zap.Int("rows", len(rows)), zap.Int("conditions", len(pred.Conditions())))
	if len(rows) == 0 {
		uc.observer.ObserveRows(0, 0)
		return res, nil
	}

	g, err := uc.granularity(in.Granularity, windowed, window, bounds)
	if err != nil {
		return nil, err
	}
	if windowed {
		opts = append(opts, timeline.WithWindow(window))
	}

	start = time.Now()
	series, err := timeline.Bucket(rows, g, opts...)
	uc.observer.ObserveStage(ports.StageBucket, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	uc.observer.ObserveRows(len(rows), series.Excluded)
	if series.Excluded > 0 {
		log.Warn("explore: rows with unparseable event timestamp excluded from series",
			zap.Int("excluded", series.Excluded),
			zap.Int("rows", len(rows)),
		)
	}

	res.HasData = true
	res.Series = series
	res.Rows = bookingRows(rows)
	res.ByVehicleType = countByCategory(rows, func(b bookings.Booking) string { return b.VehicleType }, uc.cfg.BreakdownLimit)
	return res, nil
}

// Bounds reports the earliest and latest parseable event timestamps, the
// defaults a caller offers for range selection.
func (uc *ExploreBookingsUseCase) Bounds(ctx context.Context, successOnly bool) (domain.Bounds, error) {
	r, found, err := uc.probe(ctx, successOnly)
	if err != nil {
		return domain.Bounds{}, err
	}
	return domain.Bounds{SuccessOnly: successOnly, HasData: found, Range: r}, nil
}

func (uc *ExploreBookingsUseCase) probe(ctx context.Context, successOnly bool) (timeline.Range, bool, error) {
	start := time.Now()
	r, found, err := uc.source.MinMaxEventTimestamp(ctx, successOnly)
	uc.observer.ObserveStage(ports.StageProbe, time.Since(start), err)
	if err != nil {
		return timeline.Range{}, false, fmt.Errorf("probe event bounds: %w", err)
	}
	return r, found, nil
}

func (uc *ExploreBookingsUseCase) seriesOptions(in ExploreBookingsInput) ([]timeline.BucketOption, error) {
	if g := strings.TrimSpace(in.Granularity); g != "" && !strings.EqualFold(g, GranularityAuto) {
		if _, err := timeline.ParseGranularity(g); err != nil {
			return nil, err
		}
	}

	agg, err := timeline.ParseAggregate(strings.ToLower(strings.TrimSpace(in.Aggregate)))
	if err != nil {
		return nil, err
	}
	measure := strings.ToLower(strings.TrimSpace(in.Measure))
	if agg != timeline.Count && !bookings.IsMeasureColumn(measure) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMeasure, in.Measure)
	}

	return []timeline.BucketOption{
		timeline.WithMeasure(measure, agg),
		timeline.WithMaxBuckets(uc.cfg.MaxBuckets),
	}, nil
}

// granularity resolves the requested granularity. Auto uses the active range
// when there is one and the probed bounds otherwise.
func (uc *ExploreBookingsUseCase) granularity(requested string, windowed bool, window, bounds timeline.Range) (timeline.Granularity, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, GranularityAuto) {
		return timeline.ParseGranularity(requested)
	}
	span := bounds
	if windowed {
		span = window
	}
	return timeline.AutoGranularity(span, uc.cfg.HourlyMaxSpanDays), nil
}

func bookingRows(rows []bookings.Booking) []domain.BookingRow {
	out := make([]domain.BookingRow, len(rows))
	for i, b := range rows {
		out[i].Booking = b
		if ts, ok := timeline.NormalizeBooking(b); ok {
			out[i].EventTime = &ts
		}
	}
	return out
}

// countByCategory counts rows per key, most frequent first, ties by key.
func countByCategory(rows []bookings.Booking, key func(bookings.Booking) string, limit int) []domain.CategoryCount {
	counts := make(map[string]int)
	for _, b := range rows {
		k := strings.TrimSpace(key(b))
		if k == "" {
			k = domain.UnknownCategory
		}
		counts[k]++
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.CategoryCount{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
