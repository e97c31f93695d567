package timeline

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"bookings-insights-service/internal/bookings/core/domain"
)

var (
	ErrTooManyBuckets   = errors.New("too many buckets for the requested range and granularity")
	ErrInvalidMeasure   = errors.New("invalid measure column")
	ErrInvalidAggregate = errors.New("invalid aggregate")
)

// DefaultMaxBuckets caps the length of a series.
const DefaultMaxBuckets = 10000

// Aggregate is how rows of one bucket fold into a value.
type Aggregate string

const (
	Count Aggregate = "count"
	Sum   Aggregate = "sum"
	Avg   Aggregate = "avg"
)

// ParseAggregate accepts count, sum and avg. Empty selects Count.
func ParseAggregate(s string) (Aggregate, error) {
	switch Aggregate(s) {
	case "", Count:
		return Count, nil
	case Sum, Avg:
		return Aggregate(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAggregate, s)
}

// Point is one bucket of a series.
type Point struct {
	Start time.Time
	Value float64
	Rows  int
}

// Series is a gap-free run of buckets.
type Series struct {
	Granularity Granularity
	Measure     string
	Aggregate   Aggregate
	Points      []Point

	// Included counts rows placed in a bucket, Excluded rows dropped for an
	// unparseable event timestamp.
	Included int
	Excluded int
}

// Total is the sum of all point values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

type bucketConfig struct {
	measure    string
	aggregate  Aggregate
	window     *Range
	maxBuckets int
}

// BucketOption tunes Bucket.
type BucketOption func(*bucketConfig)

// WithMeasure aggregates column with agg instead of counting rows.
func WithMeasure(column string, agg Aggregate) BucketOption {
	return func(c *bucketConfig) {
		c.measure = column
		c.aggregate = agg
	}
}

// WithWindow makes the series cover r instead of the span of the data.
// Incomplete ranges are ignored.
func WithWindow(r Range) BucketOption {
	return func(c *bucketConfig) {
		if r.Complete() {
			c.window = &r
		}
	}
}

// WithMaxBuckets overrides DefaultMaxBuckets.
func WithMaxBuckets(n int) BucketOption {
	return func(c *bucketConfig) {
		if n > 0 {
			c.maxBuckets = n
		}
	}
}

type event struct {
	ts  time.Time
	row domain.Booking
}

// Bucket groups rows by event timestamp into buckets of width g. Rows with an
// unparseable timestamp are dropped and counted in Series.Excluded. Empty
// buckets are emitted with value 0. Without a window the series runs from the
// bucket of the earliest row to the bucket of the latest one; rows outside a
// window are ignored.
func Bucket(rows []domain.Booking, g Granularity, opts ...BucketOption) (Series, error) {
	cfg := bucketConfig{aggregate: Count, maxBuckets: DefaultMaxBuckets}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !g.Valid() {
		return Series{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	if cfg.aggregate == "" {
		cfg.aggregate = Count
	}
	if cfg.aggregate != Count && !domain.IsMeasureColumn(cfg.measure) {
		return Series{}, fmt.Errorf("%w: %q", ErrInvalidMeasure, cfg.measure)
	}
	if cfg.aggregate == Count {
		cfg.measure = ""
	}

	series := Series{Granularity: g, Measure: cfg.measure, Aggregate: cfg.aggregate}

	events := make([]event, 0, len(rows))
	for _, r := range rows {
		ts, ok := NormalizeBooking(r)
		if !ok {
			series.Excluded++
			continue
		}
		events = append(events, event{ts: ts, row: r})
	}
	slices.SortStableFunc(events, func(a, b event) int {
		return a.ts.Compare(b.ts)
	})

	var first, last time.Time
	switch {
	case cfg.window != nil:
		first, last = cfg.window.Start, cfg.window.End
	case len(events) > 0:
		first, last = events[0].ts, events[len(events)-1].ts
	default:
		return series, nil
	}

	starts, err := bucketStarts(g, first, last, cfg.maxBuckets)
	if err != nil {
		return Series{}, err
	}

	series.Points = make([]Point, len(starts))
	i := 0
	for i < len(events) && events[i].ts.Before(first) {
		i++
	}
	for b, start := range starts {
		end := g.Next(start)
		var sum float64
		var samples int
		p := Point{Start: start}
		for ; i < len(events) && events[i].ts.Before(end); i++ {
			if events[i].ts.After(last) {
				break
			}
			p.Rows++
			if v, ok := events[i].row.Measure(cfg.measure); ok {
				sum += v
				samples++
			}
		}
		switch cfg.aggregate {
		case Count:
			p.Value = float64(p.Rows)
		case Sum:
			p.Value = sum
		case Avg:
			if samples > 0 {
				p.Value = sum / float64(samples)
			}
		}
		series.Included += p.Rows
		series.Points[b] = p
	}
	return series, nil
}

// bucketStarts lists the bucket starts covering [first, last].
func bucketStarts(g Granularity, first, last time.Time, max int) ([]time.Time, error) {
	var starts []time.Time
	for s := g.Truncate(first); !s.After(last); s = g.Next(s) {
		if len(starts) == max {
			return nil, fmt.Errorf("%w: more than %d %s buckets", ErrTooManyBuckets, max, g)
		}
		starts = append(starts, s)
	}
	return starts, nil
}
