package timeline

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"bookings-insights-service/internal/bookings/core/domain"
)

func bucket(t *testing.T, rows []domain.Booking, g Granularity, opts ...BucketOption) Series {
	t.Helper()

	s, err := Bucket(rows, g, opts...)
	if err != nil {
		t.Fatalf("bucket: unexpected error: %v", err)
	}
	return s
}

func TestBucket_DailyWindowIsZeroFilled(t *testing.T) {
	rows := []domain.Booking{
		{BookingID: "a", Date: "2024-01-01", Time: "09:00"},
		{BookingID: "b", Date: "2024-01-01", Time: "17:30"},
	}
	window := Range{Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-02 23:59:00")}

	s := bucket(t, rows, Daily, WithWindow(window))

	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s.Points))
	}
	if !ts("2024-01-01 00:00:00").Equal(s.Points[0].Start) || !ts("2024-01-02 00:00:00").Equal(s.Points[1].Start) {
		t.Errorf("unexpected bucket starts: %v, %v", s.Points[0].Start, s.Points[1].Start)
	}
	if !slices.Equal(values(s), []float64{2, 0}) {
		t.Errorf("unexpected values: %v", values(s))
	}
	if s.Included != 2 {
		t.Errorf("expected 2 included, got %d", s.Included)
	}
}

func TestBucket_HourlyOverOneDayHas24Slots(t *testing.T) {
	s := bucket(t, nil, Hourly, WithWindow(day1()))

	if len(s.Points) != 24 {
		t.Fatalf("expected 24 points, got %d", len(s.Points))
	}
	for h, p := range s.Points {
		if p.Start.Hour() != h || p.Value != 0 {
			t.Errorf("slot %d: got %v = %v", h, p.Start, p.Value)
		}
	}
}

func TestBucket_SuccessOnlyHourlyDay(t *testing.T) {
	rows := []domain.Booking{
		{BookingID: "1", Date: "2024-01-01", Time: "09:00:00", BookingStatus: "Success"},
		{BookingID: "2", Date: "2024-01-01", Time: "10:00:00", BookingStatus: "Success"},
		{BookingID: "3", Date: "2024-01-01", Time: "23:00:00", BookingStatus: "Success"},
		{BookingID: "4", Date: "2024-01-01", Time: "09:30:00", BookingStatus: "Cancelled by Driver"},
		{BookingID: "5", Date: "2024-01-01", Time: "14:00:00", BookingStatus: "Cancelled by Customer"},
	}

	p := compose(t, StrictStatus, FilterSpec{SuccessOnly: true, Range: day1(), RangeEnabled: true})
	r, _ := p.ActiveRange()

	s := bucket(t, p.Filter(rows), AutoGranularity(r, 0), WithWindow(r))

	if s.Granularity != Hourly {
		t.Fatalf("expected hourly, got %s", s.Granularity)
	}
	if len(s.Points) != 24 {
		t.Fatalf("expected 24 points, got %d", len(s.Points))
	}
	for h, pt := range s.Points {
		want := 0.0
		switch h {
		case 9, 10, 23:
			want = 1
		}
		if pt.Value != want {
			t.Errorf("hour %d: got %v, want %v", h, pt.Value, want)
		}
	}
	if s.Total() != 3 {
		t.Errorf("expected total 3, got %v", s.Total())
	}
}

func TestBucket_IsIdempotent(t *testing.T) {
	rows := fixtureBookings()

	first := bucket(t, rows, Daily)
	second := bucket(t, rows, Daily)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated bucketing differs:\n%+v\n%+v", first, second)
	}
}

func TestBucket_SpanOfDataWithoutWindow(t *testing.T) {
	s := bucket(t, fixtureBookings(), Daily)

	// B7 is unparseable; the rest spread over three days.
	if !slices.Equal(values(s), []float64{4, 2, 1}) {
		t.Fatalf("unexpected values: %v", values(s))
	}
	if s.Included != 7 || s.Excluded != 1 {
		t.Errorf("expected 7 included and 1 excluded, got %d and %d", s.Included, s.Excluded)
	}
}

func TestBucket_RowsOutsideWindowAreIgnored(t *testing.T) {
	s := bucket(t, fixtureBookings(), Hourly, WithWindow(Range{
		Start: ts("2024-01-01 09:30:00"),
		End:   ts("2024-01-01 11:00:00"),
	}))

	// Buckets 09, 10, 11. B1 at 09:00 precedes the window start.
	if !slices.Equal(values(s), []float64{0, 1, 1}) {
		t.Fatalf("unexpected values: %v", values(s))
	}
	if s.Included != 2 {
		t.Errorf("expected 2 included, got %d", s.Included)
	}
}

func TestBucket_SumAndAvgMeasure(t *testing.T) {
	rows := fixtureBookings()

	sum := bucket(t, rows, Daily, WithMeasure(domain.MeasureBookingValue, Sum))
	if !slices.Equal(values(sum), []float64{180, 0, 20}) {
		t.Errorf("unexpected sums: %v", values(sum))
	}
	if sum.Measure != domain.MeasureBookingValue {
		t.Errorf("unexpected measure: %q", sum.Measure)
	}

	avg := bucket(t, rows, Daily, WithMeasure(domain.MeasureBookingValue, Avg))
	// Day one: 100, 50 and 30 carry values, B4 does not.
	if !slices.Equal(values(avg), []float64{60, 0, 20}) {
		t.Errorf("unexpected averages: %v", values(avg))
	}
	if !slices.Equal(rowCounts(avg), []int{4, 2, 1}) {
		t.Errorf("unexpected row counts: %v", rowCounts(avg))
	}
}

func TestBucket_CountIgnoresMeasure(t *testing.T) {
	s := bucket(t, fixtureBookings(), Daily, WithMeasure("not_a_column", Count))

	if s.Measure != "" {
		t.Errorf("expected no measure, got %q", s.Measure)
	}
	if s.Total() != 7 {
		t.Errorf("expected total 7, got %v", s.Total())
	}
}

func TestBucket_Errors(t *testing.T) {
	tests := []struct {
		name string
		g    Granularity
		opts []BucketOption
		want error
	}{
		{"unknown granularity", Granularity("yearly"), nil, ErrInvalidGranularity},
		{"text column as measure", Daily, []BucketOption{WithMeasure("booking_status", Sum)}, ErrInvalidMeasure},
		{"too many buckets", Hourly, []BucketOption{WithMaxBuckets(10), WithWindow(day1())}, ErrTooManyBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bucket(nil, tt.g, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBucket_EmptyInputWithoutWindow(t *testing.T) {
	s := bucket(t, []domain.Booking{{BookingID: "x", Date: "garbage"}}, Daily)

	if len(s.Points) != 0 {
		t.Errorf("expected no points, got %v", s.Points)
	}
	if s.Excluded != 1 || s.Total() != 0 {
		t.Errorf("expected 1 excluded and total 0, got %d and %v", s.Excluded, s.Total())
	}
}

func TestBucket_IncompleteWindowFallsBackToData(t *testing.T) {
	s := bucket(t, fixtureBookings(), Daily, WithWindow(Range{Start: ts("2023-12-01 00:00:00")}))

	if len(s.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(s.Points))
	}
}

func TestGranularity_Truncate(t *testing.T) {
	at := ts("2024-01-10 13:45:12.5") // a Wednesday
	sunday := ts("2024-01-14 23:00:00")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"hourly", Hourly.Truncate(at).Format(tsLayout), "2024-01-10 13:00:00"},
		{"daily", Daily.Truncate(at).Format(tsLayout), "2024-01-10 00:00:00"},
		{"weekly", Weekly.Truncate(at).Format(tsLayout), "2024-01-08 00:00:00"},
		{"monthly", Monthly.Truncate(at).Format(tsLayout), "2024-01-01 00:00:00"},
		{"weekly sunday", Weekly.Truncate(sunday).Format(tsLayout), "2024-01-08 00:00:00"},
		{"next month", Monthly.Next(Monthly.Truncate(at)).Format(tsLayout), "2024-02-01 00:00:00"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestAutoGranularity(t *testing.T) {
	tests := []struct {
		name string
		end  string
		want Granularity
	}{
		{"same day", "2024-01-01 23:59:00", Hourly},
		{"three days", "2024-01-04 00:00:00", Hourly},
		{"just under four days", "2024-01-04 23:59:00", Hourly},
		{"four days", "2024-01-05 00:00:00", Daily},
		{"a month", "2024-02-01 00:00:00", Daily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Range{Start: ts("2024-01-01 00:00:00"), End: ts(tt.end)}
			if got := AutoGranularity(r, DefaultHourlyMaxSpanDays); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}

	wide := Range{Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-08 00:00:00")}
	if got := AutoGranularity(wide, 7); got != Hourly {
		t.Fatalf("seven-day threshold: got %s, want hourly", got)
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity(" Weekly ")
	if err != nil || g != Weekly {
		t.Fatalf("expected weekly, got %s (%v)", g, err)
	}
	if _, err := ParseGranularity(""); !errors.Is(err, ErrInvalidGranularity) {
		t.Fatalf("expected ErrInvalidGranularity, got %v", err)
	}

	a, err := ParseAggregate("")
	if err != nil || a != Count {
		t.Fatalf("expected count, got %s (%v)", a, err)
	}
	if _, err := ParseAggregate("median"); !errors.Is(err, ErrInvalidAggregate) {
		t.Fatalf("expected ErrInvalidAggregate, got %v", err)
	}
}

const tsLayout = "2006-01-02 15:04:05"

func values(s Series) []float64 {
	out := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Value)
	}
	return out
}

func rowCounts(s Series) []int {
	out := make([]int, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Rows)
	}
	return out
}
