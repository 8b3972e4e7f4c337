package booking

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
	"booking-cost/core/rates"
	"booking-cost/internal/errors"
)

func TestComputeCost(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		mode  string
		days  int
		want  int64
	}{
		{
			name:  "whole day band one-time",
			start: "08:00", end: "18:00", mode: "one_time",
			want: 25000,
		},
		{
			name:  "split across day and evening",
			start: "17:00", end: "19:00", mode: "one_time",
			want: 5300,
		},
		{
			name:  "overnight inside night band",
			start: "23:00", end: "02:00", mode: "one_time",
			want: 6600,
		},
		{
			name:  "subscription multiplied by days",
			start: "08:00", end: "18:00", mode: "subscription", days: 5,
			want: 100000,
		},
		{
			name:  "days ignored for one-time",
			start: "08:00", end: "18:00", mode: "one_time", days: 5,
			want: 25000,
		},
		{
			name:  "ends exactly on band boundary",
			start: "16:00", end: "18:00", mode: "one_time",
			want: 5000,
		},
		{
			name:  "early morning night rate",
			start: "06:00", end: "09:00", mode: "one_time",
			want: 2*2200 + 2500,
		},
		{
			name:  "all three bands",
			start: "07:00", end: "23:00", mode: "subscription", days: 1,
			want: 1800 + 10*2000 + 4*2500 + 1800,
		},
		{
			name:  "midnight end closes the day",
			start: "20:00", end: "00:00", mode: "one_time",
			want: 2*2800 + 2*2200,
		},
		{
			name:  "partial hour rounds half up",
			start: "08:00", end: "08:01", mode: "one_time",
			want: 42, // 2500 / 60 = 41.67
		},
		{
			name:  "three minutes of subscription night",
			start: "22:00", end: "22:03", mode: "subscription", days: 1,
			want: 90,
		},
		{
			name:  "hour without minutes",
			start: "8", end: "10", mode: "one_time",
			want: 5000,
		},
		{
			name:  "whole night band",
			start: "22:00", end: "08:00", mode: "one_time",
			want: 10 * 2200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeCost(tt.start, tt.end, tt.mode, tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestComputeCostErrors(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		mode  string
		days  int
		want  errors.Type
	}{
		{"end before start", "14:00", "13:00", "one_time", 1, errors.TypeInvalidInterval},
		{"zero length", "10:00", "10:00", "one_time", 1, errors.TypeInvalidInterval},
		{"zero length at midnight", "00:00", "00:00", "one_time", 1, errors.TypeInvalidInterval},
		{"overnight leaving night band", "21:00", "02:00", "one_time", 1, errors.TypeInvalidInterval},
		{"overnight past night band", "23:00", "09:00", "one_time", 1, errors.TypeInvalidInterval},
		{"malformed start", "25:99", "10:00", "one_time", 1, errors.TypeInvalidFormat},
		{"malformed end", "10:00", "7pm", "one_time", 1, errors.TypeInvalidFormat},
		{"empty start", "", "10:00", "one_time", 1, errors.TypeInvalidFormat},
		{"unknown mode", "08:00", "10:00", "weekly", 1, errors.TypeInvalidArgument},
		{"subscription without days", "08:00", "10:00", "subscription", 0, errors.TypeInvalidArgument},
		{"subscription over a year", "08:00", "10:00", "subscription", MaxDays + 1, errors.TypeInvalidArgument},
		{"subscription with max int days", "08:00", "18:00", "subscription", math.MaxInt64, errors.TypeInvalidArgument},
		{"subscription with huge days", "08:00", "18:00", "subscription", math.MaxInt64 / 1000, errors.TypeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCost(tt.start, tt.end, tt.mode, tt.days)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestMalformedInputNeverWalksBands(t *testing.T) {
	calc := NewCalculator(nil)
	calls := 0
	calc.step = func(table *rates.Table, mode rates.PaymentMode, cursor, end int) (Segment, int, error) {
		calls++
		return Step(table, mode, cursor, end)
	}

	_, err := calc.ComputeCost("25:99", "10:00", "one_time", 1)
	if !errors.IsType(err, errors.TypeInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no steps, got %d", calls)
	}

	if _, err := calc.ComputeCost("17:00", "19:00", "one_time", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 steps for a two-band booking, got %d", calls)
	}
}

func TestDeterministic(t *testing.T) {
	first, err := ComputeCost("07:15", "21:40", "subscription", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := ComputeCost("07:15", "21:40", "subscription", 3)
		if err != nil || got != first {
			t.Fatalf("run %d: expected %d, got %d (%v)", i, first, got, err)
		}
	}
}

func TestMonotonicInEnd(t *testing.T) {
	for _, mode := range []string{"one_time", "subscription"} {
		for _, start := range []int{0, 7 * 60, 8 * 60, 17*60 + 30, 21 * 60} {
			prev := int64(-1)
			for end := start + 1; end < clock.MinutesPerDay; end++ {
				got, err := ComputeCost(clock.TimeOfDay(start).String(), clock.TimeOfDay(end).String(), mode, 1)
				if err != nil {
					t.Fatalf("%s %s-%s: unexpected error: %v", mode, clock.TimeOfDay(start), clock.TimeOfDay(end), err)
				}
				if got < prev {
					t.Fatalf("%s %s-%s: cost dropped from %d to %d", mode, clock.TimeOfDay(start), clock.TimeOfDay(end), prev, got)
				}
				prev = got
			}
		}
	}
}

func TestQuoteSegments(t *testing.T) {
	q, err := NewCalculator(nil).QuoteInput("17:00", "19:00", "one_time", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Segment{
		{
			Band: "day", Code: 5,
			From: clock.MustParse("17:00"), To: clock.MustParse("18:00"),
			Minutes: 60, Rate: decimal.NewFromInt(2500), Amount: decimal.NewFromInt(2500),
		},
		{
			Band: "evening", Code: 2,
			From: clock.MustParse("18:00"), To: clock.MustParse("19:00"),
			Minutes: 60, Rate: decimal.NewFromInt(2800), Amount: decimal.NewFromInt(2800),
		},
	}
	opts := cmp.Options{
		cmpopts.IgnoreUnexported(Segment{}),
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(want, q.Segments, opts); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if q.Minutes != 120 || q.Overnight {
		t.Errorf("expected 120 minutes same-day, got %d overnight=%v", q.Minutes, q.Overnight)
	}
	if q.Currency != rates.DefaultCurrency {
		t.Errorf("expected %s, got %s", rates.DefaultCurrency, q.Currency)
	}
}

func TestQuoteOvernightSplitsAtMidnight(t *testing.T) {
	q, err := NewCalculator(nil).QuoteInput("23:00", "02:00", "subscription", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Overnight {
		t.Error("expected overnight quote")
	}
	if len(q.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(q.Segments))
	}
	if q.Segments[0].To != clock.Midnight || q.Segments[1].From != clock.Midnight {
		t.Errorf("expected split at midnight, got %s-%s / %s-%s",
			q.Segments[0].From, q.Segments[0].To, q.Segments[1].From, q.Segments[1].To)
	}
	if !q.Subtotal.Equal(decimal.NewFromInt(3 * 1800)) {
		t.Errorf("expected subtotal 5400, got %s", q.Subtotal)
	}
	if q.Total != 3*1800*2 {
		t.Errorf("expected total %d, got %d", 3*1800*2, q.Total)
	}
}

func TestGapInTableIsOutsideCoverage(t *testing.T) {
	price := rates.Prices{OneTime: decimal.NewFromInt(100), Subscription: decimal.NewFromInt(90)}
	table := rates.NewTable("RUB",
		rates.Band{Name: "morning", Start: clock.MustParse("08:00"), End: clock.MustParse("12:00"), Prices: price},
		rates.Band{Name: "afternoon", Start: clock.MustParse("13:00"), End: clock.MustParse("18:00"), Prices: price},
	)

	calc := NewCalculator(table)
	got, err := calc.ComputeCost("09:00", "12:00", "one_time", 1)
	if err != nil || got != 300 {
		t.Fatalf("expected 300 inside coverage, got %d (%v)", got, err)
	}

	_, err = calc.ComputeCost("11:00", "14:00", "one_time", 1)
	if !errors.IsType(err, errors.TypeOutsideCoverage) {
		t.Fatalf("expected outside coverage, got %v", err)
	}
	e, _ := errors.As(err)
	if e.Context["minute"] != 12*60 {
		t.Errorf("expected gap reported at 12:00, got %v", e.Context["minute"])
	}

	_, err = calc.ComputeCost("23:00", "02:00", "one_time", 1)
	if !errors.IsType(err, errors.TypeInvalidInterval) {
		t.Errorf("a table without a wrapping band has no overnight bookings, got %v", err)
	}
}

func TestRoundsHalfUp(t *testing.T) {
	price := rates.Prices{OneTime: decimal.NewFromInt(30), Subscription: decimal.NewFromInt(90)}
	calc := NewCalculator(rates.NewTable("RUB",
		rates.Band{Name: "am", Start: clock.MustParse("00:00"), End: clock.MustParse("12:00"), Prices: price},
		rates.Band{Name: "pm", Start: clock.MustParse("12:00"), End: clock.MustParse("00:00"), Prices: price},
	))

	tests := []struct {
		start, end, mode string
		days             int
		want             int64
	}{
		{"10:00", "10:01", "one_time", 1, 1},     // 0.5
		{"10:00", "10:03", "one_time", 1, 2},     // 1.5
		{"10:00", "10:02", "one_time", 1, 1},     // 1.0
		{"10:00", "10:01", "subscription", 1, 2}, // 1.5
		{"10:00", "10:01", "subscription", 3, 5}, // 4.5
	}
	for _, tt := range tests {
		got, err := calc.ComputeCost(tt.start, tt.end, tt.mode, tt.days)
		if err != nil {
			t.Fatalf("%s-%s: unexpected error: %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("%s-%s %s x%d: expected %d, got %d", tt.start, tt.end, tt.mode, tt.days, tt.want, got)
		}
	}
}

func TestStep(t *testing.T) {
	table := rates.Default()

	tests := []struct {
		name     string
		cursor   int
		end      int
		wantBand string
		wantNext int
	}{
		{"day clipped by band end", 9 * 60, 20 * 60, "day", 18 * 60},
		{"day clipped by booking end", 9 * 60, 10 * 60, "day", 10 * 60},
		{"night before midnight cut at midnight", 23 * 60, 26 * 60, "night", 24 * 60},
		{"night after midnight on next day", 24 * 60, 26 * 60, "night", 26 * 60},
		{"night after midnight cut at 08:00", 24 * 60, 33 * 60, "night", 32 * 60},
		{"early morning to band end", 60, 10 * 60, "night", 8 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, next, err := Step(table, rates.OneTime, tt.cursor, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seg.Band != tt.wantBand {
				t.Errorf("expected band %s, got %s", tt.wantBand, seg.Band)
			}
			if next != tt.wantNext {
				t.Errorf("expected next %d, got %d", tt.wantNext, next)
			}
			if seg.Minutes != next-tt.cursor {
				t.Errorf("expected %d minutes, got %d", next-tt.cursor, seg.Minutes)
			}
		})
	}
}

func TestLongestSubscription(t *testing.T) {
	got, err := ComputeCost("08:00", "18:00", "subscription", MaxDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := int64(20000 * MaxDays); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestQuoteChecksDaysOfBuiltRequest(t *testing.T) {
	calc := NewCalculator(nil)
	req := Request{
		Start: clock.MustParse("08:00"),
		End:   clock.MustParse("10:00"),
		Mode:  rates.Subscription,
	}

	for _, days := range []int{0, -1, MaxDays + 1} {
		req.Days = days
		if _, err := calc.Quote(req); !errors.IsType(err, errors.TypeInvalidArgument) {
			t.Errorf("days=%d: expected invalid argument, got %v", days, err)
		}
	}

	req.Mode, req.Days = rates.OneTime, 0
	q, err := calc.Quote(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Days != 1 || q.Total != 5000 {
		t.Errorf("expected one day at 5000, got %d days at %d", q.Days, q.Total)
	}
}

func TestTotalBeyondInt64IsRejected(t *testing.T) {
	price := rates.Prices{OneTime: decimal.New(1, 18), Subscription: decimal.New(1, 18)}
	calc := NewCalculator(rates.NewTable("RUB",
		rates.Band{Name: "all", Start: clock.MustParse("00:00"), End: clock.MustParse("12:00"), Prices: price},
		rates.Band{Name: "rest", Start: clock.MustParse("12:00"), End: clock.MustParse("00:00"), Prices: price},
	))

	got, err := calc.ComputeCost("00:00", "10:00", "subscription", MaxDays)
	if !errors.IsType(err, errors.TypeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %d (%v)", got, err)
	}
	if got != 0 {
		t.Errorf("expected no total on error, got %d", got)
	}
}

func TestOvernightWithBandEndingAtMidnight(t *testing.T) {
	price := rates.Prices{OneTime: decimal.NewFromInt(60), Subscription: decimal.NewFromInt(60)}
	calc := NewCalculator(rates.NewTable("RUB",
		rates.Band{Name: "day", Start: clock.MustParse("06:00"), End: clock.MustParse("18:00"), Prices: price},
		rates.Band{Name: "evening", Start: clock.MustParse("18:00"), End: clock.MustParse("00:00"), Prices: price},
		rates.Band{Name: "night", Start: clock.MustParse("00:00"), End: clock.MustParse("06:00"), Prices: price},
	))

	got, err := calc.ComputeCost("19:00", "00:00", "one_time", 1)
	if err != nil || got != 300 {
		t.Fatalf("expected 300 up to midnight, got %d (%v)", got, err)
	}

	_, err = calc.ComputeCost("23:00", "00:00", "one_time", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = calc.ComputeCost("23:00", "02:00", "one_time", 1)
	if !errors.IsType(err, errors.TypeInvalidInterval) {
		t.Errorf("no band wraps past midnight, expected invalid interval, got %v", err)
	}
}
