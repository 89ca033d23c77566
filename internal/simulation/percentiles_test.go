package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestPercentileOfSorted_ExactRank(t *testing.T) {
	values := dec(100, 200, 300)

	got := percentileOfSorted(values, 0.50)
	if !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("p50 of [100,200,300] = %s, want 200", got)
	}

	got = percentileOfSorted(values, 0)
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("p0 = %s, want 100", got)
	}

	got = percentileOfSorted(values, 1)
	if !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("p100 = %s, want 300", got)
	}
}

func TestPercentileOfSorted_TwoElementInterpolation(t *testing.T) {
	values := dec(100, 200)

	got := percentileOfSorted(values, 0.10)
	if !got.Equal(decimal.NewFromInt(110)) {
		t.Errorf("p10 of [100,200] = %s, want 110", got)
	}

	got = percentileOfSorted(values, 0.90)
	if !got.Equal(decimal.NewFromInt(190)) {
		t.Errorf("p90 of [100,200] = %s, want 190", got)
	}
}

func TestPercentileOfSorted_Empty(t *testing.T) {
	if got := percentileOfSorted(nil, 0.5); !got.IsZero() {
		t.Errorf("p50 of empty = %s, want 0", got)
	}
}

func TestPercentileOfSorted_SingleElement(t *testing.T) {
	values := dec(42)
	for _, p := range []float64{0.10, 0.50, 0.90} {
		if got := percentileOfSorted(values, p); !got.Equal(decimal.NewFromInt(42)) {
			t.Errorf("p%.0f of [42] = %s, want 42", p*100, got)
		}
	}
}

func TestSortValues(t *testing.T) {
	values := dec(300, 100, 200)
	sortValues(values)

	for i, want := range []int64{100, 200, 300} {
		if !values[i].Equal(decimal.NewFromInt(want)) {
			t.Errorf("values[%d] = %s, want %d", i, values[i], want)
		}
	}
}
