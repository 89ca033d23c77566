package spending

import (
	"testing"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFlatProfile(t *testing.T) {
	p := FlatProfile{}
	for _, age := range []int{50, 65, 84, 95, 110} {
		assert.Equal(t, 1.0, p.Multiplier(age, 65))
	}
}

func TestSmileProfile_AnchorPoints(t *testing.T) {
	p := SmileProfile{}

	assert.Equal(t, 1.0, p.Multiplier(60, 65), "before retirement")
	assert.Equal(t, 1.0, p.Multiplier(65, 65), "at retirement")
	assert.InDelta(t, 0.74, p.Multiplier(84, 65), 1e-9, "trough at 84")
	assert.InDelta(t, 1.0, p.Multiplier(95, 65), 1e-9, "recovered by 95")
	assert.Equal(t, 1.0, p.Multiplier(100, 65), "held after recovery")
}

func TestSmileProfile_MonotoneDeclineThenRebound(t *testing.T) {
	p := SmileProfile{}

	prev := p.Multiplier(65, 65)
	for age := 66; age <= 84; age++ {
		cur := p.Multiplier(age, 65)
		assert.Less(t, cur, prev, "decline should be monotone through the trough (age %d)", age)
		prev = cur
	}
	for age := 85; age <= 95; age++ {
		cur := p.Multiplier(age, 65)
		assert.Greater(t, cur, prev, "rebound should be monotone after the trough (age %d)", age)
		prev = cur
	}
}

func TestSmileProfile_LateRetirementStaysFlat(t *testing.T) {
	p := SmileProfile{}

	// Retiring at or past the trough age (84) has no decline left to trace:
	// the multiplier holds at 1.0 instead of dipping into the rebound leg.
	for _, retirementAge := range []int{84, 90, 96} {
		for age := retirementAge; age <= retirementAge+20; age++ {
			assert.Equal(t, 1.0, p.Multiplier(age, retirementAge),
				"retire at %d, age %d", retirementAge, age)
		}
	}
}

func TestStepdownProfile_Steps(t *testing.T) {
	p := StepdownProfile{}

	// Years since retirement drive the curve, not absolute age.
	assert.Equal(t, 1.0, p.Multiplier(65, 65))
	assert.Equal(t, 1.0, p.Multiplier(69, 65), "100%% for the first five years")
	assert.InDelta(t, 0.95, p.Multiplier(75, 65), 1e-9, "95%% at ten years")
	assert.InDelta(t, 0.85, p.Multiplier(85, 65), 1e-9, "85%% at twenty years")
	assert.InDelta(t, 0.80, p.Multiplier(95, 65), 1e-9, "80%% at thirty years")
	assert.Equal(t, 0.80, p.Multiplier(110, 65), "flat at 80%% thereafter")
}

func TestCustomProfile_InterpolationAndClamping(t *testing.T) {
	p := NewCustomProfile([]domain.CustomProfilePoint{
		{Age: 80, Multiplier: 0.8},
		{Age: 70, Multiplier: 1.0}, // out of order on purpose; constructor sorts
	})

	assert.Equal(t, 1.0, p.Multiplier(60, 65), "clamps below the first point")
	assert.Equal(t, 0.8, p.Multiplier(90, 65), "clamps above the last point")
	assert.InDelta(t, 0.9, p.Multiplier(75, 65), 1e-9, "interpolates midway")
}

func TestCustomProfile_SinglePoint(t *testing.T) {
	p := NewCustomProfile([]domain.CustomProfilePoint{{Age: 70, Multiplier: 0.9}})

	assert.Equal(t, 0.9, p.Multiplier(60, 65))
	assert.Equal(t, 0.9, p.Multiplier(70, 65))
	assert.Equal(t, 0.9, p.Multiplier(90, 65))
}

func TestYearSpending_InflationAndMultiplier(t *testing.T) {
	initial := decimal.NewFromInt(50000)
	inflation := decimal.NewFromFloat(0.03)

	// Year 0 at retirement: no inflation growth, multiplier 1.
	got := YearSpending(FlatProfile{}, initial, 65, 65, inflation, 0)
	assert.True(t, got.Equal(initial), "got %s", got)

	// Year 2: 50000 * 1.03^2.
	got = YearSpending(FlatProfile{}, initial, 67, 65, inflation, 2)
	want := decimal.NewFromFloat(50000 * 1.03 * 1.03)
	assert.True(t, got.Sub(want).Abs().LessThan(decimal.NewFromFloat(0.01)), "got %s want %s", got, want)
}

func TestCreateProfile(t *testing.T) {
	assert.Equal(t, domain.ProfileFlat, CreateProfile(domain.ProfileFlat, nil).Kind())
	assert.Equal(t, domain.ProfileSmile, CreateProfile(domain.ProfileSmile, nil).Kind())
	assert.Equal(t, domain.ProfileStepdown, CreateProfile(domain.ProfileStepdown, nil).Kind())
	assert.Equal(t, domain.ProfileCustom, CreateProfile(domain.ProfileCustom, []domain.CustomProfilePoint{{Age: 70, Multiplier: 0.9}}).Kind())

	// Unknown selectors fall back to flat; config rejects them upstream.
	assert.Equal(t, domain.ProfileFlat, CreateProfile("bogus", nil).Kind())
}
