package spending

import (
	"sort"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// Profile maps an age to a real-spending multiplier. Implementations are pure
// and safe for concurrent use.
type Profile interface {
	// Multiplier returns the spending multiplier for the given age relative
	// to the retirement age. At or before retirement it is 1.0 for the
	// built-in curves.
	Multiplier(age, retirementAge int) float64

	// Kind identifies the curve for reporting.
	Kind() domain.SpendingProfileKind
}

// FlatProfile spends the same real amount every year.
type FlatProfile struct{}

func (FlatProfile) Multiplier(age, retirementAge int) float64 { return 1.0 }

func (FlatProfile) Kind() domain.SpendingProfileKind { return domain.ProfileFlat }

// SmileProfile is the age-anchored retirement spending smile: 1.0 at and
// before retirement, declining to a trough of 0.74 at age 84, rebounding
// linearly to 1.0 by age 95 and holding there.
type SmileProfile struct{}

const (
	smileTroughAge        = 84
	smileTroughMultiplier = 0.74
	smileRecoveryAge      = 95
)

func (SmileProfile) Multiplier(age, retirementAge int) float64 {
	if age <= retirementAge {
		return 1.0
	}
	// Retiring at or past the trough age leaves no decline to trace; the
	// curve stays flat rather than starting inside the rebound.
	if retirementAge >= smileTroughAge {
		return 1.0
	}
	switch {
	case age <= smileTroughAge:
		frac := float64(age-retirementAge) / float64(smileTroughAge-retirementAge)
		return 1.0 - (1.0-smileTroughMultiplier)*frac
	case age < smileRecoveryAge:
		frac := float64(age-smileTroughAge) / float64(smileRecoveryAge-smileTroughAge)
		return smileTroughMultiplier + (1.0-smileTroughMultiplier)*frac
	default:
		return 1.0
	}
}

func (SmileProfile) Kind() domain.SpendingProfileKind { return domain.ProfileSmile }

// StepdownProfile is the years-since-retirement step curve: 100% for the
// first five years, then linear declines to 95% by year 10, 85% by year 20,
// 80% by year 30, flat at 80% thereafter.
type StepdownProfile struct{}

func (StepdownProfile) Multiplier(age, retirementAge int) float64 {
	years := age - retirementAge
	switch {
	case years < 5:
		return 1.0
	case years < 10:
		return 1.0 - 0.05*float64(years-5)/5.0
	case years < 20:
		return 0.95 - 0.10*float64(years-10)/10.0
	case years < 30:
		return 0.85 - 0.05*float64(years-20)/10.0
	default:
		return 0.80
	}
}

func (StepdownProfile) Kind() domain.SpendingProfileKind { return domain.ProfileStepdown }

// CustomProfile interpolates linearly between user-supplied control points.
// Ages outside the supplied range clamp to the nearest endpoint's multiplier.
type CustomProfile struct {
	points []domain.CustomProfilePoint
}

// NewCustomProfile sorts the control points by age and returns a profile over
// them. At least one point is required; the caller validates that.
func NewCustomProfile(points []domain.CustomProfilePoint) *CustomProfile {
	sorted := append([]domain.CustomProfilePoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })
	return &CustomProfile{points: sorted}
}

func (c *CustomProfile) Multiplier(age, retirementAge int) float64 {
	pts := c.points
	if len(pts) == 0 {
		return 1.0
	}
	if age <= pts[0].Age {
		return pts[0].Multiplier
	}
	if age >= pts[len(pts)-1].Age {
		return pts[len(pts)-1].Multiplier
	}
	for i := 1; i < len(pts); i++ {
		if age <= pts[i].Age {
			lo, hi := pts[i-1], pts[i]
			if hi.Age == lo.Age {
				return hi.Multiplier
			}
			frac := float64(age-lo.Age) / float64(hi.Age-lo.Age)
			return lo.Multiplier + (hi.Multiplier-lo.Multiplier)*frac
		}
	}
	return pts[len(pts)-1].Multiplier
}

func (c *CustomProfile) Kind() domain.SpendingProfileKind { return domain.ProfileCustom }

// YearSpending computes the nominal spending target for one simulated year:
// initial spending grown by inflation over the year index, scaled by the
// profile multiplier for that age.
func YearSpending(p Profile, initial decimal.Decimal, age, retirementAge int, inflationRate decimal.Decimal, yearIndex int) decimal.Decimal {
	inflated := initial.Mul(onePlus(inflationRate).Pow(decimal.NewFromInt(int64(yearIndex))))
	return inflated.Mul(decimal.NewFromFloat(p.Multiplier(age, retirementAge)))
}

func onePlus(rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate)
}
