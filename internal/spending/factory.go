package spending

import (
	"github.com/glidepath/glidepath/internal/domain"
)

// CreateProfile returns the profile for a scenario's selector. Unknown
// selectors fall back to flat, matching how unrecognized strategies default
// elsewhere; the config layer rejects them before this point.
func CreateProfile(kind domain.SpendingProfileKind, custom []domain.CustomProfilePoint) Profile {
	switch kind {
	case domain.ProfileSmile:
		return SmileProfile{}
	case domain.ProfileStepdown:
		return StepdownProfile{}
	case domain.ProfileCustom:
		if len(custom) > 0 {
			return NewCustomProfile(custom)
		}
		return FlatProfile{}
	default:
		return FlatProfile{}
	}
}
