package tier

import "github.com/dkarpele/havengate/internal/model"

// DefaultAdminEmails is the built-in privileged allow-list.
var DefaultAdminEmails = []string{
	"admin@havengate.app",
	"ops@havengate.app",
}

// featureTable maps each tier to the features it may see. The surrounding
// UI consults this to gate visibility; it is not part of the request
// pipeline itself.
var featureTable = map[model.Tier][]string{
	model.TierAnonymous: {
		"chat",
		"breathing",
	},
	model.TierFree: {
		"chat",
		"breathing",
		"journaling",
		"activities",
		"assessments",
	},
	model.TierSanctuary: {
		"chat",
		"breathing",
		"journaling",
		"activities",
		"assessments",
		"sanctuary_rooms",
		"audio_library",
		"stories",
	},
}

// CheckFeatureAccess reports whether a tier may use a feature.
// Admin always passes; unknown tiers and unknown features fail closed.
func CheckFeatureAccess(t model.Tier, feature string) bool {
	if t == model.TierAdmin {
		return true
	}
	for _, f := range featureTable[t] {
		if f == feature {
			return true
		}
	}
	return false
}

// Features returns the feature list visible to a tier. Admin sees the
// sanctuary list, the widest tier-specific set.
func Features(t model.Tier) []string {
	if t == model.TierAdmin {
		t = model.TierSanctuary
	}
	src := featureTable[t]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
