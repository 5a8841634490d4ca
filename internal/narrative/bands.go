package narrative

// Dimension bands. The thresholds are shared with downstream report
// consumers and must not drift.
const (
	BandExceptional = "exceptional"
	BandStrong      = "strong"
	BandDeveloping  = "developing"
	BandCritical    = "critical"
)

// Additional overall bands; the overall scale has six steps.
const (
	BandProficient = "proficient"
	BandEmerging   = "emerging"
)

// DimensionBand classifies a dimension score on the four-step scale.
func DimensionBand(score float64) string {
	switch {
	case score >= 85:
		return BandExceptional
	case score >= 70:
		return BandStrong
	case score >= 55:
		return BandDeveloping
	default:
		return BandCritical
	}
}

// OverallBand classifies an overall score on the six-step scale used by the
// report header.
func OverallBand(score float64) string {
	switch {
	case score >= 85:
		return BandExceptional
	case score >= 75:
		return BandStrong
	case score >= 65:
		return BandProficient
	case score >= 55:
		return BandDeveloping
	case score >= 50:
		return BandEmerging
	default:
		return BandCritical
	}
}

// strengthCap is the maximum number of strengths kept for a score.
func strengthCap(score float64) int {
	switch {
	case score >= 90:
		return 5
	case score >= 80:
		return 4
	case score >= 60:
		return 3
	default:
		return 2
	}
}

// improvementCap gives weaker bands more room because more needs fixing.
func improvementCap(band string) int {
	switch band {
	case BandExceptional:
		return 3
	case BandStrong:
		return 4
	default:
		return 5
	}
}

func isHighBand(band string) bool {
	return band == BandExceptional || band == BandStrong
}
