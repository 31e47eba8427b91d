package hardware

import (
	"regexp"
	"strings"

	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
)

// Tier is the budget band a setup is priced against.
type Tier string

const (
	TierMinimum      Tier = "minimum"
	TierIntermediate Tier = "intermediate"
	TierPremium      Tier = "premium"
)

// Difficulty is how demanding a game reads from its metadata text.
type Difficulty string

const (
	DifficultyStandard Difficulty = "standard"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHeavy    Difficulty = "heavy"
)

const (
	tierIntermediateFloor = 5000
	tierPremiumFloor      = 10000
)

// Assumed budgets used when a build request carries no explicit budget. Each
// lands inside the tier the difficulty calls for, so tier always derives from
// budget.
const (
	assumedBudgetStandard = 4000
	assumedBudgetModerate = 8000
	assumedBudgetHeavy    = 12000
)

var (
	heavyTextRe    = regexp.MustCompile(`ultra|very high|4k|1440p|ray tracing|rtx 4090|rtx 3090`)
	moderateTextRe = regexp.MustCompile(`high|1080p|very good|gtx|rtx 3060`)
)

// ClassifyBudget maps a declared budget to its tier. Fixed thresholds: below
// 5000 is minimum, below 10000 is intermediate, everything else premium.
func ClassifyBudget(budget float64) (Tier, error) {
	if budget <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "budget must be greater than zero")
	}
	switch {
	case budget < tierIntermediateFloor:
		return TierMinimum, nil
	case budget < tierPremiumFloor:
		return TierIntermediate, nil
	default:
		return TierPremium, nil
	}
}

// ClassifyDifficulty reads keyword hints out of the game's name plus
// description. Heavy wins over moderate when both match.
func ClassifyDifficulty(text string) Difficulty {
	lowered := strings.ToLower(text)
	switch {
	case heavyTextRe.MatchString(lowered):
		return DifficultyHeavy
	case moderateTextRe.MatchString(lowered):
		return DifficultyModerate
	default:
		return DifficultyStandard
	}
}

// AssumedBudget picks the stand-in budget for builds that declare none.
func AssumedBudget(difficulty Difficulty) float64 {
	switch difficulty {
	case DifficultyHeavy:
		return assumedBudgetHeavy
	case DifficultyModerate:
		return assumedBudgetModerate
	default:
		return assumedBudgetStandard
	}
}
