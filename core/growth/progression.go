package growth

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxLevel caps ComputeLevel for totals too large to count in levels.
const MaxLevel = math.MaxInt32

var (
	levelStep    = decimal.NewFromInt(20)
	maxLevelStep = decimal.NewFromInt(MaxLevel - 1)
	matchingRate = decimal.New(5, -2) // 5%

	// lower bounds of each stage, highest first
	stageThresholds = []struct {
		min   decimal.Decimal
		stage Stage
	}{
		{decimal.NewFromInt(50), StageBlooming},
		{decimal.NewFromInt(30), StageMature},
		{decimal.NewFromInt(15), StageGrowing},
		{decimal.NewFromInt(5), StageSprout},
	}
)

// ComputeLevel returns floor(totalSavings / 20) + 1, at most MaxLevel. Levels start at 1.
func ComputeLevel(totalSavings decimal.Decimal) int {
	steps := totalSavings.Div(levelStep).Floor()
	if steps.GreaterThanOrEqual(maxLevelStep) {
		return MaxLevel
	}
	if !steps.IsPositive() {
		return 1
	}
	return int(steps.IntPart()) + 1
}

// ComputeMatchingBonus returns the 5% matching credited alongside a deposit.
func ComputeMatchingBonus(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(matchingRate)
}

// StageFor maps an accumulated value to its growth stage:
// seed [0,5), sprout [5,15), growing [15,30), mature [30,50), blooming [50,∞).
func StageFor(value decimal.Decimal) Stage {
	for _, th := range stageThresholds {
		if value.GreaterThanOrEqual(th.min) {
			return th.stage
		}
	}
	return StageSeed
}

// SumDeposits returns the total amount of the given deposits.
func SumDeposits(deposits []DepositEvent) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deposits {
		total = total.Add(d.Amount)
	}
	return total
}
