package growth

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		total string
		want  int
	}{
		{total: "0", want: 1},
		{total: "0.01", want: 1},
		{total: "19.99", want: 1},
		{total: "20", want: 2},
		{total: "39.99", want: 2},
		{total: "45.50", want: 3},
		{total: "47", want: 3},
		{total: "60", want: 4},
		{total: "1000", want: 51},
		{total: "1000000000000000000000", want: MaxLevel},
		{total: "1e40", want: MaxLevel},
	}
	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			if got := ComputeLevel(dec(tt.total)); got != tt.want {
				t.Errorf("ComputeLevel(%s) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestComputeLevel_monotonic(t *testing.T) {
	prev := ComputeLevel(decimal.Zero)
	step := dec("0.25")
	for total := decimal.Zero; total.LessThan(dec("250")); total = total.Add(step) {
		lvl := ComputeLevel(total)
		if lvl < prev {
			t.Fatalf("ComputeLevel(%s) = %d, decreased from %d", total, lvl, prev)
		}
		prev = lvl
	}
}

func TestComputeMatchingBonus(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "0"},
		{amount: "5", want: "0.25"},
		{amount: "10", want: "0.5"},
		{amount: "45.50", want: "2.275"},
		{amount: "0.1", want: "0.005"},
		{amount: "123456.78", want: "6172.839"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := ComputeMatchingBonus(dec(tt.amount)); !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeMatchingBonus(%s) = %s, want %s", tt.amount, got, tt.want)
			}
		})
	}
}

func TestStageFor(t *testing.T) {
	tests := []struct {
		value string
		want  Stage
	}{
		{value: "0", want: StageSeed},
		{value: "4.99", want: StageSeed},
		{value: "5", want: StageSprout},
		{value: "14.99", want: StageSprout},
		{value: "15", want: StageGrowing},
		{value: "29.99", want: StageGrowing},
		{value: "30", want: StageMature},
		{value: "35", want: StageMature},
		{value: "49.99", want: StageMature},
		{value: "50", want: StageBlooming},
		{value: "5000", want: StageBlooming},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := StageFor(dec(tt.value))
			if got != tt.want {
				t.Errorf("StageFor(%s) = %s, want %s", tt.value, got, tt.want)
			}
			if again := StageFor(dec(tt.value)); again != got {
				t.Errorf("StageFor(%s) not idempotent: %s then %s", tt.value, got, again)
			}
		})
	}
}
