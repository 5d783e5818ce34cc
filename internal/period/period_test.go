package period

import (
	"testing"
	"time"

	"github.com/feelfree/ff/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestDailyKey(t *testing.T) {
	got := Key(models.FrequencyDaily, date(2024, time.March, 15))
	if got != "2024-03-15" {
		t.Fatalf("daily key: got %q, want 2024-03-15", got)
	}
}

func TestMonthlyKey(t *testing.T) {
	got := Key(models.FrequencyMonthly, date(2024, time.March, 15))
	if got != "2024-03" {
		t.Fatalf("monthly key: got %q, want 2024-03", got)
	}
}

func TestWeeklyKeyISOBoundaries(t *testing.T) {
	tests := []struct {
		y    int
		m    time.Month
		d    int
		want string
	}{
		// Jan 1 2021 is a Friday in the last ISO week of 2020
		{2021, time.January, 1, "2020-W53"},
		{2021, time.January, 4, "2021-W01"},
		// Dec 31 2024 is a Tuesday belonging to week 1 of 2025
		{2024, time.December, 31, "2025-W01"},
		{2024, time.December, 29, "2024-W52"},
		// mid-year sanity
		{2024, time.July, 4, "2024-W27"},
		// 2020 is a 53-week ISO year
		{2020, time.December, 31, "2020-W53"},
	}
	for _, tt := range tests {
		got := Key(models.FrequencyWeekly, date(tt.y, tt.m, tt.d))
		if got != tt.want {
			t.Errorf("weekly key for %d-%02d-%02d: got %q, want %q", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestWeeklyKeyStableAcrossWeek(t *testing.T) {
	// Mon 2024-01-01 through Sun 2024-01-07 share one ISO week
	want := Key(models.FrequencyWeekly, date(2024, time.January, 1))
	for d := 2; d <= 7; d++ {
		got := Key(models.FrequencyWeekly, date(2024, time.January, d))
		if got != want {
			t.Errorf("day %d: got %q, want %q", d, got, want)
		}
	}
}

func TestKeysSortChronologically(t *testing.T) {
	prev := ""
	for m := time.January; m <= time.December; m++ {
		k := Key(models.FrequencyMonthly, date(2024, m, 1))
		if prev != "" && k <= prev {
			t.Fatalf("monthly keys out of order: %q then %q", prev, k)
		}
		prev = k
	}
}
