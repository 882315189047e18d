package calculator

import (
	"testing"
	"time"
)

func TestExclusionPolicy_Validate(t *testing.T) {
	t.Parallel()

	valid := ExclusionPolicy{
		{From: "2024-01", To: "2024-12"},
		{From: "2025-10"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid policy rejected: %v", err)
	}

	for _, p := range []ExclusionPolicy{
		{{From: "2025-13"}},
		{{From: "not-a-month"}},
		{{From: "2025-06", To: "2025-05"}},
		{{From: "2025-01", To: "garbage"}},
	} {
		if err := p.Validate(); err == nil {
			t.Fatalf("policy %+v unexpectedly valid", p)
		}
	}
}

func TestExclusionPolicy_Excludes(t *testing.T) {
	t.Parallel()

	p := ExclusionPolicy{
		{From: "2024-01", To: "2024-12"},
		{From: "2025-10"},
	}

	cases := []struct {
		year  int
		month time.Month
		want  bool
	}{
		{2023, time.December, false},
		{2024, time.January, true},
		{2024, time.June, true},
		{2024, time.December, true},
		{2025, time.January, false},
		{2025, time.September, false},
		{2025, time.October, true},
		{2026, time.March, true},
	}
	for _, c := range cases {
		if got := p.Excludes(c.year, c.month); got != c.want {
			t.Fatalf("Excludes(%d, %v) = %v, want %v", c.year, c.month, got, c.want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	t.Parallel()

	if got := MonthKey(date(2025, time.March, 20)); got != "2025-03" {
		t.Fatalf("got %q", got)
	}
}
