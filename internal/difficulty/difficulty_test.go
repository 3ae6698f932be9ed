package difficulty

import (
	"testing"

	"github.com/abhisek/lingua/internal/catalog"
)

func TestAdapt_Table(t *testing.T) {
	tests := []struct {
		completed int
		base      catalog.Difficulty
		want      catalog.Difficulty
		bump      int
		richness  int
	}{
		{0, catalog.Beginner, catalog.Beginner, 0, 0},
		{4, catalog.Beginner, catalog.Beginner, 0, 0},
		{5, catalog.Beginner, catalog.Beginner, 0, 1},
		{7, catalog.Intermediate, catalog.Intermediate, 0, 1},
		{8, catalog.Intermediate, catalog.Advanced, 1, 1},
		{10, catalog.Beginner, catalog.Intermediate, 1, 2},
		{15, catalog.Beginner, catalog.Advanced, 2, 3},
		{16, catalog.Beginner, catalog.Advanced, 2, 3},
		{16, catalog.Expert, catalog.Professional, 2, 3},
		{40, catalog.Professional, catalog.Professional, 2, 3},
		{-3, catalog.Advanced, catalog.Advanced, 0, 0},
	}

	for _, tt := range tests {
		got := Adapt(tt.completed, tt.base)
		if got.Effective != tt.want {
			t.Errorf("Adapt(%d, %s).Effective = %s, want %s", tt.completed, tt.base, got.Effective, tt.want)
		}
		if got.LevelBump != tt.bump {
			t.Errorf("Adapt(%d, %s).LevelBump = %d, want %d", tt.completed, tt.base, got.LevelBump, tt.bump)
		}
		if got.RichnessBoost != tt.richness {
			t.Errorf("Adapt(%d, %s).RichnessBoost = %d, want %d", tt.completed, tt.base, got.RichnessBoost, tt.richness)
		}
		if got.Base != tt.base {
			t.Errorf("Adapt(%d, %s).Base = %s", tt.completed, tt.base, got.Base)
		}
	}
}

func TestAdapt_MonotonicAndBounded(t *testing.T) {
	for _, base := range catalog.DifficultyOrder() {
		prev := Adapt(0, base).Effective
		for n := 1; n <= 50; n++ {
			cur := Adapt(n, base).Effective
			if cur < prev {
				t.Fatalf("base %s: effective difficulty decreased at n=%d (%s -> %s)", base, n, prev, cur)
			}
			if cur > catalog.Professional {
				t.Fatalf("base %s: effective difficulty %d exceeds top of scale", base, cur)
			}
			prev = cur
		}
	}
}

func TestRichnessBoost_Capped(t *testing.T) {
	for n := 0; n < 100; n++ {
		if b := RichnessBoost(n); b < 0 || b > 3 {
			t.Fatalf("RichnessBoost(%d) = %d out of [0,3]", n, b)
		}
	}
}
