package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

func newTestDirector(seed int64) *SpawnDirector {
	cfg := DefaultConfig()
	return NewSpawnDirector(rand.New(rand.NewSource(seed)), cfg.Waves, cfg.Combat.EnemyRadius, zerolog.Nop())
}

func TestSpawnWaveRespectsExclusionRadius(t *testing.T) {
	tests := []struct {
		name    string
		field   PlayField
		minDist float64
	}{
		{"desktop", Recompute(1920, 1080, false), 200},
		{"touch vertical", Recompute(390, 844, true), 75},
		{"touch landscape", Recompute(800, 450, true), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDirector(42)
			player := tt.field.Center()
			res := d.SpawnWave(tt.field, player, 20)

			if len(res.Enemies) > 20 {
				t.Fatalf("spawned %d, asked for 20", len(res.Enemies))
			}
			if res.Attempts > 100 {
				t.Fatalf("attempts = %d, budget is 100", res.Attempts)
			}
			for _, e := range res.Enemies {
				if dist := e.Pos.DistanceTo(player); dist <= tt.minDist {
					t.Errorf("enemy at %+v is %v from player, want > %v", e.Pos, dist, tt.minDist)
				}
				if !e.Alive {
					t.Error("spawned enemy is not alive")
				}
				outside := e.Pos.X < 0 || e.Pos.Y < 0 || e.Pos.X > tt.field.Width || e.Pos.Y > tt.field.Height
				if !outside {
					t.Errorf("enemy at %+v spawned inside the field", e.Pos)
				}
			}
			if len(res.Enemies) < 20 && res.Attempts != 100 {
				t.Errorf("short wave (%d) without exhausting the budget (%d attempts)", len(res.Enemies), res.Attempts)
			}
		})
	}
}

func TestSpawnWaveDeterministicPerSeed(t *testing.T) {
	f := Recompute(1920, 1080, false)
	a := newTestDirector(7).SpawnWave(f, f.Center(), 10)
	b := newTestDirector(7).SpawnWave(f, f.Center(), 10)

	if len(a.Enemies) != len(b.Enemies) || a.Attempts != b.Attempts {
		t.Fatalf("results differ: %d/%d vs %d/%d", len(a.Enemies), a.Attempts, len(b.Enemies), b.Attempts)
	}
	for i := range a.Enemies {
		if a.Enemies[i].Pos != b.Enemies[i].Pos {
			t.Errorf("enemy %d: %+v vs %+v", i, a.Enemies[i].Pos, b.Enemies[i].Pos)
		}
	}
}

func TestSpawnWaveInfeasibleIsBounded(t *testing.T) {
	// Exclusion radius of 2000 on a 100x100 field cannot be met anywhere
	f := PlayField{Width: 100, Height: 100, UIScale: 10, AssetScale: 1}
	res := newTestDirector(1).SpawnWave(f, f.Center(), 10)

	if len(res.Enemies) != 0 {
		t.Errorf("spawned %d enemies on an infeasible field", len(res.Enemies))
	}
	if res.Attempts != 50 {
		t.Errorf("attempts = %d, want the full budget of 50", res.Attempts)
	}
}

func TestSpawnWaveZeroCount(t *testing.T) {
	f := Recompute(1920, 1080, false)
	res := newTestDirector(1).SpawnWave(f, f.Center(), 0)
	if len(res.Enemies) != 0 || res.Attempts != 0 {
		t.Errorf("got %d enemies in %d attempts", len(res.Enemies), res.Attempts)
	}
}

func TestSpawnVerticalFavoursTopAndBottom(t *testing.T) {
	f := Recompute(390, 844, true)
	// A far-away player accepts every candidate so the edge mix is visible
	res := newTestDirector(99).SpawnWave(f, Vec2{X: -1e6, Y: -1e6}, 4000)

	var topBottom, sides int
	for _, e := range res.Enemies {
		switch {
		case e.Pos.Y < 0 || e.Pos.Y > f.Height:
			topBottom++
		default:
			sides++
		}
	}
	share := float64(topBottom) / float64(topBottom+sides)
	// Expected share is 0.7275
	if share < 0.68 || share > 0.78 {
		t.Errorf("top/bottom share = %.3f, want about 0.73", share)
	}
}

func TestSpawnLandscapeIsUniform(t *testing.T) {
	f := Recompute(1920, 1080, false)
	res := newTestDirector(5).SpawnWave(f, Vec2{X: -1e6, Y: -1e6}, 4000)

	counts := map[string]int{}
	for _, e := range res.Enemies {
		switch {
		case e.Pos.Y < 0:
			counts["top"]++
		case e.Pos.Y > f.Height:
			counts["bottom"]++
		case e.Pos.X > f.Width:
			counts["right"]++
		default:
			counts["left"]++
		}
	}
	for side, n := range counts {
		if n < 850 || n > 1150 {
			t.Errorf("%s = %d of 4000, want about 1000", side, n)
		}
	}
	if len(counts) != 4 {
		t.Errorf("edges used = %v", counts)
	}
}
