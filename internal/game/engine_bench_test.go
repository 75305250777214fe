package game

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/CivSim/internal/game/scenario"
	"github.com/mitchelldurbincs/CivSim/internal/testutil"
)

func BenchmarkEndTurn_ComputerRound(b *testing.B) {
	testCases := []struct {
		name    string
		kind    scenario.Kind
		size    int
		players int
	}{
		{"Flat_40x30_2p", scenario.KindFlat, 40, 2},
		{"Flat_80x50_4p", scenario.KindFlat, 80, 4},
		{"Continents_80x50_4p", scenario.KindContinents, 80, 4},
		{"Continents_120x80_8p", scenario.KindContinents, 120, 8},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				e := createBenchEngine(b, tc.kind, tc.size, tc.players)
				b.StartTimer()

				// Twenty rounds lets cities grow and produce
				for round := 0; round < 20 && !e.IsGameOver(); round++ {
					e.EndTurn()
				}
			}
			b.ReportMetric(float64(tc.players), "players")
		})
	}
}

func BenchmarkPlayerStats(b *testing.B) {
	e := createBenchEngine(b, scenario.KindFlat, 80, 4)
	for round := 0; round < 30; round++ {
		e.EndTurn()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PlayerStats()
	}
}

func createBenchEngine(b *testing.B, kind scenario.Kind, size, players int) *Engine {
	b.Helper()
	e := NewEngine(Config{
		Game:   testutil.GameConfig(),
		Rng:    testutil.NewTestRNG(),
		Logger: testutil.NopLogger(),
	})

	sc := scenario.Flat(size, size*5/8)
	sc.Kind = kind
	sc.Name = string(kind)
	sc.Seed = testutil.Seed

	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	if err := e.InitializeGame(names, sc); err != nil {
		b.Fatalf("initialize: %v", err)
	}
	return e
}
