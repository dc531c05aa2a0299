// Command simulate runs self-play games against the built-in city maps and
// prints rounds-to-finish and score distributions. It exercises the full
// rules path (deck cycling, marking, completion, scoring) without any
// network in between, which makes it handy for eyeballing map balance.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"nextstop/game/config"
	"nextstop/game/engine"
)

// gameResult is one finished self-play game.
type gameResult struct {
	Rounds int
	Scores []int
}

// cityStats aggregates results for one city.
type cityStats struct {
	City      string
	Games     int
	MinRounds int
	MaxRounds int
	AvgRounds float64
	MinScore  int
	MaxScore  int
	AvgScore  float64
}

// simulateGame plays one game to completion with every player greedily
// taking the first line that still has an empty window. The opening deck
// is shuffled with the given seed; mid-game reshuffles are time-seeded,
// as in live play.
func simulateGame(cityMap *engine.CityMap, players int, seed uint64) (gameResult, error) {
	conductor := uuid.New()
	g := engine.NewGameState(cityMap.City, conductor)

	deck := engine.NewDeck()
	engine.ShuffleDeck(deck, seed)
	g.Deck = deck

	playerIDs := make([]uuid.UUID, players)
	playerIDs[0] = conductor
	for i := 1; i < players; i++ {
		playerIDs[i] = uuid.New()
	}
	for _, id := range playerIDs {
		g.AddPlayer(id, cityMap)
	}

	// Ordered line list so every run picks lines the same way.
	lineIDs := make([]engine.LineID, 0, len(cityMap.Lines))
	for lineID := range cityMap.Lines {
		lineIDs = append(lineIDs, lineID)
	}
	sort.Slice(lineIDs, func(i, j int) bool { return lineIDs[i] < lineIDs[j] })

	maxRounds := len(cityMap.Lines) * engine.WindowsPerLine * players * 4
	for round := 0; round < maxRounds; round++ {
		if g.GameEnded {
			break
		}
		if _, ok := g.RevealCard(); !ok {
			return gameResult{}, fmt.Errorf("deck exhausted in round %d", g.Round)
		}

		for _, playerID := range playerIDs {
			sheet := g.Players[playerID]
			for _, lineID := range lineIDs {
				if !sheet.CanUseLine(lineID) {
					continue
				}
				if _, err := g.ProcessAction(playerID, engine.Action{
					Kind:   engine.ActionChooseLine,
					LineID: lineID,
				}, cityMap); err != nil {
					return gameResult{}, fmt.Errorf("player action failed: %w", err)
				}
				break
			}
		}

		g.NextRound()
	}

	if !g.GameEnded {
		return gameResult{}, fmt.Errorf("game did not end within %d rounds", maxRounds)
	}

	scores := make([]int, 0, players)
	for _, score := range g.FinalScores(cityMap) {
		scores = append(scores, score)
	}
	sort.Ints(scores)

	return gameResult{Rounds: g.Round, Scores: scores}, nil
}

// simulateCity plays n games on one map, varying the seed per game.
func simulateCity(cityMap *engine.CityMap, games, players int, seed uint64) (cityStats, error) {
	stats := cityStats{City: cityMap.City, Games: games}

	totalRounds := 0
	totalScore := 0
	scoreCount := 0

	for i := 0; i < games; i++ {
		result, err := simulateGame(cityMap, players, seed+uint64(i)*2654435761)
		if err != nil {
			return cityStats{}, fmt.Errorf("game %d on %s: %w", i+1, cityMap.City, err)
		}

		if i == 0 || result.Rounds < stats.MinRounds {
			stats.MinRounds = result.Rounds
		}
		if result.Rounds > stats.MaxRounds {
			stats.MaxRounds = result.Rounds
		}
		totalRounds += result.Rounds

		for _, score := range result.Scores {
			if scoreCount == 0 || score < stats.MinScore {
				stats.MinScore = score
			}
			if scoreCount == 0 || score > stats.MaxScore {
				stats.MaxScore = score
			}
			totalScore += score
			scoreCount++
		}
	}

	stats.AvgRounds = float64(totalRounds) / float64(games)
	stats.AvgScore = float64(totalScore) / float64(scoreCount)
	return stats, nil
}

func main() {
	city := flag.String("city", "", "Simulate a single city (default: all built-ins)")
	games := flag.Int("games", 100, "Games per city")
	players := flag.Int("players", 2, "Players per game")
	seed := flag.Uint64("seed", 1, "Base deck seed")
	configDir := flag.String("config-dir", "configs", "Directory with extra city map files")
	flag.Parse()

	manager, err := config.NewManager(*configDir)
	if err != nil {
		fmt.Printf("Failed to load city maps: %v\n", err)
		os.Exit(1)
	}

	var cities []string
	if *city != "" {
		cities = []string{*city}
	} else {
		for _, info := range manager.ListCities() {
			cities = append(cities, info.City)
		}
	}

	fmt.Printf("Simulating %d game(s) per city, %d player(s), base seed %d\n\n", *games, *players, *seed)
	fmt.Printf("%-12s %8s %18s %18s\n", "city", "games", "rounds min/avg/max", "score min/avg/max")

	for _, name := range cities {
		cityMap, err := manager.CityMap(name)
		if err != nil {
			fmt.Printf("Unknown city %q: %v\n", name, err)
			os.Exit(1)
		}

		stats, err := simulateCity(cityMap, *games, *players, *seed)
		if err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%-12s %8d %7d/%5.1f/%4d %7d/%5.1f/%4d\n",
			stats.City, stats.Games,
			stats.MinRounds, stats.AvgRounds, stats.MaxRounds,
			stats.MinScore, stats.AvgScore, stats.MaxScore)
	}
}
