// Command botmatch plays bot-vs-bot matches offline and prints the battle
// log. Useful for eyeballing balance changes in a config file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/SASASDAa/tgsg-sub000/internal/bot"
	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/config"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

// maxTurns stops a match that neither side can finish.
const maxTurns = 200

var errStalled = errors.New("match did not finish")

func main() {
	configPath := flag.String("config", "", "balance config file (defaults built in)")
	games := flag.Int("games", 1, "number of matches to play")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	quiet := flag.Bool("quiet", false, "print only the summary")
	flag.Parse()

	logging.SetLevel("warn")
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		color.Red("config: %v", err)
		os.Exit(1)
	}
	cat, err := catalog.New(cfg.Cards)
	if err != nil {
		color.Red("catalog: %v", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	e := engine.New(cat, cfg.Rules)

	wins := map[string]int{}
	totalTurns := 0
	for i := 0; i < *games; i++ {
		g, err := simulate(e, rng, cfg.DeckSize, cfg.CopyLimits, fmt.Sprintf("sim_%d", i+1))
		if err != nil && !errors.Is(err, errStalled) {
			color.Red("match %d: %v", i+1, err)
			os.Exit(1)
		}
		if !*quiet {
			printLog(g)
		}
		if g.IsGameOver {
			wins[g.Winner]++
		} else {
			wins["draw"]++
		}
		totalTurns += g.TurnNumber
	}

	color.Cyan("seed %d, %d matches", *seed, *games)
	color.Green("first seat won %d, second seat won %d, unfinished %d", wins["alpha"], wins["omega"], wins["draw"])
	if *games > 0 {
		fmt.Printf("average length %.1f turns\n", float64(totalTurns)/float64(*games))
	}
}

// simulate plays one match between two bot-driven seats.
func simulate(e *engine.Engine, rng *rand.Rand, deckSize int, limits catalog.CopyLimits, matchID string) (*game.GameState, error) {
	cat := e.Catalog()
	g, err := e.NewMatch(rng, engine.MatchSetup{
		MatchID:      matchID,
		First:        engine.SeatSetup{SeatInfo: engine.SeatInfo{ID: "alpha", Name: "Alpha"}, DeckIDs: cat.RandomDeck(rng, deckSize, limits)},
		Second:       engine.SeatSetup{SeatInfo: engine.SeatInfo{ID: "omega", Name: "Omega"}, DeckIDs: cat.RandomDeck(rng, deckSize, limits)},
		OpponentType: game.OpponentBot,
	})
	if err != nil {
		return nil, err
	}
	for !g.IsGameOver {
		if g.TurnNumber > maxTurns {
			return g, errStalled
		}
		g, err = bot.TakeTurn(e, g, g.CurrentTurn, rng, nil)
		if err != nil {
			return g, err
		}
	}
	return g, nil
}

func printLog(g *game.GameState) {
	first := color.New(color.FgCyan)
	second := color.New(color.FgYellow)
	for _, line := range g.Log {
		switch {
		case strings.Contains(line, " wins"):
			color.Green("%s", line)
		case strings.Contains(line, "Burnout"):
			color.Red("%s", line)
		case strings.HasPrefix(line, g.Player.Name):
			first.Println(line)
		case strings.HasPrefix(line, g.Opponent.Name):
			second.Println(line)
		default:
			fmt.Println(line)
		}
	}
	fmt.Println()
}
