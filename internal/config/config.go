package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
)

const DefaultServerAddress = ":8080"

type cardEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Cost        int            `yaml:"cost"`
	Rarity      game.Rarity    `yaml:"rarity"`
	Attack      *int           `yaml:"attack"`
	Health      *int           `yaml:"health"`
	Abilities   []game.Ability `yaml:"abilities"`
	CardType    string         `yaml:"card_type"`
	ImageURL    string         `yaml:"image_url"`
}

type rawRules struct {
	StartingHealth int  `yaml:"starting_health"`
	MaxMana        int  `yaml:"max_mana"`
	MaxHandSize    int  `yaml:"max_hand_size"`
	MaxBoardSize   int  `yaml:"max_board_size"`
	FirstHandSize  int  `yaml:"first_hand_size"`
	SecondHandSize int  `yaml:"second_hand_size"`
	EnforceTaunt   bool `yaml:"enforce_taunt"`
	DeckSize       int  `yaml:"deck_size"`
	CopyLimit      int  `yaml:"copy_limit"`
	LegendaryLimit int  `yaml:"legendary_copy_limit"`
}

type rawTimings struct {
	BotDelay         time.Duration `yaml:"bot_delay"`
	MatchmakingDelay time.Duration `yaml:"matchmaking_delay"`
	TurnTimeout      time.Duration `yaml:"turn_timeout"`
}

type rawConfig struct {
	Server *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Rules   rawRules      `yaml:"rules"`
	Timings rawTimings    `yaml:"timings"`
	Rewards rewards.Table `yaml:"rewards"`
	Cards   []cardEntry   `yaml:"cards"`
}

// Timings paces the simulated parts of a match.
type Timings struct {
	BotDelay         time.Duration
	MatchmakingDelay time.Duration
	TurnTimeout      time.Duration
}

// LoadedConfig is the game balance and server address.
type LoadedConfig struct {
	ServerAddress string
	Rules         engine.Rules
	DeckSize      int
	CopyLimits    catalog.CopyLimits
	Timings       Timings
	Rewards       rewards.Table
	Cards         []game.CardPrototype
}

func defaultRaw() rawConfig {
	r := engine.DefaultRules()
	t := rewards.DefaultTable()
	t.Thresholds, t.LevelRewards = nil, nil
	return rawConfig{
		Rules: rawRules{
			StartingHealth: r.StartingHealth,
			MaxMana:        r.MaxMana,
			MaxHandSize:    r.MaxHandSize,
			MaxBoardSize:   r.MaxBoardSize,
			FirstHandSize:  r.FirstHandSize,
			SecondHandSize: r.SecondHandSize,
			DeckSize:       8,
			CopyLimit:      catalog.DefaultCopyLimits.NonLegendary,
			LegendaryLimit: catalog.DefaultCopyLimits.Legendary,
		},
		Timings: rawTimings{
			BotDelay:         1500 * time.Millisecond,
			MatchmakingDelay: 3 * time.Second,
			TurnTimeout:      45 * time.Second,
		},
		Rewards: t,
	}
}

// Default returns the built-in balance, as used when no config file is set.
func Default() *LoadedConfig {
	cfg, err := build(defaultRaw(), "")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads the YAML (or JSON) config at path over the built-in
// defaults. An empty path returns the defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	rc := defaultRaw()
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return build(rc, path)
}

func build(rc rawConfig, path string) (*LoadedConfig, error) {
	rules := engine.Rules{
		StartingHealth: rc.Rules.StartingHealth,
		MaxMana:        rc.Rules.MaxMana,
		MaxHandSize:    rc.Rules.MaxHandSize,
		MaxBoardSize:   rc.Rules.MaxBoardSize,
		FirstHandSize:  rc.Rules.FirstHandSize,
		SecondHandSize: rc.Rules.SecondHandSize,
		EnforceTaunt:   rc.Rules.EnforceTaunt,
	}
	if rules.StartingHealth <= 0 || rules.MaxMana <= 0 || rules.MaxHandSize <= 0 || rules.MaxBoardSize <= 0 {
		return nil, fmt.Errorf("config file %s: rules must be positive", path)
	}
	if rules.FirstHandSize < 0 || rules.SecondHandSize < 0 ||
		rules.FirstHandSize > rules.MaxHandSize || rules.SecondHandSize > rules.MaxHandSize {
		return nil, fmt.Errorf("config file %s: opening hands must fit max_hand_size", path)
	}
	if rc.Rules.DeckSize <= 0 {
		return nil, fmt.Errorf("config file %s: deck_size must be positive", path)
	}

	// Cross-entry validation: card ids are unique (case-insensitive) and
	// every ability type is known. Cards override built-ins by id.
	idSet := make(map[string]struct{}, len(rc.Cards))
	overrides := make([]game.CardPrototype, 0, len(rc.Cards))
	for _, c := range rc.Cards {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'id'", path)
		}
		lid := strings.ToLower(strings.TrimSpace(c.ID))
		if _, exists := idSet[lid]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card id '%s'", path, c.ID)
		}
		idSet[lid] = struct{}{}
		for _, a := range c.Abilities {
			if !a.Type.Valid() {
				return nil, fmt.Errorf("config file %s: card '%s' has unknown ability '%s'", path, c.ID, a.Type)
			}
		}
		overrides = append(overrides, game.CardPrototype{
			ID:          strings.TrimSpace(c.ID),
			Name:        c.Name,
			Description: c.Description,
			Cost:        c.Cost,
			Rarity:      c.Rarity,
			Attack:      c.Attack,
			Health:      c.Health,
			Abilities:   c.Abilities,
			CardType:    c.CardType,
			ImageURL:    c.ImageURL,
		})
	}
	cards := catalog.Merge(catalog.DefaultCards(), overrides)
	cat, err := catalog.New(cards)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	table := rc.Rewards
	def := rewards.DefaultTable()
	if table.Thresholds == nil {
		table.Thresholds = def.Thresholds
	}
	if table.LevelRewards == nil {
		table.LevelRewards = def.LevelRewards
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	for lvl, rs := range table.LevelRewards {
		for _, r := range rs {
			if r.Type == game.RewardSpecificCard && !cat.Has(r.CardID) {
				return nil, fmt.Errorf("config file %s: level %d rewards unknown card '%s'", path, lvl, r.CardID)
			}
		}
	}

	addr := DefaultServerAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		ServerAddress: addr,
		Rules:         rules,
		DeckSize:      rc.Rules.DeckSize,
		CopyLimits:    catalog.CopyLimits{NonLegendary: rc.Rules.CopyLimit, Legendary: rc.Rules.LegendaryLimit},
		Timings:       Timings(rc.Timings),
		Rewards:       table,
		Cards:         cards,
	}, nil
}
