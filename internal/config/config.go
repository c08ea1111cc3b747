package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
)

type abilityEntry struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	ReqLevel  int    `json:"req_level"`
	Effect    struct {
		Kind  string `json:"kind"`
		Value int    `json:"value"`
	} `json:"effect"`
}

type rawConfig struct {
	AbilityList []abilityEntry `json:"ability_list"`
	Bands       []string       `json:"bands"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Combat tunables. Zero values fall back to the defaults below.
	BaseHP             int `json:"base_hp"`
	MaxTurns           int `json:"max_turns"`
	TurnSeconds        int `json:"turn_seconds"`
	StalledAfterFactor int `json:"stalled_after_factor"`
}

// Defaults applied when the config file omits a tunable.
const (
	DefaultBaseHP             = 100
	DefaultMaxTurns           = 6
	DefaultTurnSeconds        = 30
	DefaultStalledAfterFactor = 10
)

// LoadedConfig contains the ability catalog to seed, the matchmaking band
// whitelist and the combat tunables.
type LoadedConfig struct {
	Abilities     []game.Ability
	Bands         []string
	ServerAddress string
	BaseHP        int
	MaxTurns      int
	TurnTimeout   time.Duration
	// StalledAfter is how long an active match may sit without activity
	// before the background sweeper expires it as a draw.
	StalledAfter time.Duration
}

// DefaultBand is the band assigned when a queue request omits one.
func (c *LoadedConfig) DefaultBand() string { return c.Bands[0] }

// ValidBand reports whether band is on the configured whitelist.
func (c *LoadedConfig) ValidBand(band string) bool {
	for _, b := range c.Bands {
		if b == band {
			return true
		}
	}
	return false
}

// LoadConfig reads the configuration file at path. It requires the key
// `ability_list` (snake_case) and at least one band.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.AbilityList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: ability_list is empty (provide 'ability_list' array)", path)
	}

	out := make([]game.Ability, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, a := range entries {
		if a.Name == "" {
			return nil, fmt.Errorf("config file %s: ability entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(a.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability name '%s'", path, a.Name)
		}
		nameSet[ln] = struct{}{}
		if !game.ValidArchetype(a.Archetype) {
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown archetype '%s'", path, a.Name, a.Archetype)
		}
		kind := game.EffectKind(strings.ToUpper(a.Effect.Kind))
		if kind != game.EffectAttack && kind != game.EffectHeal {
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown effect kind '%s'", path, a.Name, a.Effect.Kind)
		}
		if a.Effect.Value <= 0 {
			return nil, fmt.Errorf("config file %s: ability '%s' effect value must be > 0", path, a.Name)
		}
		reqLevel := a.ReqLevel
		if reqLevel <= 0 {
			reqLevel = 1
		}
		out = append(out, game.Ability{
			Name:      a.Name,
			Archetype: game.Archetype(a.Archetype),
			ReqLevel:  reqLevel,
			Effect:    game.AbilityEffect{Kind: kind, Value: a.Effect.Value},
		})
	}

	bands := rc.Bands
	if len(bands) == 0 {
		bands = []string{"K2", "G35"}
	}
	for _, band := range bands {
		if strings.TrimSpace(band) == "" {
			return nil, fmt.Errorf("config file %s: empty band in 'bands'", path)
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	baseHP := rc.BaseHP
	if baseHP <= 0 {
		baseHP = DefaultBaseHP
	}
	maxTurns := rc.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	turnSeconds := rc.TurnSeconds
	if turnSeconds <= 0 {
		turnSeconds = DefaultTurnSeconds
	}
	stalledFactor := rc.StalledAfterFactor
	if stalledFactor <= 0 {
		stalledFactor = DefaultStalledAfterFactor
	}

	return &LoadedConfig{
		Abilities:     out,
		Bands:         bands,
		ServerAddress: addr,
		BaseHP:        baseHP,
		MaxTurns:      maxTurns,
		TurnTimeout:   time.Duration(turnSeconds) * time.Second,
		StalledAfter:  time.Duration(turnSeconds*stalledFactor) * time.Second,
	}, nil
}
