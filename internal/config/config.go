package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"office-pricing/internal/model"
)

// Config is the on-disk pricing rules shape (YAML): global defaults plus
// per-location sections that overlay them. The loaded value is immutable
// for the duration of a run.
type Config struct {
	Defaults  RulesConfig            `yaml:"defaults"`
	Locations map[string]RulesConfig `yaml:"locations"`
}

// RulesConfig mirrors model.PricingRules field-for-field but with pointer
// fields so per-location sections can overlay only what they set.
type RulesConfig struct {
	StaticTargetBreakevenPct *float64              `yaml:"static_target_breakeven_occupancy"`
	SmartTargetEnabled       *bool                 `yaml:"smart_target_enabled"`
	SmartProfitableRange     *model.SmartRange     `yaml:"smart_target_profitable_range"`
	SmartLosingRange         *model.SmartRange     `yaml:"smart_target_losing_range"`
	MarginOfSafetyMultiplier *float64              `yaml:"margin_of_safety_multiplier"`
	MinPrice                 *float64              `yaml:"min_price"`
	MaxPrice                 *float64              `yaml:"max_price"`
	OccupancyTiers           []model.OccupancyTier `yaml:"occupancy_tiers"`
	TargetPolicy             *string               `yaml:"target_policy"`
}

// Load reads and validates the rules file. Per-location tier mistakes are
// recovered with the default tier set at resolution time; structural
// problems (no locations at all, unparseable YAML) fail here.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without validating it. Useful for
// debugging partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Locations) == 0 {
		return errors.New("no locations configured")
	}
	for name := range c.Locations {
		rules, err := c.RulesFor(name)
		if err != nil {
			return fmt.Errorf("location %q: %w", name, err)
		}
		if err := rules.Validate(); err != nil {
			return fmt.Errorf("location %q: %w", name, err)
		}
	}
	return nil
}

// RulesFor resolves the effective rules for a location: defaults overlaid
// with the location section. Implements the engine's RulesSource.
//
// A malformed tier set degrades to the default tiers with a logged reason;
// an unknown location is a configuration error for that location.
func (c *Config) RulesFor(location string) (model.PricingRules, error) {
	loc, ok := c.Locations[location]
	if !ok {
		return model.PricingRules{}, fmt.Errorf("location %q not configured", location)
	}
	merged := mergeRules(c.Defaults, loc)

	rules := model.PricingRules{
		Location:                 location,
		StaticTargetBreakevenPct: deref(merged.StaticTargetBreakevenPct, 70),
		SmartTargetEnabled:       deref(merged.SmartTargetEnabled, false),
		SmartProfitableRange:     deref(merged.SmartProfitableRange, model.SmartRange{Lo: 3, Hi: 7}),
		SmartLosingRange:         deref(merged.SmartLosingRange, model.SmartRange{Lo: 3, Hi: 10}),
		MarginOfSafetyMultiplier: deref(merged.MarginOfSafetyMultiplier, 1.5),
		MinPrice:                 deref(merged.MinPrice, 0),
		MaxPrice:                 deref(merged.MaxPrice, 0),
		OccupancyTiers:           merged.OccupancyTiers,
		TargetPolicy:             deref(merged.TargetPolicy, "linear"),
	}
	if len(rules.OccupancyTiers) == 0 {
		rules.OccupancyTiers = model.DefaultOccupancyTiers()
	} else if err := model.ValidateTiers(rules.OccupancyTiers); err != nil {
		log.Warn().Str("location", location).Err(err).Msg("malformed occupancy tiers, using default tier set")
		rules.OccupancyTiers = model.DefaultOccupancyTiers()
	}
	return rules, nil
}

// mergeRules overlays set fields from override onto base.
func mergeRules(base, override RulesConfig) RulesConfig {
	out := base
	if override.StaticTargetBreakevenPct != nil {
		out.StaticTargetBreakevenPct = override.StaticTargetBreakevenPct
	}
	if override.SmartTargetEnabled != nil {
		out.SmartTargetEnabled = override.SmartTargetEnabled
	}
	if override.SmartProfitableRange != nil {
		out.SmartProfitableRange = override.SmartProfitableRange
	}
	if override.SmartLosingRange != nil {
		out.SmartLosingRange = override.SmartLosingRange
	}
	if override.MarginOfSafetyMultiplier != nil {
		out.MarginOfSafetyMultiplier = override.MarginOfSafetyMultiplier
	}
	if override.MinPrice != nil {
		out.MinPrice = override.MinPrice
	}
	if override.MaxPrice != nil {
		out.MaxPrice = override.MaxPrice
	}
	if len(override.OccupancyTiers) > 0 {
		out.OccupancyTiers = override.OccupancyTiers
	}
	if override.TargetPolicy != nil {
		out.TargetPolicy = override.TargetPolicy
	}
	return out
}

func deref[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}
