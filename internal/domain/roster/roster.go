// Package roster classifies players into importance tiers for injury
// impact weighting.
//
// The classifier is pure: no I/O, no side effects, and unmatched names
// never fail; they resolve to the default tier.
package roster

import (
	"strings"
)

// Tier is a player importance band.
type Tier string

// Importance tiers, most to least impactful.
const (
	TierAllStar Tier = "all_star"
	TierStarter Tier = "starter"
	TierBench   Tier = "bench"
)

// Default tier multipliers.
const (
	defaultAllStarMultiplier = 2.5
	defaultStarterMultiplier = 1.5
	defaultBenchMultiplier   = 1.0
)

// Classifier maps player names to importance tiers. The registries are
// immutable snapshots; season updates require building a new Classifier.
type Classifier struct {
	allStars    map[string]struct{}
	bench       map[string]struct{}
	aliases     map[string]string
	multipliers map[Tier]float64
}

// New creates a Classifier seeded with the default All-Star registry.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		aliases: make(map[string]string),
		multipliers: map[Tier]float64{
			TierAllStar: defaultAllStarMultiplier,
			TierStarter: defaultStarterMultiplier,
			TierBench:   defaultBenchMultiplier,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.allStars == nil {
		c.allStars = normalizeSet(defaultAllStars)
	}
	if c.bench == nil {
		c.bench = map[string]struct{}{}
	}
	for alias, canonical := range defaultAliases {
		if _, ok := c.aliases[Normalize(alias)]; !ok {
			c.aliases[Normalize(alias)] = Normalize(canonical)
		}
	}

	return c
}

// Normalize folds a player name to its canonical lookup key: lower-cased,
// trimmed, punctuation stripped, whitespace collapsed.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), " ")
}

// resolve maps a normalized name through the alias table.
func (c *Classifier) resolve(key string) string {
	if canonical, ok := c.aliases[key]; ok {
		return canonical
	}
	return key
}

// Classify returns the importance tier and multiplier for a player name.
// Unregistered names default to TierStarter, not TierBench: an unlisted but
// injured rotation player is more likely a starter than a benchwarmer.
func (c *Classifier) Classify(name string) (Tier, float64) {
	key := c.resolve(Normalize(name))

	if _, ok := c.allStars[key]; ok {
		return TierAllStar, c.multipliers[TierAllStar]
	}
	if _, ok := c.bench[key]; ok {
		return TierBench, c.multipliers[TierBench]
	}
	return TierStarter, c.multipliers[TierStarter]
}

// Known reports whether the name matched a registry entry rather than
// falling through to the default tier.
func (c *Classifier) Known(name string) bool {
	key := c.resolve(Normalize(name))
	if _, ok := c.allStars[key]; ok {
		return true
	}
	_, ok := c.bench[key]
	return ok
}

// IsAllStar reports whether the player resolves to the All-Star tier.
func (c *Classifier) IsAllStar(name string) bool {
	tier, _ := c.Classify(name)
	return tier == TierAllStar
}

// Multiplier returns the configured multiplier for a tier.
func (c *Classifier) Multiplier(tier Tier) float64 {
	return c.multipliers[tier]
}

func normalizeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[Normalize(n)] = struct{}{}
	}
	return set
}
