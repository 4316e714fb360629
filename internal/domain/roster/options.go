// Package roster classifies players into importance tiers.
package roster

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithAllStars replaces the All-Star registry. Names are normalized on the
// way in; the built-in list is used when this option is absent.
func WithAllStars(names []string) Option {
	return func(c *Classifier) {
		c.allStars = normalizeSet(names)
	}
}

// WithBenchPlayers seeds an optional bench registry for players whose
// absence should be under-weighted relative to the starter default.
func WithBenchPlayers(names []string) Option {
	return func(c *Classifier) {
		c.bench = normalizeSet(names)
	}
}

// WithAliases adds alias -> canonical name mappings on top of the built-in
// table. Keys and values are normalized.
func WithAliases(aliases map[string]string) Option {
	return func(c *Classifier) {
		for alias, canonical := range aliases {
			c.aliases[Normalize(alias)] = Normalize(canonical)
		}
	}
}

// WithMultipliers overrides tier multipliers. Non-positive values are ignored.
func WithMultipliers(multipliers map[Tier]float64) Option {
	return func(c *Classifier) {
		for tier, m := range multipliers {
			if m > 0 {
				c.multipliers[tier] = m
			}
		}
	}
}
