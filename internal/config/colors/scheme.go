package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset" koanf:"preset"`

	// Primary accent color (used for headers, ids and highlights)
	Accent string `yaml:"accent" koanf:"accent"`

	// Semantic colors
	Success string `yaml:"success" koanf:"success"` // Green - created, completed
	Warning string `yaml:"warning" koanf:"warning"` // Yellow - due soon, overdue
	Danger  string `yaml:"danger" koanf:"danger"`   // Red - trash, purge

	// UI element colors
	Border string `yaml:"border" koanf:"border"`

	// Text colors
	Title  string `yaml:"title" koanf:"title"`
	Subtle string `yaml:"subtle" koanf:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" koanf:"normal"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Success, preset.Success)
	fill(&c.Warning, preset.Warning)
	fill(&c.Danger, preset.Danger)
	fill(&c.Border, preset.Border)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
}

// MergeFrom overrides colors with the non-empty values of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.Success, other.Success)
	merge(&c.Warning, other.Warning)
	merge(&c.Danger, other.Danger)
	merge(&c.Border, other.Border)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
}
