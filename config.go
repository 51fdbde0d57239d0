package tabstrip

// DefaultMoreLabel is the text of the overflow toggle.
const DefaultMoreLabel = "More ▾"

// Config holds the tunables of a strip. It carries mapstructure tags so a
// host application can decode it straight out of its own configuration.
type Config struct {
	// ReservedWidth is the number of cells kept free for the overflow toggle
	// while fitting tabs. Zero means measure the rendered toggle instead of
	// trusting a fixed estimate.
	ReservedWidth int `mapstructure:"reserved_width"`

	// MoreLabel replaces DefaultMoreLabel when set.
	MoreLabel string `mapstructure:"more_label"`
}

func (c Config) moreLabel() string {
	if c.MoreLabel == "" {
		return DefaultMoreLabel
	}
	return c.MoreLabel
}
