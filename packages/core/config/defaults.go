package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		OutputFile: "",
		Query:      "",
		Suite:      "",
		Rate:       Float64Ptr(0), // unlimited
		Bail:       BoolPtr(false),
		Announce:   BoolPtr(false),
		Validate:   BoolPtr(true),
		Summary:    BoolPtr(false),
		Verbose:    BoolPtr(false),
		NoColor:    BoolPtr(false),
	}
}

// isDefault returns true if the config matches defaults
func (c *Config) isDefault() bool {
	defaults := DefaultConfig()
	return c.OutputFile == defaults.OutputFile &&
		c.Query == defaults.Query &&
		c.Suite == defaults.Suite &&
		c.GetRate() == defaults.GetRate() &&
		c.GetBail() == defaults.GetBail() &&
		c.GetAnnounce() == defaults.GetAnnounce() &&
		c.GetValidate() == defaults.GetValidate() &&
		c.GetSummary() == defaults.GetSummary() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
