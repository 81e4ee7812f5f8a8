package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of vocab served per /study session
	BatchSize int
	// Long polling timeout in seconds
	UpdateTimeout int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		BatchSize:     10,
		UpdateTimeout: 60,
	}
}
