package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Pronoun names a group of pronouns used to annotate phrase hints.
type Pronoun struct {
	Name      string `mapstructure:"name" validate:"required"`
	Instances string `mapstructure:"instances" validate:"required"` // ", " separated
}

// VocabConfig drives the vocabulary export import.
type VocabConfig struct {
	VocabJSONFile           string    `mapstructure:"vocab_json_file_name"`
	PluralSuffix            string    `mapstructure:"plural_suffix"`
	NonVerbMatchingSuffixes string    `mapstructure:"non_verb_matching_suffixes"` // comma separated
	Pronouns                []Pronoun `mapstructure:"pronouns" validate:"dive"`
}

// TranslationsConfig describes one file of learning to first language pairs.
// Files are read line by line with either a splitter or a pair of regular
// expressions; the regex form is used when both expressions are set.
type TranslationsConfig struct {
	FileName      string `mapstructure:"file_name" validate:"required"`
	HeaderLines   int    `mapstructure:"header_lines" validate:"gte=0"`
	Delimiter     string `mapstructure:"delimiter"` // empty splits on whitespace
	LearningIndex int    `mapstructure:"learning_index" validate:"gte=0"`
	FirstIndex    int    `mapstructure:"first_index" validate:"gte=0"`
	LearningRegex string `mapstructure:"learning_regex"`
	FirstRegex    string `mapstructure:"first_regex"`
}

// UsesPattern reports whether the file is read with regular expressions.
func (c TranslationsConfig) UsesPattern() bool {
	return c.LearningRegex != "" && c.FirstRegex != ""
}

// LoadVocabConfig reads a vocab_config.json style file.
func LoadVocabConfig(path string) (*VocabConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read vocab config %s: %w", path, err)
	}

	var cfg VocabConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode vocab config %s: %w", path, err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid vocab config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadTranslationsConfig reads the "translations" list of a translations_config.json style file.
func LoadTranslationsConfig(path string) ([]TranslationsConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read translations config %s: %w", path, err)
	}

	var wrapper struct {
		Translations []TranslationsConfig `mapstructure:"translations" validate:"dive"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode translations config %s: %w", path, err)
	}
	if err := validator.New().Struct(&wrapper); err != nil {
		return nil, fmt.Errorf("invalid translations config %s: %w", path, err)
	}
	return wrapper.Translations, nil
}
