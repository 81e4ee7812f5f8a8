package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "data/palabras.db", cfg.Database.DSN)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Study.BatchSize)
	assert.Equal(t, 8, cfg.Reminder.StartHour)
	assert.Equal(t, 22, cfg.Reminder.EndHour)
	assert.Empty(t, cfg.Reminder.Users)
	assert.Empty(t, cfg.Telegram.Token)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PALABRAS_DATABASE_DRIVER", "postgres")
	t.Setenv("PALABRAS_DATABASE_DSN", "postgres://palabras@localhost/palabras?sslmode=disable")
	t.Setenv("PALABRAS_SERVER_ADDR", "127.0.0.1:8080")
	t.Setenv("PALABRAS_LOG_LEVEL", "ignored")
	t.Setenv("PALABRAS_SERVER_LOG_LEVEL", "debug")
	t.Setenv("PALABRAS_STUDY_BATCH_SIZE", "25")
	t.Setenv("PALABRAS_REMINDER_USERS", "1,2,3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 25, cfg.Study.BatchSize)
	assert.Equal(t, []int64{1, 2, 3}, cfg.Reminder.Users)
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	path := writeFile(t, "palabras.json", `{
		"database": {"dsn": "from-file.db"},
		"study": {"batch_size": 7},
		"reminder": {"start_hour": 9, "end_hour": 20}
	}`)
	t.Setenv("PALABRAS_STUDY_BATCH_SIZE", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file.db", cfg.Database.DSN)
	assert.Equal(t, 12, cfg.Study.BatchSize)
	assert.Equal(t, 9, cfg.Reminder.StartHour)
	assert.Equal(t, 20, cfg.Reminder.EndHour)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "PALABRAS_DATABASE_DRIVER", "mysql"},
		{"bad address", "PALABRAS_SERVER_ADDR", "not an address"},
		{"zero batch", "PALABRAS_STUDY_BATCH_SIZE", "0"},
		{"hour out of range", "PALABRAS_REMINDER_END_HOUR", "24"},
		{"end before start", "PALABRAS_REMINDER_END_HOUR", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadVocabConfig(t *testing.T) {
	path := writeFile(t, "vocab_config.json", `{
		"vocab_json_file_name": "data/duo_vocab.json",
		"plural_suffix": "s",
		"non_verb_matching_suffixes": "o,a,os,as,e,es",
		"pronouns": [
			{"name": "reflexive pronoun", "instances": "me, te, se, nos, os"},
			{"name": "subject pronoun", "instances": "yo, tú, él, ella"}
		]
	}`)

	cfg, err := LoadVocabConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "data/duo_vocab.json", cfg.VocabJSONFile)
	assert.Equal(t, "s", cfg.PluralSuffix)
	assert.Equal(t, "o,a,os,as,e,es", cfg.NonVerbMatchingSuffixes)
	require.Len(t, cfg.Pronouns, 2)
	assert.Equal(t, "reflexive pronoun", cfg.Pronouns[0].Name)
	assert.Equal(t, "yo, tú, él, ella", cfg.Pronouns[1].Instances)

	bad := writeFile(t, "bad.json", `{"pronouns": [{"name": "", "instances": "yo"}]}`)
	_, err = LoadVocabConfig(bad)
	assert.Error(t, err)
}

func TestLoadTranslationsConfig(t *testing.T) {
	path := writeFile(t, "translations_config.json", `{
		"translations": [
			{"file_name": "data/short-es-en.xml", "header_lines": 4,
			 "learning_regex": "<c>([^<]+)</c>", "first_regex": "<d>([^<]+)</d>"},
			{"file_name": "data/llm_import.csv", "header_lines": 1, "delimiter": ",",
			 "learning_index": 0, "first_index": 4}
		]
	}`)

	list, err := LoadTranslationsConfig(path)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].UsesPattern())
	assert.Equal(t, 4, list[0].HeaderLines)
	assert.False(t, list[1].UsesPattern())
	assert.Equal(t, ",", list[1].Delimiter)
	assert.Equal(t, 4, list[1].FirstIndex)
}
