package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"chatpdf/internal/domain"
)

// Database holds the connection settings of the Postgres instance that backs
// the vector store.
type Database struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Config is an immutable snapshot of the process environment, taken once at
// startup and passed to constructors. Nothing reads environment variables
// after this point.
type Config struct {
	Database     Database
	GoogleAPIKey string
	OpenAIAPIKey string
}

// FromEnv reads the process environment into a Config. It performs no
// validation; call Validate before using the snapshot.
func FromEnv() *Config {
	return &Config{
		Database: Database{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			Name:     os.Getenv("POSTGRES_DB"),
		},
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

// ConnString composes a Postgres connection URL from the snapshot. It does
// not check completeness; with missing fields the result is unusable
// downstream. Validate is the single place that enforces presence.
func (c *Config) ConnString() string {
	d := c.Database
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.User, d.Password, d.Host, d.Port, d.Name)
}

// MissingEnvError lists required environment variables that are unset, in
// their defined order.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "missing environment variables: " + strings.Join(e.Vars, ", ")
}

// Validate checks that every database variable is present, and that the API
// key of the selected provider is set. Database variables are reported
// together; the provider key is checked only after the database set is
// complete, and each provider's key is independent of the other's.
func (c *Config) Validate(p domain.Provider) error {
	vars := []struct {
		name  string
		value string
	}{
		{"POSTGRES_USER", c.Database.User},
		{"POSTGRES_PASSWORD", c.Database.Password},
		{"POSTGRES_HOST", c.Database.Host},
		{"POSTGRES_PORT", c.Database.Port},
		{"POSTGRES_DB", c.Database.Name},
	}
	var missing []string
	for _, v := range vars {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}

	switch p {
	case domain.ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return &MissingEnvError{Vars: []string{"GOOGLE_API_KEY"}}
		}
	case domain.ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &MissingEnvError{Vars: []string{"OPENAI_API_KEY"}}
		}
	}
	return nil
}

// File holds optional defaults read from a YAML config file. Flags given on
// the command line take precedence over file values; file values take
// precedence over built-in defaults.
type File struct {
	Provider   string `yaml:"provider"`
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	TopK       int    `yaml:"top_k"`
	Verbose    bool   `yaml:"verbose"`
}

// LoadFile reads defaults from the YAML file at path. A missing file is not
// an error; it yields empty defaults.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}
