package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/endosim/simcheck/internal/schema"
)

// Config holds all runtime configuration for a simcheck run.
type Config struct {
	DSN           string
	LogFormat     string // "text" or "json"
	Kind          string // file kind of FilePath
	FilePath      string
	Delimiter     string // see ParseDelimiter
	PrintWarnings bool
	Record        bool // store outcomes in the audit database

	Inputs  []Input
	Schemas map[string][]schema.Field // declared on top of the built-in schemas
}

// Input is one file to validate.
type Input struct {
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter,omitempty"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	PrintWarnings *bool                     `yaml:"print_warnings"`
	Inputs        []Input                   `yaml:"inputs"`
	Schemas       map[string][]schema.Field `yaml:"schemas"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Relative input paths are resolved against the config file's directory.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.PrintWarnings != nil {
		c.PrintWarnings = *yc.PrintWarnings
	}
	base := filepath.Dir(path)
	for _, in := range yc.Inputs {
		if in.Path != "" && !filepath.IsAbs(in.Path) {
			in.Path = filepath.Join(base, in.Path)
		}
		c.Inputs = append(c.Inputs, in)
	}
	if len(yc.Schemas) > 0 {
		c.Schemas = yc.Schemas
	}
	_, err = c.Registry()
	return err
}

// Registry returns the built-in schemas overlaid with any declared in config.
func (c *Config) Registry() (*schema.Registry, error) {
	declared, err := schema.FromDeclarations(c.Schemas)
	if err != nil {
		return nil, fmt.Errorf("config schemas: %w", err)
	}
	return schema.DefaultRegistry().With(declared...), nil
}

// Targets returns the files to validate: the --file/--kind pair when set,
// otherwise the inputs listed in the config file.
func (c *Config) Targets() []Input {
	if c.FilePath != "" {
		return []Input{{Kind: c.Kind, Path: c.FilePath, Delimiter: c.Delimiter}}
	}
	return c.Inputs
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath != "" && c.Kind == "" {
		return fmt.Errorf("--kind is required with --file")
	}
	targets := c.Targets()
	if len(targets) == 0 {
		return fmt.Errorf("--file or a config file with inputs is required")
	}
	reg, err := c.Registry()
	if err != nil {
		return err
	}
	for _, in := range targets {
		if _, err := reg.Get(schema.Kind(in.Kind)); err != nil {
			return err
		}
		if _, err := os.Stat(in.Path); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
		if _, err := ParseDelimiter(in.Delimiter, in.Path); err != nil {
			return fmt.Errorf("%s: %w", in.Path, err)
		}
	}
	return nil
}

// ValidateWithDSN checks the inputs and, when recording, the DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Record && c.DSN == "" {
		return fmt.Errorf("--dsn or SIMCHECK_DB_URL is required with --record")
	}
	return nil
}

var namedDelimiters = map[string]rune{
	`\t`:        '\t',
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
}

// ParseDelimiter turns delimiter text into a single character. An empty
// value picks ',' for .csv files and a tab for anything else.
func ParseDelimiter(s, path string) (rune, error) {
	if s == "" {
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return ',', nil
		}
		return '\t', nil
	}
	if r, ok := namedDelimiters[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
