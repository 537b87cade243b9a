// Package config loads the optional YAML run configuration.
package config

import (
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"

    "gopkg.in/yaml.v3"
)

// Diagnostics destinations.
const (
    Stdout = "stdout"
    Stderr = "stderr"
)

// Config controls how a program run is presented. The zero value is not
// valid; start from Default.
type Config struct {
    // Diagnostics selects where syntax, declaration and runtime errors go.
    Diagnostics string `yaml:"diagnostics"`
    // FirstLine is the starting value of the lexer's line counter.
    FirstLine int `yaml:"first_line"`
    // TrailingNewline appends a newline after the program's own output.
    TrailingNewline bool `yaml:"trailing_newline"`
    // Trace logs pipeline stages to stderr.
    Trace bool `yaml:"trace"`
}

func Default() Config { return Config{Diagnostics: Stdout} }

// ValidationError aggregates configuration problems.
type ValidationError struct {
    Issues []string
}

func (e *ValidationError) Error() string {
    if len(e.Issues) == 0 {
        return "config: invalid configuration"
    }
    var b strings.Builder
    b.WriteString("config validation failed:")
    for _, issue := range e.Issues {
        b.WriteString("\n- ")
        b.WriteString(issue)
    }
    return b.String()
}

// Load reads the YAML file at path. Keys missing from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
    if path == "" {
        return Config{}, fmt.Errorf("config: empty path")
    }
    absPath, err := filepath.Abs(path)
    if err != nil {
        return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
    }
    file, err := os.Open(absPath)
    if err != nil {
        return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
    }
    defer file.Close()

    cfg, err := Decode(file)
    if err != nil {
        return Config{}, fmt.Errorf("config: %s: %w", absPath, err)
    }
    return cfg, nil
}

// Decode parses a configuration document from r. An empty document yields
// the defaults.
func Decode(r io.Reader) (Config, error) {
    cfg := Default()
    decoder := yaml.NewDecoder(r)
    decoder.KnownFields(true)
    if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
        return Config{}, fmt.Errorf("parse: %w", err)
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

func (c Config) Validate() error {
    var issues []string
    switch c.Diagnostics {
    case Stdout, Stderr:
    default:
        issues = append(issues, fmt.Sprintf("diagnostics must be %q or %q, got %q", Stdout, Stderr, c.Diagnostics))
    }
    if c.FirstLine < 0 {
        issues = append(issues, fmt.Sprintf("first_line must not be negative, got %d", c.FirstLine))
    }
    if len(issues) > 0 {
        return &ValidationError{Issues: issues}
    }
    return nil
}
