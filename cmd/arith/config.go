package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// config controls how expressions are echoed and results are printed.
type config struct {
	// Format is the fmt verb used to print results.
	Format string `toml:"format"`
	// Echo prints the fully parenthesized form of each expression.
	Echo bool `toml:"echo"`
	// Tokens prints the token stream of each expression.
	Tokens bool `toml:"tokens"`
	// JSON prints tokens as JSON objects, one per line. It implies Tokens.
	JSON bool `toml:"json"`
	// Color enables colored output.
	Color bool `toml:"color"`
	// Prompt is printed before each line read interactively.
	Prompt string `toml:"prompt"`
	// LogLevel is the zerolog level for diagnostics on stderr.
	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Format:   "%g",
		Color:    true,
		Prompt:   "> ",
		LogLevel: "warn",
	}
}

// loadConfig reads a TOML file over cfg. Keys missing from the file keep
// their current values.
func loadConfig(path string, cfg *config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if un := md.Undecoded(); len(un) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, un[0].String())
	}
	return nil
}

// bindFlags registers a flag for every config key, with the defaults from
// cfg.
func bindFlags(fs *pflag.FlagSet, cfg *config) {
	fs.StringVar(&cfg.Format, "fmt", cfg.Format, "result formatting verb")
	fs.BoolVar(&cfg.Echo, "echo", cfg.Echo, "print the parenthesized form of each expression")
	fs.BoolVar(&cfg.Tokens, "tokens", cfg.Tokens, "print the tokens of each expression")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print tokens as JSON")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "color output")
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "interactive prompt")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}

// merge copies into cfg the values of flags set explicitly on the command
// line, so that they take precedence over the config file.
func merge(fs *pflag.FlagSet, flags, cfg *config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "fmt":
			cfg.Format = flags.Format
		case "echo":
			cfg.Echo = flags.Echo
		case "tokens":
			cfg.Tokens = flags.Tokens
		case "json":
			cfg.JSON = flags.JSON
		case "color":
			cfg.Color = flags.Color
		case "prompt":
			cfg.Prompt = flags.Prompt
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		}
	})
}

// validate checks that Format prints exactly one float64.
func (cfg *config) validate() error {
	if s := fmt.Sprintf(cfg.Format, 1.0); strings.Contains(s, "%!") {
		return fmt.Errorf("format %q does not print a number: %s", cfg.Format, s)
	}
	return nil
}

func (cfg *config) level() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
