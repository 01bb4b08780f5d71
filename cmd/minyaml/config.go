package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/ConradIrwin/minyaml"
)

// Config controls a conversion. It can be loaded from a TOML file with
// --config; flags given on the command line take precedence.
type Config struct {
	Format      string `toml:"format"`
	Parser      string `toml:"parser"`
	IndentWidth int    `toml:"indent_width"`
	Output      string `toml:"output"`
	Watch       bool   `toml:"watch"`
}

const (
	parserHand = "hand"
	parserYAML = "yaml"
)

func defaultConfig() Config {
	return Config{
		Format:      "json",
		Parser:      parserHand,
		IndentWidth: minyaml.DefaultIndentWidth,
	}
}

func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Format, "to", c.Format, "Output format: json or csv")
	fs.StringVar(&c.Parser, "parser", c.Parser, "Parser to use: hand (built in) or yaml (gopkg.in/yaml.v3)")
	fs.IntVar(&c.IndentWidth, "indent", c.IndentWidth, "Spaces per nesting level in the input (hand parser only)")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "Write to this file instead of stdout")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Convert again whenever the input file changes")
}

// Merge copies the values of flags that were set explicitly in fs from
// flags into c.
func (c *Config) Merge(flags Config, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "to":
			c.Format = flags.Format
		case "parser":
			c.Parser = flags.Parser
		case "indent":
			c.IndentWidth = flags.IndentWidth
		case "output":
			c.Output = flags.Output
		case "watch":
			c.Watch = flags.Watch
		}
	})
}

func (c Config) Validate() error {
	if _, err := minyaml.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Parser != parserHand && c.Parser != parserYAML {
		return errors.Errorf("unknown parser %q", c.Parser)
	}
	if c.IndentWidth <= 0 {
		return errors.Errorf("indent must be positive, got %d", c.IndentWidth)
	}
	return nil
}

func loadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return nil
}
