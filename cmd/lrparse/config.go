package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/heyimalaap/lrparse/expr"
	"github.com/npillmayer/schuko"
	"github.com/spf13/cobra"
)

// Config holds the settings of a run. It is read from a TOML file and may be
// overridden by command-line flags. Config implements schuko.Configuration,
// making its values available through package gconf.
type Config struct {
	Trace                string `toml:"trace"`
	ShowItems            bool   `toml:"show-items"`
	ShowTables           bool   `toml:"show-tables"`
	Tree                 string `toml:"tree"`
	Scanner              string `toml:"scanner"`
	PanicOnInternalError bool   `toml:"panic-on-internal-error"`
}

var _ schuko.Configuration = (*Config)(nil)

// Tree display styles.
const (
	treeBox   = "box"
	treePterm = "pterm"
	treeNone  = "none"
)

func defaultConfig() *Config {
	return &Config{
		Trace:      "Error",
		ShowItems:  true,
		ShowTables: true,
		Tree:       treeBox,
		Scanner:    string(expr.LexMachine),
	}
}

// loadConfig reads a TOML configuration file. Keys missing from the file
// keep their default values. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Trace) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	switch c.Tree {
	case treeBox, treePterm, treeNone:
	default:
		return fmt.Errorf("unknown tree style %q", c.Tree)
	}
	_, err := expr.ParseScannerKind(c.Scanner)
	return err
}

// applyFlags overrides settings with flags the user has set explicitly.
func (c *Config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("trace") {
		c.Trace, err = flags.GetString("trace")
	}
	if err == nil && flags.Changed("show-items") {
		c.ShowItems, err = flags.GetBool("show-items")
	}
	if err == nil && flags.Changed("show-tables") {
		c.ShowTables, err = flags.GetBool("show-tables")
	}
	if err == nil && flags.Changed("tree") {
		c.Tree, err = flags.GetString("tree")
	}
	if err == nil && flags.Changed("scanner") {
		c.Scanner, err = flags.GetString("scanner")
	}
	if err == nil && flags.Changed("panic-on-internal-error") {
		c.PanicOnInternalError, err = flags.GetBool("panic-on-internal-error")
	}
	if err != nil {
		return err
	}
	return c.validate()
}

// --- schuko.Configuration --------------------------------------------------

// InitDefaults is part of interface schuko.Configuration. Defaults are set
// when the Config is created.
func (c *Config) InitDefaults() {}

// IsSet is part of interface schuko.Configuration.
func (c *Config) IsSet(key string) bool {
	_, ok := c.value(key)
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *Config) GetString(key string) string {
	v, _ := c.value(key)
	return v
}

// GetInt is part of interface schuko.Configuration.
func (c *Config) GetInt(key string) int {
	v, _ := c.value(key)
	i, _ := strconv.Atoi(v)
	return i
}

// GetBool is part of interface schuko.Configuration.
func (c *Config) GetBool(key string) bool {
	v, _ := c.value(key)
	b, _ := strconv.ParseBool(v)
	return b
}

// IsInteractive is part of interface schuko.Configuration.
func (c *Config) IsInteractive() bool {
	return false
}

func (c *Config) value(key string) (string, bool) {
	switch key {
	case "trace":
		return c.Trace, true
	case "show-items":
		return strconv.FormatBool(c.ShowItems), true
	case "show-tables":
		return strconv.FormatBool(c.ShowTables), true
	case "tree":
		return c.Tree, true
	case "scanner":
		return c.Scanner, true
	case "panic-on-internal-error":
		return strconv.FormatBool(c.PanicOnInternalError), true
	}
	return "", false
}
