package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heyimalaap/lrparse/expr"
	"github.com/heyimalaap/lrparse/lr/clr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "lrparse.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func flagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("trace", "Error", "")
	cmd.Flags().Bool("show-items", true, "")
	cmd.Flags().Bool("show-tables", true, "")
	cmd.Flags().String("tree", treeBox, "")
	cmd.Flags().String("scanner", "lexmachine", "")
	cmd.Flags().Bool("panic-on-internal-error", false, "")
	return cmd
}

func TestDefaultConfig(t *testing.T) {
	conf, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), conf)
	assert.True(t, conf.ShowItems)
	assert.Equal(t, treeBox, conf.Tree)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
trace = "Debug"
show-items = false
tree = "pterm"
scanner = "go"
panic-on-internal-error = true
`)
	conf, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Debug", conf.Trace)
	assert.False(t, conf.ShowItems)
	assert.True(t, conf.ShowTables, "missing keys should keep their defaults")
	assert.Equal(t, treePterm, conf.Tree)
	assert.Equal(t, "go", conf.Scanner)
	assert.True(t, conf.PanicOnInternalError)
}

func TestInvalidConfig(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `tree = "fancy"`))
	assert.Error(t, err)
	_, err = loadConfig(writeConfig(t, `trace = "Verbose"`))
	assert.Error(t, err)
	_, err = loadConfig(writeConfig(t, `scanner = "flex"`))
	assert.Error(t, err)
	_, err = loadConfig(writeConfig(t, `tree = `))
	assert.Error(t, err)
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFlagsOverrideFile(t *testing.T) {
	conf, err := loadConfig(writeConfig(t, `tree = "pterm"
show-tables = false`))
	require.NoError(t, err)
	cmd := flagCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--tree", "none", "--trace", "Info", "--scanner", "go"}))
	require.NoError(t, conf.applyFlags(cmd))
	assert.Equal(t, treeNone, conf.Tree)
	assert.Equal(t, "go", conf.Scanner)
	assert.Equal(t, "Info", conf.Trace)
	assert.False(t, conf.ShowTables, "unset flags must not override the file")
	//
	cmd = flagCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--tree", "ascii"}))
	assert.Error(t, conf.applyFlags(cmd))
}

func TestConfigurationFacade(t *testing.T) {
	conf := defaultConfig()
	conf.PanicOnInternalError = true
	gconf.Initialize(conf)
	defer gconf.Initialize(defaultConfig())
	assert.True(t, gconf.GetBool("panic-on-internal-error"))
	assert.Equal(t, treeBox, gconf.GetString("tree"))
	assert.Equal(t, "lexmachine", gconf.GetString("scanner"))
	assert.True(t, gconf.IsSet("show-items"))
	assert.False(t, gconf.IsSet("no-such-key"))
}

func TestErrorDetail(t *testing.T) {
	err := &clr.SyntaxError{Pos: 3}
	assert.Equal(t, "id+\n   ^", errorDetail("id+", err))
	lexErr := &clr.LexError{Pos: 1, Lexeme: "#"}
	assert.Equal(t, "(# id\n ^", errorDetail("(# id", lexErr))
	assert.Equal(t, "id", errorDetail("id", errors.New("other")))
}

func TestLeveledList(t *testing.T) {
	tree, _, err := expr.Parse("id")
	require.NoError(t, err)
	ll := leveledList(tree)
	require.Len(t, ll, 4)
	labels := make([]string, len(ll))
	for i, item := range ll {
		labels[i] = item.Text
		assert.Equal(t, i, item.Level)
	}
	assert.Equal(t, "E T F id", strings.Join(labels, " "))
}

func TestEvalLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.cli")
	defer teardown()
	//
	lang, err := expr.Reference()
	require.NoError(t, err)
	current = session{conf: defaultConfig(), lang: lang}
	var out bytes.Buffer
	assert.False(t, evalLine(&out, "id + id"))
	assert.Contains(t, out.String(), "Reduce by F -> id")
	assert.Contains(t, out.String(), "+---+--+")
	out.Reset()
	assert.False(t, evalLine(&out, "id +"))
	assert.Contains(t, out.String(), "id +\n    ^")
	out.Reset()
	assert.False(t, evalLine(&out, ":tables"))
	assert.NotEmpty(t, out.String())
	assert.True(t, evalLine(&out, ":quit"))
}

func TestEvalLineWithTextScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.cli")
	defer teardown()
	//
	lang, err := expr.Reference()
	require.NoError(t, err)
	current = session{conf: defaultConfig(), lang: lang.WithScanner(expr.TextScanner)}
	defer func() { current = session{} }()
	var out bytes.Buffer
	assert.False(t, evalLine(&out, "(id) * id"))
	assert.Contains(t, out.String(), "Reduce by F -> (E)")
	out.Reset()
	assert.False(t, evalLine(&out, "id + ix"))
	assert.Contains(t, out.String(), "id + ix\n     ^")
}
