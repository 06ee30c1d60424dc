package config

import (
	"bytes"
	"os"
	"path/filepath"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/util/log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prioq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	props := Default()
	assert.False(t, props.DebugMode)
	assert.True(t, props.LIFO)
	assert.Equal(t, "yaml", props.Format)
	assert.Equal(t, 0, props.DefaultPriority)
	assert.NoError(t, NewLoader().Validate(props))
}

func TestLoad_NoFile(t *testing.T) {
	props, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Format, props.Format)
	assert.True(t, props.LIFO)
	assert.Empty(t, props.Lists)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
debugMode: true
lifo: false
format: JSON
defaultPriority: 2
lists:
  Tasks:
    - name: build
      value: make
    - name: deploy
      value: ship
      priority: 5
    - name: test
      value: 3
`)
	props, err := Load(path)
	require.NoError(t, err)
	assert.True(t, props.DebugMode)
	assert.False(t, props.LIFO)
	assert.Equal(t, "json", props.Format)
	assert.Equal(t, 2, props.DefaultPriority)
	assert.Equal(t, []string{"tasks"}, props.ListNames())

	pl, err := props.PriorityList("Tasks")
	require.NoError(t, err)
	assert.False(t, pl.IsLIFO())
	assert.Equal(t, []string{"deploy", "build", "test"}, pl.Names())
	v, ok := pl.Get("test")
	assert.True(t, ok)
	assert.EqualValues(t, 3, v)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, "debugMode: false\nformat: dump\n")
	t.Setenv("PRIOQ_FORMAT", "json")

	loader := NewLoader()
	loader.SetOverride("debugMode", true)
	props, err := loader.Load(path)
	require.NoError(t, err)
	assert.True(t, props.DebugMode)
	assert.Equal(t, "json", props.Format)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		content string
		message string
	}{
		"format": {
			content: "format: xml\n",
			message: "'Format' must be one of [json yaml dump] (got 'xml')",
		},
		"entry name": {
			content: "lists:\n  a:\n    - value: 1\n",
			message: "'Lists[a][0].Name' is required",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, collection.ErrInvalidArgument)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tc.message, errs.Error())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPriorityList_NotFound(t *testing.T) {
	_, err := Default().PriorityList("nope")
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestDisplayConfigs(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	props := Default()
	props.DebugMode = true
	props.Lists = map[string][]ListEntry{"b": {{Name: "x"}}, "a": nil}
	props.ApplyLogLevel()
	props.DisplayConfigs()
	log.Debug("debug enabled")

	out := buf.String()
	assert.Contains(t, out, "tie-break: lifo")
	assert.Contains(t, out, "debug enabled")
	assert.Less(t, strings.Index(out, "list a: 0 entries"), strings.Index(out, "list b: 1 entries"))

	props.DebugMode = false
	props.ApplyLogLevel()
	buf.Reset()
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
