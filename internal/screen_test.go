package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesPage(t *testing.T) {
	config := defaultConfig()
	config.Defaults = Tree{"color": Tree{"default": "navy"}}
	config.Charts = []Tree{
		{"bindto": "#first", "data": Tree{"json": countries}},
		{"bindto": "#second", "data": Tree{"json": []Record{{"id": "FR", "name": "France", "value": 2}}}},
	}

	var out bytes.Buffer
	err := Run(context.Background(), config, RunOptions{Out: &out}, discardLogger())
	require.NoError(t, err)

	page := out.String()
	assert.Contains(t, page, `id="bar_DE"`)
	assert.Contains(t, page, `id="bar_FR"`)
	assert.Contains(t, page, `stroke="navy"`)
	assert.Equal(t, 2, strings.Count(page, "<svg"))
}

func TestRunDataOverridesFirstChart(t *testing.T) {
	config := defaultConfig()
	config.Charts = []Tree{{"data": Tree{"json": countries}}}

	var out bytes.Buffer
	err := Run(context.Background(), config, RunOptions{
		Data: []Record{{"id": "PL", "name": "Poland", "value": 4}},
		Out:  &out,
	}, discardLogger())
	require.NoError(t, err)

	assert.Contains(t, out.String(), `id="bar_PL"`)
	assert.NotContains(t, out.String(), `id="bar_DE"`)
}

func TestRunFake(t *testing.T) {
	config := defaultConfig()
	config.Charts = []Tree{
		{"data": Tree{"json": countries}},
		{"bindto": "#fake", "data": Tree{"id": "code"}},
	}

	var out bytes.Buffer
	err := Run(context.Background(), config, RunOptions{Fake: true, Out: &out}, discardLogger())
	require.NoError(t, err)

	page := out.String()
	assert.Equal(t, 2+fakeRecordCount, strings.Count(page, `data-id="`))
	assert.Contains(t, page, `id="bar_SI"`)
}

func TestRunWritesHTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")

	var out bytes.Buffer
	err := Run(context.Background(), defaultConfig(), RunOptions{
		Data: []Record{{"id": "DE", "name": "Germany", "value": 1}},
		HTML: path,
		Out:  &out,
	}, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, out.String(), "the page goes to the file only")

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `id="bar_DE"`)
}

func TestRunInvalidChart(t *testing.T) {
	config := defaultConfig()
	config.Charts = []Tree{
		{"data": Tree{"json": countries}},
		{"data": Tree{"json": []Record{{"value": 1}}}},
	}
	err := Run(context.Background(), config, RunOptions{Out: &bytes.Buffer{}}, discardLogger())
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorContains(t, err, "chart 1")
}
