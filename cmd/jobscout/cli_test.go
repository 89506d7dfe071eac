package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/jobscout/cmd/jobscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"infer", "list", "show", "run", "validate", "delete"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesRunFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "acme", "--pages", "3", "--out", "exports", "--extractor", "readability"})
	require.NoError(t, err)

	assert.Equal(t, "acme", cli.Run.Name)
	assert.Equal(t, 3, cli.Run.Pages)
	assert.Equal(t, "readability", cli.Run.Extractor)
	assert.Equal(t, "exports", filepath.Base(cli.Run.Out))
}

func TestCLI_RejectsUnknownExtractor(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "acme", "--extractor", "boilerpipe"})
	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_ListsEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No blueprints found")
}

func TestMain_Run_InfersFromFileAndStoresBlueprint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := writeFile(t, dir, "careers.html", cardList("Backend Engineer", "Product Designer", "Data Scientist"))

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(),
		[]string{"infer", "acme", "https://acme.example/careers", "--file", page}, stdout, stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), `Created blueprint "acme"`)

	m2 := main.NewMain()
	m2.DBPath = m.DBPath
	stdout.Reset()
	err = m2.Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "acme")
	assert.Contains(t, stdout.String(), "https://acme.example/careers")
}
