package lib

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for i, name := range []string{ "help", "check", "compute", "restart" } {
		mode, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, Mode(i), mode)
		assert.Equal(t, name, mode.String())
	}

	_, err := ParseMode("convert")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestParseCommandLine(t *testing.T) {
	mode, file, ov, err := ParseCommandLine(nil)
	require.NoError(t, err)
	assert.Equal(t, HelpMode, mode)
	assert.Equal(t, "", file)
	assert.Empty(t, ov)

	mode, file, ov, err = ParseCommandLine([]string{
		"compute", "deck.cfg", "--CutLJ", "3.0",
		"--Lattice.Spacing", "1.25", "--Output.ThermoDB", "t.db",
	})
	require.NoError(t, err)
	assert.Equal(t, ComputeMode, mode)
	assert.Equal(t, "deck.cfg", file)
	assert.Equal(t, []Override{
		{ "Settings", "CutLJ", "3.0" },
		{ "Lattice", "Spacing", "1.25" },
		{ "Output", "ThermoDB", "t.db" },
	}, ov)

	errs := [][]string{
		{ "convert", "deck.cfg" },
		{ "check" },
		{ "check", "--CutLJ", "3" },
		{ "check", "deck.cfg", "--CutLJ" },
		{ "check", "deck.cfg", "CutLJ", "3" },
		{ "check", "deck.cfg", "--", "3" },
		{ "check", "deck.cfg", "--Coeff.Epsilon", "3" },
		{ "check", "deck.cfg", "--Lattice.Charge", "3" },
		{ "check", "deck.cfg", "--Settings.", "3" },
		{ "check", "deck.cfg", "--CutLJ", "3\n[Output]" },
	}
	for i := range errs {
		_, _, _, err := ParseCommandLine(errs[i])
		assert.Error(t, err, "%d) %v", i, errs[i])
	}
}

const testDeck = `
[Settings]
NTypes = 2
CutLJ = 2.5
Mix = geometric

[Coeff "1 1"]
Epsilon = 1.0
Sigma = 1.0

[Coeff "2 2"]
Epsilon = 0.5
Sigma = 1.1
CutLJ = 2.0
CutCoul = 2.2

[Lattice]
Cells = 3
Spacing = 1.5
Charge = 0.5
Charge = -0.5
Dipole = 0.0
Dipole = 0.8
Seed = 7
`

func writeDeck(t *testing.T, text string) string {
	fname := filepath.Join(t.TempDir(), "deck.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadDeck(t *testing.T) {
	fname := writeDeck(t, testDeck)

	c, text, err := ReadDeck(fname, nil)
	require.NoError(t, err)
	assert.Equal(t, testDeck, text)
	assert.Equal(t, 2.5, c.Settings.CutLJ)
	assert.True(t, c.Settings.NewtonPair)

	c, text, err = ReadDeck(fname, []Override{
		{ "Settings", "CutLJ", "2.0" },
		{ "settings", "NewtonPair", "false" },
		{ "Lattice", "Spacing", "1.2" },
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Settings.CutLJ)
	assert.False(t, c.Settings.NewtonPair)
	assert.Equal(t, 1.2, c.Lattice.Spacing)
	assert.Contains(t, text, "[Lattice]\nSpacing = 1.2\n")

	_, _, err = ReadDeck(fname, []Override{ { "Settings", "CutLJ", "-1" } })
	assert.Error(t, err)
	_, _, err = ReadDeck(fname, []Override{ { "Settings", "Bogus", "1" } })
	assert.Error(t, err)
	_, _, err = ReadDeck(filepath.Join(t.TempDir(), "missing.cfg"), nil)
	assert.Error(t, err)
}

func TestPrintHelp(t *testing.T) {
	buf := &bytes.Buffer{ }
	PrintHelp(buf)
	assert.Contains(t, buf.String(), "dipolesf compute <config file>")
	assert.Contains(t, buf.String(), Version)
}
