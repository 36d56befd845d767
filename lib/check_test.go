package lib

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/dipolesf/lib/config"
)

func TestCheck(t *testing.T) {
	noLattice := testDeck[:strings.Index(testDeck, "[Lattice]")]
	dir := t.TempDir()

	tests := []struct{
		text string
		mode Mode
		ok bool
		msg string
	} {
		{testDeck, ComputeMode, true, ""},
		{noLattice, CheckMode, true, ""},
		{noLattice, ComputeMode, false, "Lattice section"},
		{strings.Replace(testDeck, "Cells = 3", "Cells = 1", 1),
			ComputeMode, false, "width of the lattice"},
		{strings.NewReplacer("Charge = 0.5", "Charge = 0",
			"Charge = -0.5", "Charge = 0", "Dipole = 0.8", "Dipole = 0",
		).Replace(testDeck), ComputeMode, false, "no electrostatic"},
		{testDeck + "[Output]\nRestart = " +
			filepath.Join(dir, "missing", "out.restart") + "\n",
			ComputeMode, false, "Output.Restart"},
		{testDeck + "[Output]\nThermoDB = " +
			filepath.Join(dir, "thermo.db") + "\n", ComputeMode, true, ""},
		// (2, 2) is never set, so it can't be mixed for (1, 2).
		{strings.Replace(testDeck, "[Coeff \"2 2\"]", "[Coeff \"1 2\"]", 1),
			ComputeMode, false, "types 2 2"},
	}

	for i := range tests {
		c, err := config.Parse(tests[i].text)
		require.NoError(t, err, "%d", i)

		ok, err := Check(c, tests[i].mode, CrashOnError)
		assert.Equal(t, tests[i].ok, ok, "%d", i)
		if tests[i].ok {
			assert.NoError(t, err, "%d", i)
			continue
		}
		if assert.Error(t, err, "%d", i) {
			assert.Contains(t, err.Error(), tests[i].msg, "%d", i)
		}

		ok, err = Check(c, tests[i].mode, WarnOnError)
		assert.False(t, ok, "%d", i)
		assert.NoError(t, err, "%d", i)
	}
}
