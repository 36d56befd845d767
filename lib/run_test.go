package lib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/dipolesf/lib/config"
	"github.com/phil-mansfield/dipolesf/lib/particles"
	"github.com/phil-mansfield/dipolesf/lib/restart"
	"github.com/phil-mansfield/dipolesf/lib/thermo"
)

func TestComputeNewton(t *testing.T) {
	on, err := config.Parse(testDeck)
	require.NoError(t, err)
	off, err := config.Parse(testDeck + "[Settings]\nNewtonPair = false\n")
	require.NoError(t, err)

	ron, err := Compute(on, testDeck)
	require.NoError(t, err)
	roff, err := Compute(off, testDeck)
	require.NoError(t, err)

	assert.Equal(t, 27, ron.NLocal)
	assert.Equal(t, ron.NGhost, roff.NGhost)
	assert.Greater(t, ron.NGhost, 0)
	assert.True(t, ron.Newton)
	assert.False(t, roff.Newton)
	assert.Equal(t, 2.5, ron.Cut)

	// Without newton, owned-ghost pairs are visited from both sides.
	assert.Greater(t, roff.Pairs, ron.Pairs)

	assert.InDelta(t, ron.EVdwl, roff.EVdwl, 1e-9)
	assert.InDelta(t, ron.ECoul, roff.ECoul, 1e-9)
	assert.InDelta(t, ron.Pressure, roff.Pressure, 1e-9)
	assert.InDelta(t, ron.MaxForce, roff.MaxForce, 1e-9)
	assert.InDelta(t, ron.MaxTorque, roff.MaxTorque, 1e-9)
	for k := range ron.Virial {
		assert.InDelta(t, ron.Virial[k], roff.Virial[k], 1e-8, "virial %d", k)
	}

	trace := ron.Virial[0] + ron.Virial[1] + ron.Virial[2]
	pv := ron.PrincipalVirial
	assert.InDelta(t, trace, pv[0] + pv[1] + pv[2], 1e-8)
	assert.LessOrEqual(t, pv[0], pv[1])
	assert.LessOrEqual(t, pv[1], pv[2])

	assert.Equal(t, uuid.Nil, ron.Run)
}

func TestComputePerAtom(t *testing.T) {
	on, err := config.Parse(testDeck)
	require.NoError(t, err)
	off, err := config.Parse(testDeck + "[Settings]\nNewtonPair = false\n")
	require.NoError(t, err)

	ron, err := Compute(on, testDeck)
	require.NoError(t, err)
	roff, err := Compute(off, testDeck)
	require.NoError(t, err)

	for _, r := range []*Report{ ron, roff } {
		require.Len(t, r.PerAtom, r.NLocal)
		sum := 0.0
		for _, e := range r.PerAtom { sum += e }
		assert.InDelta(t, r.EVdwl + r.ECoul, sum, 1e-9,
			"newton = %v", r.Newton)
	}

	// Ghost energies folded onto their owners match the energies each owner
	// collects by visiting its own ghost pairs.
	for i := range ron.PerAtom {
		assert.InDelta(t, roff.PerAtom[i], ron.PerAtom[i], 1e-9,
			"particle %d", i)
	}
}

func TestComputeOutputs(t *testing.T) {
	dir := t.TempDir()
	rfile := filepath.Join(dir, "out.restart")
	dbfile := filepath.Join(dir, "thermo.db")

	deck := testDeck + "[Output]\nRestart = " + rfile +
		"\nCompress = true\nThermoDB = " + dbfile + "\n"
	c, err := config.Parse(deck)
	require.NoError(t, err)

	r, err := Compute(c, deck)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, r.Run)

	db, err := thermo.Open(dbfile)
	require.NoError(t, err)
	defer db.Close()

	samples, err := db.Samples(r.Run)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, int64(r.Pairs), samples[0].Pairs)
	assert.Equal(t, r.EVdwl, samples[0].EVdwl)
	assert.Equal(t, r.ECoul, samples[0].ECoul)
	assert.Equal(t, r.Virial[3], samples[0].Vxy)

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, deck, runs[0].Config)

	s, err := SummarizeRestart(rfile, restart.Serial{ })
	require.NoError(t, err)
	assert.Equal(t, 2, s.NTypes)
	assert.Equal(t, 2, s.SetPairs)
	assert.Equal(t, "geometric", s.Settings.Mix.String())
	assert.NoError(t, s.InitErr)
	assert.Equal(t, 2.5, s.Cut)

	want, err := c.Build()
	require.NoError(t, err)
	_, err = want.Init()
	require.NoError(t, err)
	for i := 1; i <= 2; i++ {
		for j := i; j <= 2; j++ {
			we, se := want.Table.Entry(i, j), s.Table.Entry(i, j)
			assert.Equal(t, we.Set, se.Set, "pair (%d, %d)", i, j)
			assert.Equal(t,
				[]float64{ we.Epsilon, we.Sigma, we.CutLJ, we.CutCoul,
					we.LJ1, we.LJ2, we.LJ3, we.LJ4, we.CutSq },
				[]float64{ se.Epsilon, se.Sigma, se.CutLJ, se.CutCoul,
					se.LJ1, se.LJ2, se.LJ3, se.LJ4, se.CutSq },
				"pair (%d, %d)", i, j)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	noLattice := testDeck[:strings.Index(testDeck, "[Lattice]")]
	c, err := config.Parse(noLattice)
	require.NoError(t, err)
	_, err = Compute(c, noLattice)
	assert.Error(t, err)

	small := strings.Replace(testDeck, "Cells = 3", "Cells = 1", 1)
	c, err = config.Parse(small)
	require.NoError(t, err)
	_, err = Compute(c, small)
	assert.Error(t, err)

	_, err = SummarizeRestart(filepath.Join(t.TempDir(), "missing"),
		restart.Serial{ })
	assert.Error(t, err)
}

func TestComputeInput(t *testing.T) {
	dir := t.TempDir()
	pfile := filepath.Join(dir, "particles.txt")
	// The second particle lies outside the box and is wrapped to x = 0.5.
	catalog := "1  1.0 4.5 3 3  0 0 0\n1 -1.0 6.5 3 3  0 0 0\n"
	require.NoError(t, os.WriteFile(pfile, []byte(catalog), 0644))

	deck := `
[Settings]
NTypes = 1
CutLJ = 2.5

[Coeff "1 1"]
Epsilon = 1.0
Sigma = 1.0

[Input]
Particles = ` + pfile + `
BoxHi = 6 6 6
`
	c, err := config.Parse(deck)
	require.NoError(t, err)
	ok, err := Check(c, ComputeMode, CrashOnError)
	require.NoError(t, err)
	assert.True(t, ok)

	p, box, err := System(c)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{ 6, 6, 6 }, box.Hi)
	x, err := p.Vec3s(particles.X)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, x[1][0], 1e-12)

	// The pair is 2 apart through the periodic boundary.
	r, err := Compute(c, deck)
	require.NoError(t, err)
	assert.Equal(t, 2, r.NLocal)
	assert.Equal(t, 1, r.Pairs)
	assert.Less(t, r.ECoul, 0.0)

	missing := strings.Replace(deck, pfile, filepath.Join(dir, "none"), 1)
	c, err = config.Parse(missing)
	require.NoError(t, err)
	_, err = Check(c, ComputeMode, CrashOnError)
	assert.Error(t, err)
	_, err = Compute(c, missing)
	assert.Error(t, err)
}
