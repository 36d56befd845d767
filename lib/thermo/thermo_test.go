package thermo

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dipolesf/lib/tally"
)

func openTemp(t *testing.T) *DB {
	db, err := Open(filepath.Join(t.TempDir(), "thermo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordSamples(t *testing.T) {
	db := openTemp(t)

	run, err := db.StartRun("[Settings]\nNTypes = 1\n")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, run)

	acc := tally.New(0)
	acc.TallyXYZ(0, 1, 2, true, 1.5, -0.25,
		r3.Vec{ X: 1, Y: 2, Z: 3 }, r3.Vec{ X: 0.5, Y: -1, Z: 2 })

	require.NoError(t, db.Record(run, SampleOf(1, 1, acc)))
	require.NoError(t, db.Record(run, Sample{ Step: 0, Pairs: 3 }))

	samples, err := db.Samples(run)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, int64(0), samples[0].Step)
	assert.Equal(t, int64(3), samples[0].Pairs)
	assert.Equal(t, SampleOf(1, 1, acc), samples[1])
	assert.Equal(t, 1.25, samples[1].Energy())
}

func TestRecordReplaces(t *testing.T) {
	db := openTemp(t)
	run, err := db.StartRun("")
	require.NoError(t, err)

	require.NoError(t, db.Record(run, Sample{ Step: 4, EVdwl: 1 }))
	require.NoError(t, db.Record(run, Sample{ Step: 4, EVdwl: 2 }))

	samples, err := db.Samples(run)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 2.0, samples[0].EVdwl)
}

func TestRuns(t *testing.T) {
	db := openTemp(t)

	a, err := db.StartRun("a")
	require.NoError(t, err)
	b, err := db.StartRun("b")
	require.NoError(t, err)
	require.NoError(t, db.Record(a, Sample{ Step: 1 }))

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{ runs[0].ID, runs[1].ID }
	assert.ElementsMatch(t, []string{ a.String(), b.String() }, ids)

	samples, err := db.Samples(b)
	require.NoError(t, err)
	assert.Empty(t, samples)
}
