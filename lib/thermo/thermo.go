/*package thermo logs the thermodynamic output of compute passes to a SQLite
database. Each invocation of the program is a run, identified by a UUID, and
each pass within a run is a sample.
*/
package thermo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/phil-mansfield/dipolesf/lib/tally"
)

// Sample is the output of a single compute pass.
type Sample struct {
	Step int64 `db:"step"`
	Pairs int64 `db:"pairs"`
	EVdwl float64 `db:"evdwl"`
	ECoul float64 `db:"ecoul"`
	// Virial components, in the order returned by tally.Accumulator.Virial.
	Vxx float64 `db:"vxx"`
	Vyy float64 `db:"vyy"`
	Vzz float64 `db:"vzz"`
	Vxy float64 `db:"vxy"`
	Vxz float64 `db:"vxz"`
	Vyz float64 `db:"vyz"`
}

// SampleOf creates a Sample from the contents of an Accumulator.
func SampleOf(step int64, pairs int, acc *tally.Accumulator) Sample {
	v := acc.Virial()
	return Sample{
		Step: step, Pairs: int64(pairs),
		EVdwl: acc.EVdwl, ECoul: acc.ECoul,
		Vxx: v[0], Vyy: v[1], Vzz: v[2], Vxy: v[3], Vxz: v[4], Vyz: v[5],
	}
}

// Energy returns the total pair energy of the sample.
func (s *Sample) Energy() float64 { return s.EVdwl + s.ECoul }

// Run describes one logged run.
type Run struct {
	ID string `db:"id"`
	Config string `db:"config"`
	Started int64 `db:"started"`
}

// DB wraps a SQLite connection holding thermo output.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a thermo database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{ conn: conn }
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		config TEXT NOT NULL,
		started INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id),
		step INTEGER NOT NULL,
		pairs INTEGER NOT NULL,
		evdwl REAL NOT NULL,
		ecoul REAL NOT NULL,
		vxx REAL NOT NULL,
		vyy REAL NOT NULL,
		vzz REAL NOT NULL,
		vxy REAL NOT NULL,
		vxz REAL NOT NULL,
		vyz REAL NOT NULL,
		PRIMARY KEY (run_id, step)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers a new run with the text of its input deck and returns
// its ID.
func (db *DB) StartRun(config string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, config, started) VALUES (?, ?, ?)",
		id.String(), config, time.Now().Unix(),
	)
	if err != nil { return uuid.Nil, fmt.Errorf("start run: %w", err) }
	return id, nil
}

// Record stores a sample of the given run. Recording the same step twice
// replaces the earlier sample.
func (db *DB) Record(run uuid.UUID, s Sample) error {
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO samples
		(run_id, step, pairs, evdwl, ecoul, vxx, vyy, vzz, vxy, vxz, vyz)
		VALUES (:run_id, :step, :pairs, :evdwl, :ecoul,
		        :vxx, :vyy, :vzz, :vxy, :vxz, :vyz)`,
		struct{
			RunID string `db:"run_id"`
			Sample
		}{ run.String(), s },
	)
	if err != nil { return fmt.Errorf("record step %d: %w", s.Step, err) }
	return nil
}

// Samples returns every sample of a run, ordered by step.
func (db *DB) Samples(run uuid.UUID) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples, `SELECT step, pairs, evdwl, ecoul,
		vxx, vyy, vzz, vxy, vxz, vyz
		FROM samples WHERE run_id = ? ORDER BY step`, run.String())
	return samples, err
}

// Runs returns every run in the database, oldest first.
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, config, started FROM runs ORDER BY started, id")
	return runs, err
}
