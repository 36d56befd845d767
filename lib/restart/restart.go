/*package restart reads and writes the parameter table of a pair style in a
compact binary format, and shares tables read on one process with the rest of
a communicator.

A restart stream starts with four little-endian uint32 values: the magic
number, the format version, a flag word, and the number of atom types. The
payload follows. If the Compressed flag is set, the payload is stored as an
int64 byte count followed by a zstd frame. The payload contains the global
LJ and Coulomb cutoffs (float64), the mixing rule (int32), and then, for every
pair of types with i <= j, an int32 set flag followed by epsilon, sigma, and
the LJ and Coulomb cutoffs (float64) if the flag is non-zero.
*/
package restart

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/dipolesf/lib/pair"
)

const (
	// MagicNumber is an arbitrary number at the start of all restart files.
	MagicNumber = 0xd1901e5f
	// ReverseMagicNumber is the magic number if read with flipped endianness.
	ReverseMagicNumber = 0x5f1e90d1
	Version = 1

	// Compressed is set in the flag word if the payload is zstd-compressed.
	Compressed = 1 << 0

	compressionLevel = 3
)

var order = binary.LittleEndian

// Write writes the stored values of t to wr. Derived values are not written,
// since Read recomputes them.
func Write(wr io.Writer, t *pair.Table, compress bool) error {
	payload := &bytes.Buffer{ }
	if err := writePayload(payload, t); err != nil { return err }

	flags := uint32(0)
	if compress { flags |= Compressed }
	hd := []uint32{ MagicNumber, Version, flags, uint32(t.NTypes()) }
	if err := binary.Write(wr, order, hd); err != nil { return err }

	if !compress {
		_, err := wr.Write(payload.Bytes())
		return err
	}

	buf, err := zstd.CompressLevel(nil, payload.Bytes(), compressionLevel)
	if err != nil { return err }
	if err := binary.Write(wr, order, int64(len(buf))); err != nil {
		return err
	}
	_, err = wr.Write(buf)
	return err
}

func writePayload(wr io.Writer, t *pair.Table) error {
	s := t.Settings()
	cuts := []float64{ s.CutLJ, s.CutCoul }
	if err := binary.Write(wr, order, cuts); err != nil { return err }
	if err := binary.Write(wr, order, int32(s.Mix)); err != nil { return err }

	n := t.NTypes()
	for i := 1; i <= n; i++ {
		for j := i; j <= n; j++ {
			e := t.Entry(i, j)
			set := int32(0)
			if e.Set { set = 1 }
			if err := binary.Write(wr, order, set); err != nil { return err }
			if !e.Set { continue }

			vals := []float64{ e.Epsilon, e.Sigma, e.CutLJ, e.CutCoul }
			if err := binary.Write(wr, order, vals); err != nil { return err }
		}
	}

	return nil
}

// WriteFile writes t to the file fname.
func WriteFile(fname string, t *pair.Table, compress bool) error {
	f, err := os.Create(fname)
	if err != nil { return err }
	if err := Write(f, t, compress); err != nil {
		f.Close()
		return fmt.Errorf("Could not write restart file %s: %w", fname, err)
	}
	return f.Close()
}

// ReadFile reads the table stored in fname. Only rank 0 of comm opens the
// file.
func ReadFile(fname string, comm Comm) (*pair.Table, error) {
	if comm.Rank() != 0 { return Read(nil, comm) }

	f, err := os.Open(fname)
	if err != nil {
		// The other ranks still need to learn that the read failed.
		if berr := broadcastFailure(comm); berr != nil {
			return nil, fmt.Errorf("Could not open restart file %s (%v), " +
				"and the failure could not be sent to the other ranks: %w",
				fname, err, berr)
		}
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, comm)
	if err != nil {
		return nil, fmt.Errorf("Could not read restart file %s: %w", fname, err)
	}
	return t, nil
}

// packed is a table flattened into the arrays which are broadcast.
type packed struct {
	// ints holds ntypes, the mixing rule, and one set flag per pair.
	ints []int64
	// floats holds the global cutoffs and four values per set pair.
	floats []float64
}

// Read reads a table from rd on rank 0 of comm and broadcasts it to every
// other rank, whose rd is ignored and may be nil. Every rank returns an
// identical table whose set pairs have had their derived values computed.
// The table must still be finalized with Init before use.
func Read(rd io.Reader, comm Comm) (*pair.Table, error) {
	// status is 1 if rank 0 read the stream successfully, followed by the
	// lengths of the two packed arrays.
	status := make([]int64, 3)
	var p *packed
	var readErr error

	if comm.Rank() == 0 {
		p, readErr = readPacked(rd)
		if readErr == nil {
			status[0], status[1], status[2] = 1, int64(len(p.ints)),
				int64(len(p.floats))
		}
	}

	if err := comm.BcastInt64(status, 0); err != nil { return nil, err }
	if status[0] == 0 {
		if readErr != nil { return nil, readErr }
		return nil, fmt.Errorf("Rank 0 failed to read the restart file.")
	}

	if comm.Rank() != 0 {
		p = &packed{
			ints: make([]int64, status[1]),
			floats: make([]float64, status[2]),
		}
	}
	if err := comm.BcastInt64(p.ints, 0); err != nil { return nil, err }
	if err := comm.BcastFloat64(p.floats, 0); err != nil { return nil, err }

	return p.unpack()
}

// broadcastFailure tells every other rank that rank 0 couldn't read the
// restart data.
func broadcastFailure(comm Comm) error {
	return comm.BcastInt64(make([]int64, 3), 0)
}

// readPacked parses a restart stream.
func readPacked(rd io.Reader) (*packed, error) {
	hd := make([]uint32, 4)
	if err := binary.Read(rd, order, hd); err != nil { return nil, err }

	switch hd[0] {
	case MagicNumber:
	case ReverseMagicNumber:
		return nil, fmt.Errorf("The restart file was written with the " +
			"opposite byte order, which is not supported.")
	default:
		return nil, fmt.Errorf("This is not a restart file. Restart files " +
			"begin with the 32-bit integer %x, but this file begins with %x.",
			MagicNumber, hd[0])
	}

	if hd[1] > Version {
		return nil, fmt.Errorf("The restart file has version %d, but this " +
			"code can only read versions up to %d.", hd[1], Version)
	} else if hd[2] &^ Compressed != 0 {
		return nil, fmt.Errorf("The restart file has unrecognized flags %x.",
			hd[2])
	} else if hd[3] == 0 || hd[3] > 1<<16 {
		return nil, fmt.Errorf("The restart file claims to hold %d atom " +
			"types.", hd[3])
	}

	payload := rd
	if hd[2] & Compressed != 0 {
		var nBuf int64
		if err := binary.Read(rd, order, &nBuf); err != nil { return nil, err }
		if nBuf < 0 {
			return nil, fmt.Errorf("The restart file has a compressed " +
				"payload of negative size %d.", nBuf)
		}
		buf := make([]byte, nBuf)
		if _, err := io.ReadFull(rd, buf); err != nil { return nil, err }

		b, err := zstd.Decompress(nil, buf)
		if err != nil { return nil, err }
		payload = bytes.NewReader(b)
	}

	return readPayload(payload, int(hd[3]))
}

func readPayload(rd io.Reader, ntypes int) (*packed, error) {
	p := &packed{
		ints: []int64{ int64(ntypes), 0 },
		floats: make([]float64, 2),
	}

	if err := binary.Read(rd, order, p.floats); err != nil { return nil, err }
	var mix int32
	if err := binary.Read(rd, order, &mix); err != nil { return nil, err }
	p.ints[1] = int64(mix)

	vals := make([]float64, 4)
	for i := 1; i <= ntypes; i++ {
		for j := i; j <= ntypes; j++ {
			var set int32
			if err := binary.Read(rd, order, &set); err != nil {
				return nil, err
			}
			if set == 0 {
				p.ints = append(p.ints, 0)
				continue
			}
			p.ints = append(p.ints, 1)

			if err := binary.Read(rd, order, vals); err != nil {
				return nil, err
			}
			p.floats = append(p.floats, vals...)
		}
	}

	return p, nil
}

// unpack rebuilds the table described by p.
func (p *packed) unpack() (*pair.Table, error) {
	if len(p.ints) < 2 || len(p.floats) < 2 {
		return nil, fmt.Errorf("Broadcast restart data is truncated.")
	}

	ntypes := int(p.ints[0])
	t, err := pair.NewTable(ntypes)
	if err != nil { return nil, err }
	if len(p.ints) != 2 + ntypes*(ntypes + 1)/2 {
		return nil, fmt.Errorf("Broadcast restart data has %d set flags " +
			"for %d types.", len(p.ints) - 2, ntypes)
	}

	mix := pair.MixRule(p.ints[1])
	if err := t.SetMix(mix); err != nil { return nil, err }
	// Zero cutoffs mean the global cutoffs were never set.
	if cutLJ, cutCoul := p.floats[0], p.floats[1]; cutLJ != 0 || cutCoul != 0 {
		if err := t.SetCutoffs(cutLJ, cutCoul); err != nil {
			return nil, fmt.Errorf("The restart file holds invalid global " +
				"cutoffs: %w", err)
		}
	}

	k, f := 2, 2
	for i := 1; i <= ntypes; i++ {
		for j := i; j <= ntypes; j++ {
			set := p.ints[k] != 0
			k++
			if !set { continue }

			if f + 4 > len(p.floats) {
				return nil, fmt.Errorf("Broadcast restart data is missing " +
					"the values of pair (%d, %d).", i, j)
			}
			v := p.floats[f: f + 4]
			f += 4

			if err := t.Restore(i, j, v[0], v[1], v[2], v[3]); err != nil {
				return nil, fmt.Errorf("The restart file holds invalid " +
					"coefficients for pair (%d, %d): %w", i, j, err)
			}
			if _, err := t.InitOne(i, j); err != nil { return nil, err }
		}
	}

	return t, nil
}
