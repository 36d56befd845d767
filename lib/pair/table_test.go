package pair

import (
	"errors"
	"math"
	"testing"

	"github.com/phil-mansfield/dipolesf/lib/eq"
)

func TestParseMixRule(t *testing.T) {
	tests := []struct{
		s string
		mix MixRule
		valid bool
	} {
		{"geometric", Geometric, true},
		{"Arithmetic", Arithmetic, true},
		{" SIXTHPOWER ", SixthPower, true},
		{"harmonic", 0, false},
		{"", 0, false},
	}

	for i := range tests {
		mix, err := ParseMixRule(tests[i].s)
		if !tests[i].valid {
			if err == nil || !errors.Is(err, ErrConfig) {
				t.Errorf("%d) Expected ErrConfig for '%s', got %v.",
					i, tests[i].s, err)
			}
		} else if err != nil {
			t.Errorf("%d) Got error '%s' for '%s'.", i, err.Error(), tests[i].s)
		} else if mix != tests[i].mix {
			t.Errorf("%d) Expected %s, got %s.", i, tests[i].mix, mix)
		}
	}

	if MixRule(7).Valid() || MixRule(7).String() != "MixRule(7)" {
		t.Errorf("MixRule(7) should be invalid.")
	}
}

func TestMixing(t *testing.T) {
	tests := []struct{
		mix MixRule
		eps, sig, cut float64
	} {
		{Geometric, math.Sqrt(2), math.Sqrt(2), math.Sqrt(6)},
		{Arithmetic, math.Sqrt(2), 1.5, 2.5},
		{SixthPower, 2*math.Sqrt(2)*8/65, math.Pow(32.5, 1.0/6), 0},
	}

	for i := range tests {
		tab, _ := NewTable(2)
		tab.SetMix(tests[i].mix)
		if err := tab.Configure(1, 1, 1, 1, 1, 1, 2); err != nil {
			t.Fatalf("%d) Configure failed: %s", i, err.Error())
		}
		if err := tab.Configure(2, 2, 2, 2, 2, 2, 3); err != nil {
			t.Fatalf("%d) Configure failed: %s", i, err.Error())
		}

		cut, err := tab.InitOne(1, 2)
		if err != nil {
			t.Fatalf("%d) InitOne failed: %s", i, err.Error())
		}

		e := tab.Entry(2, 1)
		expCut := tests[i].cut
		if tests[i].mix == SixthPower {
			expCut = math.Pow((math.Pow(2, 6) + math.Pow(3, 6))/2, 1.0/6)
		}

		if !eq.Close(e.Epsilon, tests[i].eps, 0, 1e-12) {
			t.Errorf("%d) Expected epsilon = %g, got %g.",
				i, tests[i].eps, e.Epsilon)
		}
		if !eq.Close(e.Sigma, tests[i].sig, 0, 1e-12) {
			t.Errorf("%d) Expected sigma = %g, got %g.", i, tests[i].sig, e.Sigma)
		}
		if !eq.Close(cut, expCut, 0, 1e-12) || cut != e.CutLJ ||
			cut != e.CutCoul {
			t.Errorf("%d) Expected cutoffs = %g, got %g and %g (returned %g).",
				i, expCut, e.CutLJ, e.CutCoul, cut)
		}
		if e.Set {
			t.Errorf("%d) Mixed entry was marked as set.", i)
		}
	}
}

func TestInitOneIdempotent(t *testing.T) {
	tab, _ := NewTable(3)
	tab.SetCutoffs(2.5, 3.0)
	tab.Configure(1, 1, 1, 1, 1, 1)
	tab.Configure(2, 2, 2, 2, 0.5, 1.2)
	tab.Configure(3, 3, 3, 3, 0.8, 0.9, 2.0)
	tab.Configure(1, 1, 3, 3, 0.3, 0.7)

	if _, err := tab.Init(); err != nil {
		t.Fatalf("Init failed: %s", err.Error())
	}

	before := append([]Entry{ }, tab.entries...)
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			if _, err := tab.InitOne(i, j); err != nil {
				t.Fatalf("InitOne(%d, %d) failed: %s", i, j, err.Error())
			}
		}
	}

	for k := range before {
		if before[k] != tab.entries[k] {
			t.Errorf("Entry %d changed from %+v to %+v.",
				k, before[k], tab.entries[k])
		}
	}
}

func TestEntrySymmetry(t *testing.T) {
	tab, _ := NewTable(4)
	tab.SetCutoffs(2.5)
	tab.Configure(1, 4, 1, 4, 1, 1)
	tab.Configure(2, 2, 4, 4, 0.1, 0.2, 1.5)

	if _, err := tab.Init(); err != nil {
		t.Fatalf("Init failed: %s", err.Error())
	}

	for i := 1; i <= 4; i++ {
		for j := 1; j <= 4; j++ {
			if tab.Entry(i, j) != tab.Entry(j, i) {
				t.Errorf("Entry(%d, %d) and Entry(%d, %d) differ.", i, j, j, i)
			}
		}
	}

	e := tab.Entry(4, 2)
	if e.Epsilon != 0.1 || e.Sigma != 0.2 || e.CutLJ != 1.5 {
		t.Errorf("Expected the (2, 4) override, got %+v.", *e)
	}
}

func TestConfigureRanges(t *testing.T) {
	tab, _ := NewTable(3)
	tab.SetCutoffs(2)
	if err := tab.Configure(1, 3, 2, 3, 1, 1); err != nil {
		t.Fatalf("Configure failed: %s", err.Error())
	}

	set := [][2]int{ {1, 2}, {1, 3}, {2, 2}, {2, 3}, {3, 3} }
	unset := [][2]int{ {1, 1} }
	for _, ij := range set {
		if !tab.Entry(ij[0], ij[1]).Set {
			t.Errorf("Expected (%d, %d) to be set.", ij[0], ij[1])
		}
	}
	for _, ij := range unset {
		if tab.Entry(ij[0], ij[1]).Set {
			t.Errorf("Expected (%d, %d) to be unset.", ij[0], ij[1])
		}
	}
}

func TestConfigureErrors(t *testing.T) {
	tests := []struct{
		ilo, ihi, jlo, jhi int
		eps, sig float64
		cut []float64
	} {
		{0, 1, 1, 1, 1, 1, nil},
		{1, 1, 1, 4, 1, 1, nil},
		{2, 1, 1, 1, 1, 1, nil},
		{3, 3, 1, 2, 1, 1, nil},
		{1, 1, 1, 1, -1, 1, nil},
		{1, 1, 1, 1, 1, -1, nil},
		{1, 1, 1, 1, math.NaN(), 1, nil},
		{1, 1, 1, 1, 1, math.Inf(1), nil},
		{1, 1, 1, 1, 1, 1, []float64{ 0 }},
		{1, 1, 1, 1, 1, 1, []float64{ 1, -1 }},
		{1, 1, 1, 1, 1, 1, []float64{ 1, 1, 1 }},
	}

	for i := range tests {
		test := tests[i]
		tab, _ := NewTable(3)
		tab.SetCutoffs(2)
		err := tab.Configure(test.ilo, test.ihi, test.jlo, test.jhi,
			test.eps, test.sig, test.cut...)
		if err == nil || !errors.Is(err, ErrConfig) {
			t.Errorf("%d) Expected ErrConfig, got %v.", i, err)
		}
		for k := range tab.entries {
			if tab.entries[k].Set {
				t.Errorf("%d) Rejected Configure modified entry %d.", i, k)
			}
		}
	}

	tab, _ := NewTable(2)
	if err := tab.Configure(1, 1, 1, 1, 1, 1); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig without global cutoffs, got %v.", err)
	}
}

func TestSetCutoffs(t *testing.T) {
	tab, _ := NewTable(2)
	if err := tab.SetCutoffs(); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for no cutoffs, got %v.", err)
	}
	if err := tab.SetCutoffs(1, 2, 3); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for three cutoffs, got %v.", err)
	}
	if err := tab.SetCutoffs(-1); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for a negative cutoff, got %v.", err)
	}

	tab.SetCutoffs(2.5)
	if s := tab.Settings(); s.CutLJ != 2.5 || s.CutCoul != 2.5 {
		t.Errorf("Expected both cutoffs to be 2.5, got %+v.", s)
	}

	tab.Configure(1, 1, 1, 1, 1, 1)
	tab.Configure(2, 2, 2, 2, 1, 1, 1.5, 1.8)
	tab.SetCutoffs(3, 4)

	if e := tab.Entry(1, 1); e.CutLJ != 3 || e.CutCoul != 4 {
		t.Errorf("Expected (1, 1) to pick up the new defaults, got %+v.", *e)
	}
	if e := tab.Entry(2, 2); e.CutLJ != 1.5 || e.CutCoul != 1.8 {
		t.Errorf("Expected (2, 2) to keep its overrides, got %+v.", *e)
	}
}

func TestRestore(t *testing.T) {
	tests := []struct{
		i, j int
		eps, sig, cutLJ, cutCoul float64
	} {
		{0, 1, 1, 1, 2, 2},
		{1, 3, 1, 1, 2, 2},
		{1, 1, -1, 1, 2, 2},
		{1, 1, 1, math.NaN(), 2, 2},
		{1, 1, 1, 1, -2, 2},
		{1, 1, 1, 1, 2, math.NaN()},
		{1, 1, 1, 1, math.Inf(1), 2},
		{1, 1, 1, 1, 2, 0},
	}

	for i := range tests {
		test := tests[i]
		tab, _ := NewTable(2)
		tab.SetCutoffs(2)
		err := tab.Restore(test.i, test.j, test.eps, test.sig,
			test.cutLJ, test.cutCoul)
		if err == nil || !errors.Is(err, ErrConfig) {
			t.Errorf("%d) Expected ErrConfig, got %v.", i, err)
		}
		for k := range tab.entries {
			if tab.entries[k].Set {
				t.Errorf("%d) Rejected Restore modified entry %d.", i, k)
			}
		}
	}

	// Restored cutoffs which match the global ones are defaults.
	tab, _ := NewTable(2)
	tab.SetCutoffs(2.5, 3)
	if err := tab.Restore(1, 1, 1, 1, 2.5, 3); err != nil {
		t.Fatalf("Restore failed: %s", err.Error())
	}
	if err := tab.Restore(2, 2, 1, 1, 1.5, 3); err != nil {
		t.Fatalf("Restore failed: %s", err.Error())
	}
	tab.SetCutoffs(4)

	if e := tab.Entry(1, 1); e.CutLJ != 4 || e.CutCoul != 4 {
		t.Errorf("Expected (1, 1) to pick up the new defaults, got %+v.", *e)
	}
	if e := tab.Entry(2, 2); e.CutLJ != 1.5 || e.CutCoul != 3 {
		t.Errorf("Expected (2, 2) to keep its overrides, got %+v.", *e)
	}
}

func TestInitErrors(t *testing.T) {
	tab, _ := NewTable(2)
	tab.SetCutoffs(2.5)
	tab.Configure(1, 1, 1, 1, 1, 1)

	if _, err := tab.Init(); !errors.Is(err, ErrPrecondition) {
		t.Errorf("Expected ErrPrecondition for a missing diagonal, got %v.", err)
	}
	if tab.Finalized() {
		t.Errorf("Table was finalized despite an error.")
	}

	tab.Configure(1, 2, 2, 2, 1, 1)
	cut, err := tab.Init()
	if err != nil {
		t.Fatalf("Init failed: %s", err.Error())
	} else if cut != 2.5 {
		t.Errorf("Expected maximum cutoff 2.5, got %g.", cut)
	} else if !tab.Finalized() {
		t.Errorf("Table was not finalized.")
	}

	tab.SetMix(Geometric)
	if tab.Finalized() {
		t.Errorf("SetMix did not invalidate the table.")
	}

	if _, err := NewTable(0); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for zero types, got %v.", err)
	}
}

func TestDerive(t *testing.T) {
	tab, _ := NewTable(1)
	tab.Configure(1, 1, 1, 1, 2, 1.5, 2.0, 3.0)
	cut, _ := tab.Init()

	e := tab.Entry(1, 1)
	sig6 := math.Pow(1.5, 6)
	sig12 := sig6*sig6
	exp := []float64{ 48*2*sig12, 24*2*sig6, 4*2*sig12, 4*2*sig6 }
	got := []float64{ e.LJ1, e.LJ2, e.LJ3, e.LJ4 }

	if !eq.Float64sEps(exp, got, 1e-9) {
		t.Errorf("Expected LJ prefactors %v, got %v.", exp, got)
	}
	if cut != 3 || e.CutSq != 9 || e.CutLJSq != 4 || e.CutCoulSq != 9 {
		t.Errorf("Unexpected cached cutoffs %+v.", *e)
	}
}
