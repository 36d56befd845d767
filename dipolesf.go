package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/phil-mansfield/dipolesf/lib"
	"github.com/phil-mansfield/dipolesf/lib/error"
	"github.com/phil-mansfield/dipolesf/lib/restart"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout,
		&slog.HandlerOptions{ Level: slog.LevelInfo })))

	// Parse arguments.
	mode, file, overrides, err := lib.ParseCommandLine(os.Args[1:])
	if err != nil { error.External("%s", err.Error()) }

	// Run the chosen mode.
	switch mode {
	case lib.HelpMode:
		lib.PrintHelp(os.Stdout)
	case lib.CheckMode:
		Check(file, overrides)
	case lib.ComputeMode:
		Compute(file, overrides)
	case lib.RestartMode:
		if len(overrides) > 0 {
			error.External("The restart mode doesn't take any command " +
				"line arguments after the file name.")
		}
		Restart(file)
	}
}

// Check runs dipolesf's "check" mode, which tests for errors in the config
// file.
func Check(file string, overrides []lib.Override) {
	c, _, err := lib.ReadDeck(file, overrides)
	error.Check(err, "reading the config file")

	ok, err := lib.Check(c, lib.ComputeMode, lib.WarnOnError)
	error.Check(err, "checking the config file")
	if ok {
		fmt.Println("No errors detected.")
	}
}

// Compute runs dipolesf's "compute" mode, which evaluates every pair of the
// configured lattice once.
func Compute(file string, overrides []lib.Override) {
	c, deck, err := lib.ReadDeck(file, overrides)
	error.Check(err, "reading the config file")
	_, err = lib.Check(c, lib.ComputeMode, lib.CrashOnError)
	error.Check(err, "checking the config file")

	r, err := lib.Compute(c, deck)
	error.Check(err, "running the compute pass")

	slog.Info("neighbor list",
		"owned", humanize.Comma(int64(r.NLocal)),
		"ghosts", humanize.Comma(int64(r.NGhost)),
		"pairs", humanize.Comma(int64(r.Pairs)),
		"cut", r.Cut, "newton", r.Newton)
	slog.Info("energy",
		"evdwl", r.EVdwl, "ecoul", r.ECoul, "total", r.EVdwl + r.ECoul)
	slog.Info("virial",
		"xx", r.Virial[0], "yy", r.Virial[1], "zz", r.Virial[2],
		"xy", r.Virial[3], "xz", r.Virial[4], "yz", r.Virial[5],
		"principal", r.PrincipalVirial[:], "pressure", r.Pressure)
	slog.Info("extrema", "max_force", r.MaxForce, "max_torque", r.MaxTorque)

	if c.Output.Restart != "" {
		slog.Info("wrote restart file", "file", c.Output.Restart,
			"compressed", c.Output.Compress)
	}
	if c.Output.ThermoDB != "" {
		slog.Info("recorded thermo sample", "db", c.Output.ThermoDB,
			"run", r.Run.String())
	}
}

// Restart runs dipolesf's "restart" mode, which summarizes a restart file.
func Restart(file string) {
	info, err := os.Stat(file)
	error.Check(err, "opening the restart file")

	s, err := lib.SummarizeRestart(file, restart.Serial{ })
	error.Check(err, "reading the restart file")

	slog.Info("restart file", "file", file,
		"size", humanize.Bytes(uint64(info.Size())),
		"ntypes", s.NTypes, "set_pairs", s.SetPairs,
		"mix", s.Settings.Mix.String(),
		"cut_lj", s.Settings.CutLJ, "cut_coul", s.Settings.CutCoul)

	if s.InitErr != nil {
		slog.Warn("table can't be finalized", "err", s.InitErr)
		return
	}
	slog.Info("finalized table", "cut", s.Cut)

	for i := 1; i <= s.NTypes; i++ {
		for j := i; j <= s.NTypes; j++ {
			e := s.Table.Entry(i, j)
			slog.Info("pair", "i", i, "j", j, "set", e.Set,
				"epsilon", e.Epsilon, "sigma", e.Sigma,
				"cut_lj", e.CutLJ, "cut_coul", e.CutCoul)
		}
	}
}
