package lib

import (
	"fmt"
)

// Mode is the mode dipolesf is being run in.
type Mode int
const (
	HelpMode Mode = iota
	CheckMode
	ComputeMode
	RestartMode
)

var modeNames = []string{ "help", "check", "compute", "restart" }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) { return fmt.Sprintf("Mode(%d)", m) }
	return modeNames[m]
}

// ParseMode converts the name of a mode into a Mode.
func ParseMode(name string) (Mode, error) {
	for i := range modeNames {
		if modeNames[i] == name { return Mode(i), nil }
	}
	return HelpMode, fmt.Errorf("You attempted to run dipolesf in the mode " +
		"'%s', but the only valid modes are 'help', 'check', 'compute', " +
		"and 'restart'.", name)
}

// CheckStrictness indicates how functions related to the "check" mode
// should behave when they encounter a problem.
type CheckStrictness int
const (
	CrashOnError CheckStrictness = iota
	WarnOnError
)
