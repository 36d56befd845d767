package lib

import (
	"fmt"
	"os"
	"strings"

	"github.com/phil-mansfield/dipolesf/lib/config"
)

// Override is a single --<Section>.<Key> <Value> command line argument.
type Override struct {
	Section, Key, Value string
}

// overridable lists the deck sections which can be changed from the command
// line. Coeff sections are named by type ranges and can't be addressed this
// way.
var overridable = []string{ "Settings", "Lattice", "Output" }

// multiValued lists the variables that gcfg appends to rather than replaces.
var multiValued = []string{ "Charge", "Dipole" }

// ParseCommandLine parses the command line arguments (without the program
// name) and returns the mode dipolesf is being run in, the name of its input
// file, and any overrides which were set. Expects that the arguments are
// presented in the order:
// $ dipolesf <mode> <file> [--<Arg1> <Value1>] [--<Arg2> <Value2>]
// The help mode doesn't need a file.
func ParseCommandLine(args []string) (mode Mode, file string,
	overrides []Override, err error) {
	if len(args) == 0 { return HelpMode, "", nil, nil }

	mode, err = ParseMode(args[0])
	if err != nil { return mode, "", nil, err }
	if mode == HelpMode { return mode, "", nil, nil }

	if len(args) < 2 || strings.HasPrefix(args[1], "--") {
		return mode, "", nil, fmt.Errorf("The '%s' mode requires a file " +
			"name as its second argument.", mode)
	}
	file = args[1]

	rest := args[2:]
	if len(rest) % 2 != 0 {
		return mode, "", nil, fmt.Errorf("The command line argument '%s' " +
			"was not given a value.", rest[len(rest) - 1])
	}

	for i := 0; i < len(rest); i += 2 {
		ov, err := parseOverride(rest[i], rest[i + 1])
		if err != nil { return mode, "", nil, err }
		overrides = append(overrides, ov)
	}

	return mode, file, overrides, nil
}

func parseOverride(flag, value string) (Override, error) {
	if !strings.HasPrefix(flag, "--") || len(flag) == 2 {
		return Override{ }, fmt.Errorf("Expected a command line argument " +
			"of the form --<Key>, but got '%s'.", flag)
	}
	name := flag[2:]

	section, key := "Settings", name
	if dot := strings.Index(name, "."); dot >= 0 {
		section, key = name[:dot], name[dot + 1:]
	}

	if !containsFold(overridable, section) {
		return Override{ }, fmt.Errorf("The command line argument '%s' " +
			"refers to the section '%s', but only the sections %s can be " +
			"set from the command line.", flag, section,
			strings.Join(overridable, ", "))
	} else if key == "" || strings.ContainsAny(key, " .=\"") {
		return Override{ }, fmt.Errorf("The command line argument '%s' " +
			"does not name a valid variable.", flag)
	} else if containsFold(multiValued, key) {
		return Override{ }, fmt.Errorf("%s takes one value per type and " +
			"cannot be set from the command line.", key)
	} else if strings.ContainsAny(value, "\n") {
		return Override{ }, fmt.Errorf("The value of '%s' contains a " +
			"newline.", flag)
	}

	return Override{ Section: section, Key: key, Value: value }, nil
}

func containsFold(list []string, s string) bool {
	for i := range list {
		if strings.EqualFold(list[i], s) { return true }
	}
	return false
}

// ApplyOverrides appends the overrides to the text of an input deck. Later
// assignments replace earlier ones, so the overrides take precedence over
// the deck.
func ApplyOverrides(deck string, overrides []Override) string {
	if len(overrides) == 0 { return deck }

	sb := &strings.Builder{ }
	sb.WriteString(deck)
	sb.WriteString("\n")
	for _, ov := range overrides {
		fmt.Fprintf(sb, "[%s]\n%s = %s\n", ov.Section, ov.Key, ov.Value)
	}
	return sb.String()
}

// ReadDeck reads the input deck fname, applies the command line overrides,
// and validates the result. It also returns the final text of the deck.
func ReadDeck(fname string, overrides []Override) (*config.Config,
	string, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, "", fmt.Errorf("Could not read config file %s: %w",
			fname, err)
	}

	text := ApplyOverrides(string(b), overrides)
	c, err := config.Parse(text)
	if err != nil {
		return nil, "", fmt.Errorf("Could not parse config file %s: %w",
			fname, err)
	}
	return c, text, nil
}
