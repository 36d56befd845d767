/*package error contains simple functions for reporting fatal dipolesf errors.
Library packages return errors; only main-level code should call these.
*/
package error

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// exit is swapped out by tests.
var exit = os.Exit

// External reports an error to stderr and kills the program. It should be used
// when an error is something a user could reasonably be expected to fix
// through changes in configuration/data/environment, such as a bad cutoff or
// a coefficient range outside the number of atom types. It has the same
// signature as the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	log.Printf("dipolesf exited early with the following error:\n"+format, a...)
	exit(1)
}

// Internal reports an error to stderr along with a stack trace and kills the
// program. It should be used when the error requires a code dive to fix. It
// has the same signature as the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	log.Println("dipolesf exited early with the following error:")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	exit(1)
}

// Check calls External with the message of err if err is non-nil. context
// describes what was being attempted, e.g. "reading the restart file".
func Check(err error, context string) {
	if err == nil { return }
	External("Error while %s: %s", context, err.Error())
}
