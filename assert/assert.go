package assert

import "github.com/oomph-ac/locomotion/oerror"

// IsTrue panics with a formatted error if ok is false. It is only used for conditions that cannot be
// broken outside of a programming mistake.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
