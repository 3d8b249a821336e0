package assert

import "github.com/oomph-ac/stride/oerror"

// IsTrue panics with a StrideError built from message and args if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
