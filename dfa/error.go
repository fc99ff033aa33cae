package dfa

import "errors"

// ErrWordBoundaryNonASCII is returned by Run when the compiled program
// contains a word-boundary assertion and the cursor crosses a non-ASCII
// byte, which the byte DFA cannot locally classify as word/non-word without
// decoding the full scalar. Callers fall back to the NFA on this error.
var ErrWordBoundaryNonASCII = errors.New("dfa: cannot evaluate word boundary across non-ASCII byte")
