package dfa

// Options configures a single Run call.
type Options struct {
	// ShortestMatch stops at the first match found rather than continuing to
	// look for a longer one, matching Go's regexp "shortest match" mode used
	// when the caller only needs a boolean answer.
	ShortestMatch bool
}
