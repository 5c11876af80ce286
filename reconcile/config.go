package reconcile

// Config controls the matching policy. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// Threshold is the minimum normalized similarity, in [0, 1], at which
	// a candidate span replaces an object's content. A score exactly at
	// the threshold is accepted.
	Threshold float64

	// Window is how many span positions past the cursor are considered
	// as candidate starting points for each object. Candidate search is
	// windowed, not exhaustive: both pipelines read the page in roughly
	// the same order, so a good match is expected near the cursor.
	Window int

	// MaxJoin is the maximum number of adjacent spans concatenated into
	// one candidate, to tolerate text the alternate source split across
	// lines.
	MaxJoin int

	// Patience is how many consecutive objects may fail to match before
	// the matcher gives up on the remainder of the page.
	Patience int

	// UseRawText selects which text wins on an accepted match. When
	// true, the span's text replaces the object's content; when false, a
	// match only advances the cursor and the object keeps its extracted
	// text.
	UseRawText bool
}

// DefaultConfig returns the standard matching policy.
func DefaultConfig() Config {
	return Config{
		Threshold:  0.8,
		Window:     10,
		MaxJoin:    3,
		Patience:   10,
		UseRawText: true,
	}
}
