package classifier

import "github.com/crimson-sun/loglens/internal/engine/taxonomy"

// Unmatched is the label returned when no rule matches.
const Unmatched = "UNKNOWN"

// Result holds the outcome of classifying one line.
type Result struct {
	Rule    taxonomy.Rule
	Matched bool
}

// Label returns the matched rule name, or Unmatched.
func (r Result) Label() string {
	if !r.Matched {
		return Unmatched
	}
	return r.Rule.Name
}

// Classifier evaluates an ordered rule table against text. The first rule
// that matches wins.
type Classifier struct {
	rules []taxonomy.Rule
}

// New creates a Classifier over rules, which must already be in priority order.
func New(rules []taxonomy.Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the first rule matching text.
func (c *Classifier) Classify(text string) Result {
	for _, r := range c.rules {
		if r.Pattern.MatchString(text) {
			return Result{Rule: r, Matched: true}
		}
	}
	return Result{}
}

// Any reports whether at least one rule matches text.
func (c *Classifier) Any(text string) bool {
	return c.Classify(text).Matched
}
