package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule is one named matcher in a classification table. Lower Priority values
// are evaluated first.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Priority int
}

// TimestampFormat pairs a surface pattern, which locates a timestamp inside a
// line, with the layouts tried against the located text.
type TimestampFormat struct {
	Name     string
	Surface  *regexp.Regexp
	Priority int
}

// Taxonomy holds the ordered rule tables used by the line parser.
type Taxonomy struct {
	levels     []Rule
	signatures []Rule
	timestamps []TimestampFormat
	layouts    []string
}

// New builds a Taxonomy. Each table is stably sorted by priority, so rules
// sharing a priority keep their declaration order.
func New(levels, signatures []Rule, timestamps []TimestampFormat, layouts []string) (*Taxonomy, error) {
	if len(layouts) == 0 && len(timestamps) > 0 {
		return nil, fmt.Errorf("taxonomy: %d timestamp formats but no layouts", len(timestamps))
	}
	for _, r := range append(append([]Rule{}, levels...), signatures...) {
		if r.Pattern == nil {
			return nil, fmt.Errorf("taxonomy: rule %q has no pattern", r.Name)
		}
	}
	for _, f := range timestamps {
		if f.Surface == nil {
			return nil, fmt.Errorf("taxonomy: timestamp format %q has no surface pattern", f.Name)
		}
	}

	t := &Taxonomy{
		levels:     sortRules(levels),
		signatures: sortRules(signatures),
		timestamps: append([]TimestampFormat(nil), timestamps...),
		layouts:    append([]string(nil), layouts...),
	}
	sort.SliceStable(t.timestamps, func(i, j int) bool {
		return t.timestamps[i].Priority < t.timestamps[j].Priority
	})
	return t, nil
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	t, err := New(DefaultLevels(), DefaultSignatures(), DefaultTimestampFormats(), DefaultLayouts())
	if err != nil {
		panic(err)
	}
	return t
}

// Levels returns the level classifiers in evaluation order.
func (t *Taxonomy) Levels() []Rule { return t.levels }

// Signatures returns the error signatures in evaluation order.
func (t *Taxonomy) Signatures() []Rule { return t.signatures }

// Timestamps returns the timestamp surface patterns in evaluation order.
func (t *Taxonomy) Timestamps() []TimestampFormat { return t.timestamps }

// Layouts returns the time layouts tried against a matched timestamp.
func (t *Taxonomy) Layouts() []string { return t.layouts }

func sortRules(rules []Rule) []Rule {
	out := append([]Rule(nil), rules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
