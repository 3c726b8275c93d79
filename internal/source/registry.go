package source

import (
	"fmt"
	"sort"
	"strings"
)

// Constructor is a function that creates a new Source instance.
type Constructor func() Source

var registry = map[string]Constructor{}

// Register adds a source constructor under the given kind.
func Register(kind string, ctor Constructor) {
	registry[kind] = ctor
}

// Get returns the source constructor for the given kind.
func Get(kind string) (Constructor, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown source kind: %s (registered: %s)", kind, strings.Join(Kinds(), ", "))
	}
	return ctor, nil
}

// Kinds returns the names of all registered sources, sorted.
func Kinds() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
