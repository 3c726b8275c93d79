// Package testdata embeds fixture logs shared by engine and pipeline tests.
package testdata

import (
	"embed"
	"fmt"
)

//go:embed *.log
var fixtures embed.FS

// Sample is a small mixed-format application log. It has 11 lines counting
// the trailing newline, one of them blank.
func Sample() string {
	return MustLoad("sample.log")
}

// Load returns the named fixture.
func Load(name string) (string, error) {
	b, err := fixtures.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("load fixture %s: %w", name, err)
	}
	return string(b), nil
}

// MustLoad is Load for tests; it panics on a missing fixture.
func MustLoad(name string) string {
	s, err := Load(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names lists every embedded fixture.
func Names() []string {
	entries, _ := fixtures.ReadDir(".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
