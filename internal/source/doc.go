// Package source loads complete log documents for analysis. Sources are
// registered by kind; file and stdin implementations live in subpackages
// and register themselves on import.
package source
