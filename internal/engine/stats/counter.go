package stats

import "sort"

// KeyCount is a key with its occurrence count.
type KeyCount struct {
	Key   string
	Count int
}

// Counter counts string keys while remembering first-seen order, so that
// rankings are deterministic.
type Counter struct {
	index map[string]int
	items []KeyCount
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increments key by one.
func (c *Counter) Add(key string) {
	if i, ok := c.index[key]; ok {
		c.items[i].Count++
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, KeyCount{Key: key, Count: 1})
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.items) }

// Ranked returns keys by descending count. Ties keep first-seen order.
func (c *Counter) Ranked() []KeyCount {
	out := append([]KeyCount(nil), c.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
