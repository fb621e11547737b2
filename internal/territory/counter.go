package territory

import "sort"

// counter is a frequency table that remembers first-seen insertion order,
// which is the documented tie-break for top-N lists. A plain map would
// make ties depend on randomized iteration order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) inc(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// NameCount is one entry of a top-N frequency list.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// topN returns the n highest-frequency entries; ties keep first-seen order.
func (c *counter) topN(n int) []NameCount {
	if n <= 0 || len(c.order) == 0 {
		return []NameCount{}
	}

	entries := make([]NameCount, len(c.order))
	for i, name := range c.order {
		entries[i] = NameCount{Name: name, Count: c.counts[name]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (c *counter) asMap() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
