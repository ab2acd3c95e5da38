package fixture

// Group is the set of fixtures played at one normalized stadium name.
type Group struct {
	Key      string
	Fixtures []Fixture
}

// Grouped maps normalized stadium names to fixtures, remembering the order in
// which keys were first seen.
type Grouped struct {
	groups []Group
	index  map[string]int
}

// GroupByStadium partitions fixtures by normalized stadium name. Fixtures
// without a stadium share the empty key.
func GroupByStadium(fixtures []Fixture) Grouped {
	out := Grouped{index: make(map[string]int)}
	for _, item := range fixtures {
		key := normalize(item.Stadium)
		pos, ok := out.index[key]
		if !ok {
			pos = len(out.groups)
			out.index[key] = pos
			out.groups = append(out.groups, Group{Key: key})
		}
		out.groups[pos].Fixtures = append(out.groups[pos].Fixtures, item)
	}
	return out
}

func (g Grouped) Len() int {
	return len(g.groups)
}

func (g Grouped) Keys() []string {
	out := make([]string, 0, len(g.groups))
	for _, group := range g.groups {
		out = append(out, group.Key)
	}
	return out
}

func (g Grouped) Get(key string) ([]Fixture, bool) {
	pos, ok := g.index[key]
	if !ok {
		return nil, false
	}
	return g.groups[pos].Fixtures, true
}

// Groups returns every group in first-seen order.
func (g Grouped) Groups() []Group {
	return append([]Group(nil), g.groups...)
}
