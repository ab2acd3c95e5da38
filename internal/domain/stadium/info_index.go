package stadium

// InfoIndex resolves descriptive metadata by stadium name, then city name.
// When several entries share a key the first one in input order is kept.
type InfoIndex struct {
	items     []Info
	byStadium map[string]int
	byCity    map[string]int
}

func BuildInfoIndex(items []Info) *InfoIndex {
	idx := &InfoIndex{
		items:     append([]Info(nil), items...),
		byStadium: make(map[string]int, len(items)),
		byCity:    make(map[string]int, len(items)),
	}

	for pos, item := range idx.items {
		if name := NormalizeName(item.Stadium); name != "" {
			if _, exists := idx.byStadium[name]; !exists {
				idx.byStadium[name] = pos
			}
		}
		if city := NormalizeName(item.City); city != "" {
			if _, exists := idx.byCity[city]; !exists {
				idx.byCity[city] = pos
			}
		}
	}

	return idx
}

func (i *InfoIndex) Lookup(stadiumName, cityName string) (Info, bool) {
	if i == nil {
		return Info{}, false
	}
	if pos, ok := i.byStadium[NormalizeName(stadiumName)]; ok {
		return i.items[pos], true
	}
	if pos, ok := i.byCity[NormalizeName(cityName)]; ok {
		return i.items[pos], true
	}
	return Info{}, false
}

func (i *InfoIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.items)
}
