package fixture

import "testing"

func TestGroupByStadium_PartitionsFixtures(t *testing.T) {
	fixtures := []Fixture{
		{HomeTeam: "A", Stadium: "Sammy Ofer"},
		{HomeTeam: "B", Stadium: "Bloomfield"},
		{HomeTeam: "C", Stadium: " sammy ofer "},
		{HomeTeam: "D", Stadium: ""},
	}

	grouped := GroupByStadium(fixtures)

	if grouped.Len() != 3 {
		t.Fatalf("expected 3 groups, got %d", grouped.Len())
	}
	wantKeys := []string{"sammy ofer", "bloomfield", ""}
	for i, key := range grouped.Keys() {
		if key != wantKeys[i] {
			t.Fatalf("expected key %q at %d, got %q", wantKeys[i], i, key)
		}
	}

	total := 0
	for _, group := range grouped.Groups() {
		total += len(group.Fixtures)
	}
	if total != len(fixtures) {
		t.Fatalf("expected %d fixtures across groups, got %d", len(fixtures), total)
	}

	sammy, ok := grouped.Get("sammy ofer")
	if !ok || len(sammy) != 2 || sammy[0].HomeTeam != "A" || sammy[1].HomeTeam != "C" {
		t.Fatalf("unexpected sammy ofer group: %+v", sammy)
	}
	if empty, ok := grouped.Get(""); !ok || len(empty) != 1 {
		t.Fatalf("expected fixtures without stadium under the empty key")
	}
}

func TestGroupByStadium_Empty(t *testing.T) {
	grouped := GroupByStadium(nil)
	if grouped.Len() != 0 || len(grouped.Keys()) != 0 {
		t.Fatalf("expected no groups")
	}
	if _, ok := grouped.Get("x"); ok {
		t.Fatalf("expected miss on empty grouping")
	}
}
