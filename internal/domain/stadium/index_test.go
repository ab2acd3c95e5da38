package stadium

import "testing"

func TestBuildCoordinateIndex_SkipsInvalidRows(t *testing.T) {
	idx := BuildCoordinateIndex([]RawCoordinateRow{
		{Stadium: "Sammy Ofer", City: "Haifa", Latitude: "32.79", Longitude: "34.96"},
		{Stadium: "Broken", City: "Nowhere", Latitude: "abc", Longitude: "34.0"},
		{Stadium: "Out of range", Latitude: "120", Longitude: "34.0"},
		{Stadium: "", City: "", Latitude: "31.0", Longitude: "35.0"},
	})

	if got := idx.StadiumCount(); got != 1 {
		t.Fatalf("expected 1 stadium entry, got %d", got)
	}
	if got := idx.CityCount(); got != 1 {
		t.Fatalf("expected 1 city entry, got %d", got)
	}
	if _, ok := idx.Lookup("broken", "nowhere"); ok {
		t.Fatalf("expected unparseable row to be skipped")
	}
}

func TestCoordinateIndex_LookupNormalizesNames(t *testing.T) {
	idx := BuildCoordinateIndex([]RawCoordinateRow{
		{Stadium: "Sammy Ofer", City: "Haifa", Latitude: " 32.79 ", Longitude: "34.96"},
	})

	for _, name := range []string{"sammy ofer", "  SAMMY OFER ", "Sammy Ofer"} {
		coords, ok := idx.Lookup(name, "")
		if !ok {
			t.Fatalf("expected lookup %q to resolve", name)
		}
		if coords.Latitude != 32.79 || coords.Longitude != 34.96 {
			t.Fatalf("unexpected coordinates for %q: %+v", name, coords)
		}
	}
}

func TestCoordinateIndex_LookupFallsBackToCity(t *testing.T) {
	idx := BuildCoordinateIndex([]RawCoordinateRow{
		{City: "Tel Aviv", Latitude: "32.08", Longitude: "34.78"},
		{Stadium: "Teddy", City: "Jerusalem", Latitude: "31.75", Longitude: "35.19"},
	})

	coords, ok := idx.Lookup("Unknown Arena", "tel aviv")
	if !ok || coords.Latitude != 32.08 {
		t.Fatalf("expected city fallback, got %+v ok=%v", coords, ok)
	}

	coords, ok = idx.Lookup("teddy", "tel aviv")
	if !ok || coords.Latitude != 31.75 {
		t.Fatalf("expected stadium match to win over city, got %+v ok=%v", coords, ok)
	}

	if _, ok := idx.Lookup("Unknown Arena", "Eilat"); ok {
		t.Fatalf("expected miss for unknown stadium and city")
	}
}

func TestCoordinateIndex_LastRowWins(t *testing.T) {
	idx := BuildCoordinateIndex([]RawCoordinateRow{
		{Stadium: "Bloomfield", Latitude: "1", Longitude: "1"},
		{Stadium: "bloomfield ", Latitude: "32.05", Longitude: "34.76"},
	})

	coords, ok := idx.Lookup("Bloomfield", "")
	if !ok || coords.Latitude != 32.05 {
		t.Fatalf("expected later row to win, got %+v", coords)
	}
}

func TestCoordinateIndex_NilIsEmpty(t *testing.T) {
	var idx *CoordinateIndex
	if _, ok := idx.Lookup("x", "y"); ok {
		t.Fatalf("expected nil index to miss")
	}
	if idx.Records() != nil || idx.StadiumCount() != 0 {
		t.Fatalf("expected nil index to be empty")
	}
}

func TestCoordinateIndex_Records(t *testing.T) {
	idx := BuildCoordinateIndex([]RawCoordinateRow{
		{Stadium: "Teddy", City: "Jerusalem", Latitude: "31.75", Longitude: "35.19"},
		{Stadium: "Bloomfield", Latitude: "32.05", Longitude: "34.76"},
	})

	records := idx.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Name != "bloomfield" || records[0].Kind != KindPrimary {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[2].Name != "jerusalem" || records[2].Kind != KindCity {
		t.Fatalf("unexpected last record: %+v", records[2])
	}
}
