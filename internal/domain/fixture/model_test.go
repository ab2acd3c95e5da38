package fixture

import "testing"

func TestFixture_Label(t *testing.T) {
	tests := []struct {
		home, away, want string
	}{
		{home: "Maccabi Haifa", away: "Hapoel Beer Sheva", want: "Maccabi Haifa vs Hapoel Beer Sheva"},
		{home: "Maccabi Haifa", away: "", want: "Maccabi Haifa"},
		{home: "", away: "Hapoel Beer Sheva", want: "Hapoel Beer Sheva"},
	}

	for _, tc := range tests {
		if got := (Fixture{HomeTeam: tc.home, AwayTeam: tc.away}).Label(); got != tc.want {
			t.Fatalf("Label() = %q, want %q", got, tc.want)
		}
	}
}

func TestSplitLabel(t *testing.T) {
	home, away := SplitLabel(" Maccabi Haifa vs Hapoel Beer Sheva ")
	if home != "Maccabi Haifa" || away != "Hapoel Beer Sheva" {
		t.Fatalf("unexpected split: %q / %q", home, away)
	}

	home, away = SplitLabel("Friendly")
	if home != "Friendly" || away != "" {
		t.Fatalf("unexpected split without separator: %q / %q", home, away)
	}
}
