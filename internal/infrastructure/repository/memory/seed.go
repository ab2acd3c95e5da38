package memory

import (
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

func SeedCoordinates() []stadium.RawCoordinateRow {
	return []stadium.RawCoordinateRow{
		{Stadium: "Sammy Ofer Stadium", City: "Haifa", Latitude: "32.7833", Longitude: "34.9653", StadiumURL: "https://en.wikipedia.org/wiki/Sammy_Ofer_Stadium"},
		{Stadium: "Bloomfield Stadium", City: "Tel Aviv", Latitude: "32.0522", Longitude: "34.7614", StadiumURL: "https://en.wikipedia.org/wiki/Bloomfield_Stadium"},
		{Stadium: "Teddy Stadium", City: "Jerusalem", Latitude: "31.7511", Longitude: "35.1908", StadiumURL: "https://en.wikipedia.org/wiki/Teddy_Stadium"},
		{Stadium: "Turner Stadium", City: "Beersheba", Latitude: "31.2728", Longitude: "34.7792", StadiumURL: "https://en.wikipedia.org/wiki/Turner_Stadium"},
		{Stadium: "HaMoshava Stadium", City: "Petah Tikva", Latitude: "32.1042", Longitude: "34.8650", StadiumURL: "https://en.wikipedia.org/wiki/HaMoshava_Stadium"},
		{Stadium: "Netanya Stadium", City: "Netanya", Latitude: "32.2950", Longitude: "34.8653", StadiumURL: "https://en.wikipedia.org/wiki/Netanya_Stadium"},
	}
}

func SeedFixtures() []fixture.Fixture {
	day := func(v string) time.Time {
		t, _ := time.Parse(fixture.DateLayout, v)
		return t
	}

	return []fixture.Fixture{
		{HomeTeam: "Maccabi Haifa", AwayTeam: "Hapoel Be'er Sheva", Stadium: "Sammy Ofer Stadium", City: "Haifa", Date: day("2024-03-02"), Day: "Sat", Time: "20:30"},
		{HomeTeam: "Maccabi Tel Aviv", AwayTeam: "Beitar Jerusalem", Stadium: "Bloomfield Stadium", City: "Tel Aviv", Date: day("2024-03-03"), Day: "Sun", Time: "21:00"},
		{HomeTeam: "Beitar Jerusalem", AwayTeam: "Maccabi Netanya", Stadium: "Teddy Stadium", City: "Jerusalem", Date: day("2024-03-09"), Day: "Sat", Time: "19:00"},
		{HomeTeam: "Hapoel Be'er Sheva", AwayTeam: "Hapoel Tel Aviv", Stadium: "Turner Stadium", City: "Beersheba", Date: day("2024-03-10"), Day: "Sun", Time: "20:00"},
		{HomeTeam: "Hapoel Tel Aviv", AwayTeam: "Maccabi Haifa", Stadium: "Bloomfield Stadium", City: "Tel Aviv", Date: day("2024-03-16"), Day: "Sat", Time: "20:30"},
		{HomeTeam: "Maccabi Petah Tikva", AwayTeam: "Bnei Sakhnin", Stadium: "HaMoshava Stadium", City: "Petah Tikva", Date: day("2024-03-16"), Day: "Sat", Time: "18:00"},
		{HomeTeam: "Maccabi Netanya", AwayTeam: "Maccabi Petah Tikva", Stadium: "Netanya Stadium", City: "Netanya", Date: day("2024-03-17"), Day: "Sun", Time: "19:30"},
	}
}

func SeedInfos() []stadium.Info {
	capacity := func(v int) *int { return &v }

	return []stadium.Info{
		{Stadium: "Sammy Ofer Stadium", City: "Haifa", Capacity: capacity(30780), FieldSize: "105 x 68 m", OpenedDate: "27 August 2014"},
		{Stadium: "Bloomfield Stadium", City: "Tel Aviv", Capacity: capacity(29400), FieldSize: "105 x 68 m", OpenedDate: "1962"},
		{Stadium: "Teddy Stadium", City: "Jerusalem", Capacity: capacity(31733), FieldSize: "105 x 68 m", OpenedDate: "1991"},
		{Stadium: "Turner Stadium", City: "Beersheba", Capacity: capacity(16126), FieldSize: "105 x 68 m", OpenedDate: "22 September 2015"},
	}
}
