package httpapi

import (
	"html"
	"strconv"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/matchmap"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type markersResponse struct {
	Markers    []markerDTO `json:"markers"`
	Count      int         `json:"count"`
	Matches    int         `json:"matches"`
	Bounds     *boundsDTO  `json:"bounds,omitempty"`
	Unresolved []string    `json:"unresolved"`
}

type markerDTO struct {
	Key       string     `json:"key"`
	Stadium   string     `json:"stadium"`
	City      string     `json:"city"`
	Latitude  float64    `json:"lat"`
	Longitude float64    `json:"lng"`
	PopupHTML string     `json:"popup_html"`
	Info      *infoDTO   `json:"info,omitempty"`
	Matches   []matchDTO `json:"matches"`
}

type infoDTO struct {
	Capacity   *int   `json:"capacity,omitempty"`
	FieldSize  string `json:"field_size,omitempty"`
	OpenedDate string `json:"opened_date,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	URL        string `json:"url,omitempty"`
}

type matchDTO struct {
	Label    string `json:"label"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Date     string `json:"date"`
	Day      string `json:"day,omitempty"`
	Time     string `json:"time"`
}

type pointDTO struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type boundsDTO struct {
	SouthWest pointDTO `json:"south_west"`
	NorthEast pointDTO `json:"north_east"`
}

type datasetResponse struct {
	Version        string    `json:"version"`
	LoadedAt       time.Time `json:"loaded_at"`
	Fixtures       int       `json:"fixtures"`
	Stadiums       int       `json:"stadiums"`
	Cities         int       `json:"cities"`
	StadiumInfos   int       `json:"stadium_infos"`
	LoadDurationMS int64     `json:"load_duration_ms"`
}

func markersResponseFromResolution(res matchmap.Resolution) markersResponse {
	out := markersResponse{
		Markers:    make([]markerDTO, 0, len(res.Groups)),
		Count:      len(res.Groups),
		Matches:    res.FixtureCount(),
		Unresolved: res.Unresolved,
	}
	if out.Unresolved == nil {
		out.Unresolved = []string{}
	}
	if res.Bounds.Valid() {
		out.Bounds = &boundsDTO{
			SouthWest: pointDTO{Latitude: res.Bounds.SouthWest.Latitude, Longitude: res.Bounds.SouthWest.Longitude},
			NorthEast: pointDTO{Latitude: res.Bounds.NorthEast.Latitude, Longitude: res.Bounds.NorthEast.Longitude},
		}
	}

	for _, group := range res.Groups {
		out.Markers = append(out.Markers, markerFromGroup(group))
	}
	return out
}

func markerFromGroup(group matchmap.ResolvedGroup) markerDTO {
	marker := markerDTO{
		Key:       group.Key,
		Stadium:   group.Stadium,
		City:      group.City,
		Latitude:  group.Coordinates.Latitude,
		Longitude: group.Coordinates.Longitude,
		PopupHTML: popupHTML(group),
		Matches:   make([]matchDTO, 0, len(group.Fixtures)),
	}
	if group.Info != nil {
		marker.Info = &infoDTO{
			Capacity:   group.Info.Capacity,
			FieldSize:  group.Info.FieldSize,
			OpenedDate: group.Info.OpenedDate,
			ImageURL:   group.Info.ImageURL,
			URL:        group.Info.URL,
		}
	}
	for _, item := range group.Fixtures {
		marker.Matches = append(marker.Matches, matchFromFixture(item))
	}
	return marker
}

func matchFromFixture(item fixture.Fixture) matchDTO {
	return matchDTO{
		Label:    item.Label(),
		HomeTeam: item.HomeTeam,
		AwayTeam: item.AwayTeam,
		Date:     item.DateString(),
		Day:      item.Day,
		Time:     item.Time,
	}
}

// popupHTML renders the marker popup. Every interpolated value is escaped.
func popupHTML(group matchmap.ResolvedGroup) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("<div><strong>Matches at ")
	_, _ = buf.WriteString(html.EscapeString(group.Stadium))
	_, _ = buf.WriteString(":</strong><ul>")
	for _, item := range group.Fixtures {
		_, _ = buf.WriteString("<li>")
		_, _ = buf.WriteString(html.EscapeString(item.Label()))
		_, _ = buf.WriteString("<br>Date: ")
		_, _ = buf.WriteString(html.EscapeString(item.DateString()))
		_, _ = buf.WriteString("<br>Time: ")
		_, _ = buf.WriteString(html.EscapeString(item.Time))
		_, _ = buf.WriteString("</li>")
	}
	_, _ = buf.WriteString("</ul>")

	if info := group.Info; info != nil {
		if info.Capacity != nil {
			_, _ = buf.WriteString("<p>Capacity: ")
			_, _ = buf.WriteString(strconv.Itoa(*info.Capacity))
			_, _ = buf.WriteString("</p>")
		}
		if info.OpenedDate != "" {
			_, _ = buf.WriteString("<p>Opened: ")
			_, _ = buf.WriteString(html.EscapeString(info.OpenedDate))
			_, _ = buf.WriteString("</p>")
		}
		if info.FieldSize != "" {
			_, _ = buf.WriteString("<p>Field size: ")
			_, _ = buf.WriteString(html.EscapeString(info.FieldSize))
			_, _ = buf.WriteString("</p>")
		}
		if info.ImageURL != "" {
			_, _ = buf.WriteString(`<img src="`)
			_, _ = buf.WriteString(html.EscapeString(info.ImageURL))
			_, _ = buf.WriteString(`" alt="`)
			_, _ = buf.WriteString(html.EscapeString(group.Stadium))
			_, _ = buf.WriteString(`" width="200">`)
		}
	}

	_, _ = buf.WriteString("</div>")
	return buf.String()
}

func datasetResponseFromSummary(summary usecase.DatasetSummary) datasetResponse {
	return datasetResponse{
		Version:        summary.Version,
		LoadedAt:       summary.LoadedAt,
		Fixtures:       summary.Fixtures,
		Stadiums:       summary.Stadiums,
		Cities:         summary.Cities,
		StadiumInfos:   summary.StadiumInfos,
		LoadDurationMS: summary.LoadDurationMS,
	}
}
