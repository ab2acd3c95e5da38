package wikipedia

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

// ParseStadiumList reads rows of the first table.wikitable. Data rows need at
// least five cells; the stadium link sits in the third and the city link in
// the fifth.
func ParseStadiumList(doc *goquery.Document, base *url.URL) []stadium.RawCoordinateRow {
	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		return nil
	}

	var out []stadium.RawCoordinateRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() < 5 {
			return
		}

		name, href := linkText(cells.Eq(2))
		city, _ := linkText(cells.Eq(4))
		row := stadium.RawCoordinateRow{Stadium: name, City: city}
		if href != "" {
			row.StadiumURL = absolute(base, href)
		}
		out = append(out, row)
	})
	return out
}

// ParseGeo parses the "lat; lng" text of the first span.geo.
func ParseGeo(doc *goquery.Document) (string, string, bool) {
	text := strings.TrimSpace(doc.Find("span.geo").First().Text())
	lat, lng, ok := strings.Cut(text, ";")
	if !ok {
		return "", "", false
	}
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return "", "", false
	}
	return lat, lng, true
}

// ParseInfobox extracts capacity, field size, opening date and a jpg image
// from the article infobox.
func ParseInfobox(doc *goquery.Document, name, pageURL string) stadium.Info {
	info := stadium.Info{Stadium: name, URL: pageURL}

	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return info
	}

	info.Capacity = stadium.ParseCapacity(infoboxValue(infobox, "Capacity"))
	info.FieldSize = infoboxValue(infobox, "Field size")
	info.OpenedDate = stadium.TrimOpenedDate(infoboxValue(infobox, "Opened"))
	info.ImageURL = infoboxImage(infobox)
	return info
}

func infoboxValue(infobox *goquery.Selection, label string) string {
	header := infobox.Find("th").FilterFunction(func(_ int, th *goquery.Selection) bool {
		return strings.TrimSpace(th.Text()) == label
	}).First()
	if header.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(header.NextAllFiltered("td").First().Text())
}

func infoboxImage(infobox *goquery.Selection) string {
	src, ok := infobox.Find("td.infobox-image img").First().Attr("src")
	if !ok {
		return ""
	}
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	lower := strings.ToLower(src)
	if !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".jpeg") {
		return ""
	}
	return src
}

func linkText(cell *goquery.Selection) (string, string) {
	link := cell.Find("a[href]").First()
	if link.Length() == 0 {
		return unknownName, ""
	}
	href, _ := link.Attr("href")
	return strings.TrimSpace(link.Text()), strings.TrimSpace(href)
}

func absolute(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return base.String() + href
	}
	return base.ResolveReference(ref).String()
}
