package fetcher

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"
)

const (
	ifvodDetailURLTemplate = "https://www.ifvod.tv/detail?id=%s"
	ifvodPlayURLTemplate   = "https://www.ifvod.tv/play?id=%s"

	// Shows live inside the app-media-list element as /play?id=... anchors.
	ifvodShowSelector = "app-media-list a[href]"
)

var (
	playIdMatcher    = regexp.MustCompile(`/play\?id=(.+)`)
	dramaNameMatcher = regexp.MustCompile(`^(.*) - IFVOD$`)
)

// IfvodFetcher scrapes an ifvod detail page for the drama's show list and
// display name. The collector's request timeout replaces the fixed
// post-load sleep the page used to need, a slow render is a normal fetch
// failure.
type IfvodFetcher struct {
	client *HttpClient
}

func NewIfvodFetcher() *IfvodFetcher {
	return &IfvodFetcher{client: NewDefaultHttpClient()}
}

func (f *IfvodFetcher) FetchShowList(ctx context.Context, dramaID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &model.FetchError{DramaID: dramaID, Err: err}
	}

	shows := []string{}
	c := colly.NewCollector()
	c.SetRequestTimeout(defaultFetchTimeout)
	c.OnHTML(ifvodShowSelector, func(e *colly.HTMLElement) {
		if id, ok := ExtractPlayId(e.Attr("href")); ok {
			shows = append(shows, id)
		}
	})

	if err := c.Visit(DetailURL(model.VODIfvod, dramaID)); err != nil {
		return nil, &model.FetchError{DramaID: dramaID, Err: err}
	}
	return shows, nil
}

func (f *IfvodFetcher) FetchDramaName(ctx context.Context, dramaID string) (string, error) {
	res, err := f.client.Get(ctx, DetailURL(model.VODIfvod, dramaID))
	if err != nil {
		return "", &model.FetchError{DramaID: dramaID, Err: err}
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", &model.FetchError{DramaID: dramaID, Err: err}
	}
	name, err := ParseDramaName(doc)
	if err != nil {
		return "", &model.FetchError{DramaID: dramaID, Err: err}
	}
	return name, nil
}

// ParseDramaName pulls the display name out of the page's title meta tag,
// which carries the form "<name> - IFVOD".
func ParseDramaName(doc *goquery.Document) (string, error) {
	content, exists := doc.Find(`meta[name="title"]`).Attr("content")
	if !exists {
		return "", errors.New("no title meta tag on detail page")
	}
	matches := dramaNameMatcher.FindStringSubmatch(content)
	if matches == nil {
		return "", errors.Errorf("malformed title meta tag: %q", content)
	}
	return matches[1], nil
}

// ExtractPlayId parses the show id out of a /play?id=... href.
func ExtractPlayId(href string) (string, bool) {
	matches := playIdMatcher.FindStringSubmatch(href)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

// DetailURL builds the catalog page link for a drama. RSS drama ids are
// feed URLs already.
func DetailURL(vod model.VOD, dramaID string) string {
	if vod == model.VODIfvod {
		return fmt.Sprintf(ifvodDetailURLTemplate, dramaID)
	}
	return dramaID
}

// PlayURL builds the playable link for a show. RSS show ids are already
// URLs (item GUIDs) and pass through unchanged.
func PlayURL(vod model.VOD, showID string) string {
	if vod == model.VODIfvod {
		return fmt.Sprintf(ifvodPlayURLTemplate, showID)
	}
	return showID
}
