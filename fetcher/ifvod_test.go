package fetcher

import (
	"strings"
	"testing"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

const detailPage = `<html>
<head>
<meta name="title" content="The Long Ballad - IFVOD"/>
</head>
<body>
<app-media-list>
<a href="/play?id=ep-1">EP01</a>
<a href="/play?id=ep-2">EP02</a>
<a href="/detail?id=other-drama">recommended</a>
</app-media-list>
</body>
</html>`

func TestParseDramaName(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(detailPage))
	assert.Nil(t, err)

	name, err := ParseDramaName(doc)
	assert.Nil(t, err)
	assert.Equal(t, "The Long Ballad", name)
}

func TestParseDramaNameRejectsMalformedTitle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head><meta name="title" content="whatever"/></head></html>`))
	assert.Nil(t, err)
	_, err = ParseDramaName(doc)
	assert.NotNil(t, err)

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(`<html><head></head></html>`))
	assert.Nil(t, err)
	_, err = ParseDramaName(doc)
	assert.NotNil(t, err)
}

func TestExtractPlayId(t *testing.T) {
	id, ok := ExtractPlayId("/play?id=ep-1")
	assert.True(t, ok)
	assert.Equal(t, "ep-1", id)

	_, ok = ExtractPlayId("/detail?id=other-drama")
	assert.False(t, ok)
}

func TestURLBuilders(t *testing.T) {
	assert.Equal(t, "https://www.ifvod.tv/detail?id=drama-1", DetailURL(model.VODIfvod, "drama-1"))
	assert.Equal(t, "https://www.ifvod.tv/play?id=ep-1", PlayURL(model.VODIfvod, "ep-1"))

	// RSS ids are URLs already and pass through.
	assert.Equal(t, "https://example.com/feed.xml", DetailURL(model.VODRss, "https://example.com/feed.xml"))
	assert.Equal(t, "https://example.com/ep1", PlayURL(model.VODRss, "https://example.com/ep1"))
}
