package collector

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kosuri18/stock-screener/pkg/types"
)

const newsFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"

// Keyword sets for the coarse headline sentiment tag.
var (
	positiveWords = []string{"up", "rise", "gain", "positive", "growth", "boost", "surge"}
	negativeWords = []string{"down", "fall", "drop", "negative", "decline", "loss", "plunge"}
)

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

// newsClient fetches recent headlines from the Yahoo Finance RSS feed.
type newsClient struct {
	http  *resty.Client
	limit int
}

func newNewsClient(limit int) *newsClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "stock-screener/1.0")

	return &newsClient{http: client, limit: limit}
}

func (n *newsClient) fetch(ticker string) ([]types.NewsItem, error) {
	resp, err := n.http.R().Get(newsFeedURL + "?s=" + url.QueryEscape(ticker))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode())
	}

	var feed rssFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parsing news feed: %w", err)
	}

	items := feed.Channel.Items
	if len(items) > n.limit {
		items = items[:n.limit]
	}

	news := make([]types.NewsItem, 0, len(items))
	for _, item := range items {
		published, _ := time.Parse(time.RFC1123Z, item.PubDate)
		news = append(news, types.NewsItem{
			Headline:    item.Title,
			Sentiment:   headlineSentiment(item.Title),
			PublishedAt: published,
		})
	}
	return news, nil
}

// headlineSentiment tags a headline by counting positive and negative
// keywords. Crude, but enough for the screener summary column.
func headlineSentiment(headline string) string {
	text := strings.ToLower(headline)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}
