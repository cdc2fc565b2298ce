package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsfeed/internal/adapter/fetcher"
	"newsfeed/internal/adapter/parser"
	"newsfeed/internal/domain"
	"newsfeed/internal/metrics"
	"newsfeed/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Sample</title>
<item>
<title>First</title>
<description>First &amp; foremost</description>
<guid>urn:1</guid>
<link>https://example.com/1</link>
<pubDate>Wed, 02 Oct 2024 15:30:00</pubDate>
</item>
<item>
<title>Second</title>
<link>https://example.com/2</link>
</item>
<item>
<guid>urn:3</guid>
<pubDate>Thu, 03 Oct 2024 08:00:00</pubDate>
</item>
</channel>
</rss>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoader(m *metrics.Metrics) *usecase.FeedLoader {
	log := discardLogger()
	return usecase.NewFeedLoader(fetcher.NewHTTPFetcher(log, 5*time.Second, m), parser.NewXMLParser(log), log, m)
}

func serveDocument(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedLoader_LoadFeed(t *testing.T) {
	srv := serveDocument(t, sampleFeed)
	m := metrics.New(nil)

	feed, err := newLoader(m).LoadFeed(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, feed.Items, 3)

	first := feed.Items[0]
	assert.Equal(t, "First", *first.Title)
	assert.Equal(t, "First & foremost", *first.Description)
	assert.Equal(t, "urn:1", *first.ID)
	assert.Equal(t, "https://example.com/1", *first.Link)
	assert.Equal(t, time.Date(2024, 10, 2, 15, 30, 0, 0, time.UTC), *first.PublishedAt)

	second := feed.Items[1]
	assert.Equal(t, "Second", *second.Title)
	assert.Nil(t, second.Description)
	assert.Nil(t, second.ID)
	assert.Nil(t, second.PublishedAt)

	third := feed.Items[2]
	assert.Nil(t, third.Title)
	assert.Nil(t, third.Link)
	assert.Equal(t, "urn:3", *third.ID)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ItemsLoaded))
}

func TestFeedLoader_LoadFeed_ItemCountAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("<rss><channel>")
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, "<item><title>%d</title></item>", i)
			}
			b.WriteString("</channel></rss>")
			srv := serveDocument(t, b.String())

			feed, err := newLoader(nil).LoadFeed(context.Background(), srv.URL)

			require.NoError(t, err)
			require.Len(t, feed.Items, n)
			for i, item := range feed.Items {
				assert.Equal(t, fmt.Sprint(i), *item.Title)
			}
		})
	}
}

func TestFeedLoader_LoadFeed_Idempotent(t *testing.T) {
	srv := serveDocument(t, sampleFeed)
	loader := newLoader(nil)

	first, err := loader.LoadFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := loader.LoadFeed(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFeedLoader_LoadFeed_Errors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		want    error
		outcome string
	}{
		{name: "malformed", doc: "<rss><channel>", want: domain.ErrParse, outcome: "parse_error"},
		{name: "no channel", doc: "<rss><item/></rss>", want: domain.ErrNoChannel, outcome: "no_channel"},
		{
			name:    "bad date",
			doc:     "<rss><channel><item><pubDate>not-a-date</pubDate></item></channel></rss>",
			want:    domain.ErrDateFormat,
			outcome: "date_format_error",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serveDocument(t, tc.doc)
			m := metrics.New(nil)

			feed, err := newLoader(m).LoadFeed(context.Background(), srv.URL)

			assert.Nil(t, feed)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.Loads.WithLabelValues(tc.outcome)))
		})
	}
}

type recordingParser struct {
	called bool
}

func (p *recordingParser) Parse(ctx context.Context, data []byte) (*domain.Feed, error) {
	p.called = true
	return &domain.Feed{Items: []domain.Item{}}, nil
}

func TestFeedLoader_LoadFeed_UnreachableSkipsParser(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	log := discardLogger()
	p := &recordingParser{}
	loader := usecase.NewFeedLoader(fetcher.NewHTTPFetcher(log, time.Second, nil), p, log, nil)

	feed, err := loader.LoadFeed(context.Background(), "http://"+addr+"/feed.xml")

	assert.Nil(t, feed)
	assert.True(t, errors.Is(err, domain.ErrFetch))
	assert.False(t, p.called)
}
