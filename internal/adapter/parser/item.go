package parser

import (
	"fmt"
	"strings"
	"time"

	"newsfeed/internal/adapter/xmltree"
	"newsfeed/internal/domain"
)

// pubDateLayout соответствует формату "Dy, DD Mon YYYY HH24:MI:SS";
// день принимается как с ведущим нулем, так и без него.
const pubDateLayout = "Mon, 2 Jan 2006 15:04:05"

// pubDateFields - число слов в значении формата pubDateLayout.
const pubDateFields = 5

// ItemFields - сырые значения распознанных подэлементов <item>.
// nil означает, что элемент отсутствовал.
type ItemFields struct {
	Title       *string
	Description *string
	GUID        *string
	Link        *string
	PubDate     *string
}

// ExtractItem собирает значения подэлементов title, description, guid,
// link и pubDate. При повторе тега побеждает последнее вхождение.
func ExtractItem(node *xmltree.Node) ItemFields {
	var f ItemFields
	for _, child := range node.Children {
		text := child.Text()
		switch child.Name {
		case "title":
			f.Title = &text
		case "description":
			f.Description = &text
		case "guid":
			f.GUID = &text
		case "link":
			f.Link = &text
		case "pubDate":
			f.PubDate = &text
		}
	}
	return f
}

// BuildItem превращает извлеченные значения в domain.Item.
// Дата разбирается только если элемент pubDate присутствовал.
func BuildItem(f ItemFields) (domain.Item, error) {
	item := domain.Item{
		Title:       f.Title,
		Description: f.Description,
		ID:          f.GUID,
		Link:        f.Link,
	}
	if f.PubDate != nil {
		published, err := ParsePubDate(*f.PubDate)
		if err != nil {
			return domain.Item{}, domain.NewStageError(domain.StageBuild, domain.ErrDateFormat, "", err)
		}
		item.PublishedAt = &published
	}
	return item, nil
}

// BuildFeed оборачивает записи в ленту, сохраняя их порядок.
func BuildFeed(items []domain.Item) *domain.Feed {
	if items == nil {
		items = []domain.Item{}
	}
	return &domain.Feed{Items: items}
}

// ParsePubDate разбирает дату вида "Wed, 02 Oct 2024 15:30:00" в UTC.
// Все, что идет после секунд (например, смещение зоны), игнорируется,
// как это делает to_timestamp в PostgreSQL.
func ParsePubDate(value string) (time.Time, error) {
	fields := strings.Fields(value)
	if len(fields) < pubDateFields {
		return time.Time{}, fmt.Errorf("could not parse date %q: expected format %q", value, "Dy, DD Mon YYYY HH24:MI:SS")
	}
	head := strings.Join(fields[:pubDateFields], " ")
	t, err := time.Parse(pubDateLayout, head)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", value, err)
	}
	return t, nil
}
