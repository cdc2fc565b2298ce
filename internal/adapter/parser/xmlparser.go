package parser

import (
	"context"
	"log/slog"

	"newsfeed/internal/adapter/xmltree"
	"newsfeed/internal/domain"
)

// XMLParser реализует интерфейс FeedParser: разбирает буфер в дерево,
// находит первый канал и собирает записи из его элементов <item>.
type XMLParser struct {
	log *slog.Logger
}

func NewXMLParser(log *slog.Logger) *XMLParser {
	return &XMLParser{
		log: log,
	}
}

// Parse реализует метод интерфейса FeedParser.
func (p *XMLParser) Parse(ctx context.Context, data []byte) (*domain.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		p.log.Error("Error decoding XML",
			slog.Int("bytes", len(data)),
			slog.Any("error", err),
		)
		return nil, domain.NewStageError(domain.StageParse, domain.ErrParse, "", err)
	}
	itemNodes, err := FindFirstChannel(root)
	if err != nil {
		p.log.Error("Channel lookup failed",
			slog.String("root", root.Name),
			slog.Any("error", err),
		)
		return nil, err
	}
	items := make([]domain.Item, 0, len(itemNodes))
	for i, node := range itemNodes {
		item, err := BuildItem(ExtractItem(node))
		if err != nil {
			p.log.Error("Item build failed",
				slog.Int("position", i),
				slog.Any("error", err),
			)
			return nil, err
		}
		items = append(items, item)
	}
	p.log.Debug("Document parsed", slog.Int("items_parsed", len(items)))
	return BuildFeed(items), nil
}
