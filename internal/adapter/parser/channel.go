package parser

import (
	"newsfeed/internal/adapter/xmltree"
	"newsfeed/internal/domain"
)

const (
	channelTag = "channel"
	itemTag    = "item"
)

// FindFirstChannel возвращает элементы <item> первого прямого потомка
// корня с именем <channel>. Последующие каналы не рассматриваются, даже
// если в первом нет ни одной записи.
func FindFirstChannel(root *xmltree.Node) ([]*xmltree.Node, error) {
	channel := root.Child(channelTag)
	if channel == nil {
		return nil, domain.NewStageError(domain.StageWalk, domain.ErrNoChannel, "", nil)
	}
	items := channel.ChildrenNamed(itemTag)
	if items == nil {
		items = []*xmltree.Node{}
	}
	return items, nil
}
