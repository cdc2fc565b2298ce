package domain

import "time"

// Item представляет одну запись <item> из первого <channel> ленты.
// Каждое поле независимо может отсутствовать: nil означает, что
// соответствующий элемент в документе не встретился.
type Item struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ID          *string    `json:"id"`
	Link        *string    `json:"link"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Feed представляет результат загрузки ленты: упорядоченный список записей
// в порядке их следования в документе.
type Feed struct {
	Items []Item `json:"items"`
}

// StoredItem - запись, прочитанная из хранилища, вместе с адресом ленты.
type StoredItem struct {
	Item
	FeedURL  string    `json:"feed"`
	LoadedAt time.Time `json:"loadedAt"`
}
