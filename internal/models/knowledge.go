package models

import "time"

// KnowledgeEntry is an explanatory article. ItemID is a weak reference:
// it may point at an item that no longer exists.
type KnowledgeEntry struct {
	ID         int64     `db:"id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	CategoryID *int64    `db:"category_id"`
	ItemID     *int64    `db:"item_id"`
	Keywords   string    `db:"keywords"` // comma separated
	Source     string    `db:"source"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
