package models

import "time"

// Interaction is one stored chat exchange. Rows are append-only.
type Interaction struct {
	ID         int64     `db:"id"`
	SessionID  string    `db:"session_id"`
	Question   string    `db:"question"`
	Answer     string    `db:"answer"`
	CategoryID *int64    `db:"category_id"`
	ItemID     *int64    `db:"item_id"`
	CreatedAt  time.Time `db:"created_at"`
}
