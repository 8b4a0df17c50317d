package models

import "time"

// Item is one cataloged intangible-heritage entry.
type Item struct {
	ID                      int64     `db:"id"`
	Name                    string    `db:"name"`
	CategoryID              int64     `db:"category_id"`
	Description             string    `db:"description"`
	OriginLocation          string    `db:"origin_location"`
	HistoricalBackground    string    `db:"historical_background"`
	Characteristics         string    `db:"characteristics"`
	CulturalValue           string    `db:"cultural_value"`
	InheritanceStatus       string    `db:"inheritance_status"`
	ProtectionMeasures      string    `db:"protection_measures"`
	ProtectionLevel         string    `db:"protection_level"`
	RepresentativeInheritor string    `db:"representative_inheritor"`
	DeclarationDate         string    `db:"declaration_date"`
	Images                  []string  `db:"images"` // stored as a JSON array
	Videos                  []string  `db:"videos"` // stored as a JSON array
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}
