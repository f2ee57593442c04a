package entity

import (
	"time"
)

// Base is the common shape of uuid-keyed tables. Rows are hard-deleted:
// completion marks and reactions are re-insertable under unique indexes,
// which soft deletion would break.
type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnowFlakeBase keys append-only tables. The snowflake id embeds the
// creation instant, so id order is a stable tie-break under created_at.
type SnowFlakeBase struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
}
