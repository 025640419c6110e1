package model

import "time"

// ClaimEvent is one append-only entry of the claim history log.
// UserID is a weak reference; there is no foreign key to users.
type ClaimEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;size:36;index;not null"`
	Points    int       `gorm:"column:points;not null"`
	ClaimedAt time.Time `gorm:"column:claimed_at;index;not null"`
}

func (ClaimEvent) TableName() string {
	return "claim_events"
}

// ClaimHistoryEntry is a claim event joined with the claiming user's name.
// UserName is nil when the user row is gone.
type ClaimHistoryEntry struct {
	ClaimEvent
	UserName *string `gorm:"column:user_name"`
}
