package model

import "time"

// User is a leaderboard participant. TotalPoints only ever grows through claims.
type User struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Name        string    `gorm:"column:name;size:64;not null"`
	TotalPoints int64     `gorm:"column:total_points;not null;default:0;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
