package repository

import (
	"context"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"gorm.io/gorm"
)

// ClaimEventRepository reads the claim log. Events are only appended by
// ClaimRepository.Claim.
type ClaimEventRepository interface {
	ListWithUsers(ctx context.Context) ([]model.ClaimHistoryEntry, error)
	ListByUser(ctx context.Context, userID string) ([]model.ClaimEvent, error)
	SetDB(db *gorm.DB)
}

type claimEventRepository struct {
	dbRef
}

func NewClaimEventRepository(db *gorm.DB) ClaimEventRepository {
	r := &claimEventRepository{}
	r.SetDB(db)
	return r
}

// ListWithUsers returns the whole log newest first. Events whose user row is
// missing are still returned with a nil UserName.
func (r *claimEventRepository) ListWithUsers(ctx context.Context) ([]model.ClaimHistoryEntry, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var list []model.ClaimHistoryEntry
	if err := db.Table("claim_events AS ce").
		Select("ce.id, ce.user_id, ce.points, ce.claimed_at, u.name AS user_name").
		Joins("LEFT JOIN users u ON u.id = ce.user_id").
		Order("ce.claimed_at DESC").
		Order("ce.id DESC").
		Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *claimEventRepository) ListByUser(ctx context.Context, userID string) ([]model.ClaimEvent, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var list []model.ClaimEvent
	if err := db.Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
