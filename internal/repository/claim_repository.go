package repository

import (
	"context"
	"time"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"gorm.io/gorm"
)

// ClaimRepository applies a claim as one unit: the points increment and the
// history append commit or roll back together.
type ClaimRepository interface {
	Claim(ctx context.Context, userID string, points int, at time.Time) (*model.User, *model.ClaimEvent, error)
	SetDB(db *gorm.DB)
}

type claimRepository struct {
	dbRef
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	r := &claimRepository{}
	r.SetDB(db)
	return r
}

// Claim returns gorm.ErrRecordNotFound, with nothing written, when userID
// does not match a user.
func (r *claimRepository) Claim(ctx context.Context, userID string, points int, at time.Time) (*model.User, *model.ClaimEvent, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	var user model.User
	ev := &model.ClaimEvent{UserID: userID, Points: points, ClaimedAt: at}
	err = db.Transaction(func(tx *gorm.DB) error {
		// single-statement increment; the row lock it takes orders concurrent claims
		res := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("total_points", gorm.Expr("total_points + ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		return tx.Create(ev).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, ev, nil
}
