package repository

import (
	"context"
	"errors"
	"sync/atomic"

	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// dbRef holds the connection handle; cmd/api attaches it after the server
// is already accepting requests.
type dbRef struct {
	p atomic.Pointer[gorm.DB]
}

func (r *dbRef) SetDB(db *gorm.DB) {
	r.p.Store(db)
}

func (r *dbRef) conn(ctx context.Context) (*gorm.DB, error) {
	db := r.p.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	return db.WithContext(ctx), nil
}
