package postgres

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

type profileRepository struct {
	storage *Storage
}

func (r *profileRepository) Get(ctx context.Context, principal string) (*model.UserProfile, error) {
	const query = `SELECT name, phone FROM profiles WHERE principal=$1`
	var p model.UserProfile
	if err := r.storage.pool.QueryRow(ctx, query, principal).Scan(&p.Name, &p.Phone); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *profileRepository) Save(ctx context.Context, principal string, profile model.UserProfile) error {
	const query = `INSERT INTO profiles (principal, name, phone) VALUES ($1, $2, $3)
                   ON CONFLICT (principal) DO UPDATE
                   SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, principal, profile.Name, profile.Phone)
	return err
}
