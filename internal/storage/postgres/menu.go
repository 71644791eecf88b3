package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

type menuRepository struct {
	storage *Storage
}

const menuColumns = `id, name, description, category, price::text, available`

func (r *menuRepository) Create(ctx context.Context, item model.MenuItem) error {
	const query = `INSERT INTO menu_items (id, name, description, category, price, available)
                   VALUES ($1, $2, $3, $4, $5::numeric, $6)`
	_, err := r.storage.pool.Exec(ctx, query, item.ID, item.Name, item.Description, item.Category, item.Price.String(), item.Available)
	return mapError(err)
}

func (r *menuRepository) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id=$1`
	item, err := scanMenuItem(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

func (r *menuRepository) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items
              WHERE ($1::text = '' OR category = $1) AND (NOT $2::boolean OR available)
              ORDER BY seq`
	rows, err := r.storage.pool.Query(ctx, query, filter.Category, filter.AvailableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) Update(ctx context.Context, item model.MenuItem) error {
	const query = `UPDATE menu_items
                   SET name=$2, description=$3, category=$4, price=$5::numeric, available=$6
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, item.ID, item.Name, item.Description, item.Category, item.Price.String(), item.Available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (model.MenuItem, error) {
	var (
		item  model.MenuItem
		price string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &price, &item.Available); err != nil {
		return model.MenuItem{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("menu item %s price: %w", item.ID, err)
	}
	item.Price = parsed
	return item, nil
}
