package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

// orderSelect joins every order with its lines; rows of one order are adjacent.
// created_at holds Unix nanoseconds.
const orderSelect = `SELECT o.id, o.owner, o.total::text, o.status, o.created_at,
                            l.item_name, l.quantity, l.unit_price::text
                     FROM orders o JOIN order_lines l ON l.order_id = o.id`

func (r *orderRepository) Create(ctx context.Context, order model.Order) error {
	const insertOrder = `INSERT INTO orders (id, owner, total, status, created_at) VALUES ($1, $2, $3::numeric, $4, $5)`
	const insertLine = `INSERT INTO order_lines (order_id, position, item_name, quantity, unit_price) VALUES ($1, $2, $3, $4, $5::numeric)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertOrder, order.ID, order.Owner, order.Total.String(), string(order.Status), order.CreatedAt.UnixNano()); err != nil {
			return err
		}
		for i, l := range order.Lines {
			if _, err := tx.Exec(ctx, insertLine, order.ID, i, l.ItemName, l.Quantity, l.UnitPrice.String()); err != nil {
				return err
			}
		}
		return nil
	})
	return mapError(err)
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	orders, err := r.query(ctx, orderSelect+` WHERE o.id=$1 ORDER BY l.position`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, owner string) ([]model.Order, error) {
	return r.query(ctx, orderSelect+` WHERE o.owner=$1 ORDER BY o.created_at DESC, o.id, l.position`, owner)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.query(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id, l.position`)
}

func (r *orderRepository) query(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var (
			id, owner, total, status string
			createdAt                int64
			line                     model.OrderLine
			unitPrice                string
		)
		if err := rows.Scan(&id, &owner, &total, &status, &createdAt, &line.ItemName, &line.Quantity, &unitPrice); err != nil {
			return nil, err
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("order %s line price: %w", id, err)
		}

		if n := len(result); n == 0 || result[n-1].ID != id {
			parsed, err := decimal.NewFromString(total)
			if err != nil {
				return nil, fmt.Errorf("order %s total: %w", id, err)
			}
			result = append(result, model.Order{
				ID:        id,
				Owner:     owner,
				Total:     parsed,
				Status:    model.OrderStatus(status),
				CreatedAt: time.Unix(0, createdAt).UTC(),
			})
		}
		last := &result[len(result)-1]
		last.Lines = append(last.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) CompareAndSetStatus(ctx context.Context, id string, current, next model.OrderStatus) (bool, error) {
	const query = `UPDATE orders SET status=$1 WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, string(next), id, string(current))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
