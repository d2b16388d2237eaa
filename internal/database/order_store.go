package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
)

// OrderStore is the PostgreSQL order history. Rows are only ever inserted.
type OrderStore struct {
	db *DB
}

func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

// Append stores the order and its lines in one transaction
func (s *OrderStore) Append(ctx context.Context, p models.OrderPayload) error {
	return s.db.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, InsertOrderSQL,
			p.ID, string(p.OrderType), p.Customer.Name, p.Customer.Phone, p.Customer.Notes,
			p.Customer.Location, p.Customer.Branch, p.Subtotal, p.DeliveryFee, p.Total, p.TierID, p.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, l := range p.Items {
			extras, err := json.Marshal(l.Extras)
			if err != nil {
				return fmt.Errorf("failed to encode extras: %w", err)
			}

			var sizeID, sizeName *string
			var sizePrice *decimal.Decimal
			if l.Size != nil {
				sizeID, sizeName, sizePrice = &l.Size.ID, &l.Size.Name, &l.Size.Price
			}

			batch.Queue(InsertOrderLineSQL,
				p.ID, i, l.Key, l.ItemID, l.Name, l.Image, l.Ingredients, l.Protein,
				sizeID, sizeName, sizePrice, extras, l.Notes, l.Quantity, l.UnitPrice, l.TotalPrice)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert order lines: %w", err)
		}
		return nil
	})
}

// List returns up to limit orders, newest first. A non-positive limit returns all.
func (s *OrderStore) List(ctx context.Context, limit int) ([]models.OrderPayload, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.db.Pool.Query(ctx, ListOrdersSQL, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []models.OrderPayload
		ids    []string
	)
	index := make(map[string]int)
	for rows.Next() {
		var (
			p         models.OrderPayload
			orderType string
		)
		err := rows.Scan(&p.ID, &orderType, &p.Customer.Name, &p.Customer.Phone, &p.Customer.Notes,
			&p.Customer.Location, &p.Customer.Branch, &p.Subtotal, &p.DeliveryFee, &p.Total, &p.TierID, &p.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		p.OrderType = models.OrderType(orderType)
		index[p.ID] = len(orders)
		ids = append(ids, p.ID)
		orders = append(orders, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := s.attachLines(ctx, orders, ids, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) attachLines(ctx context.Context, orders []models.OrderPayload, ids []string, index map[string]int) error {
	rows, err := s.db.Pool.Query(ctx, ListOrderLinesSQL, ids)
	if err != nil {
		return fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID   string
			l         models.CartLine
			sizeID    *string
			sizeName  *string
			sizePrice *decimal.Decimal
			extras    []byte
		)
		err := rows.Scan(&orderID, &l.Key, &l.ItemID, &l.Name, &l.Image, &l.Ingredients, &l.Protein,
			&sizeID, &sizeName, &sizePrice, &extras, &l.Notes, &l.Quantity, &l.UnitPrice, &l.TotalPrice)
		if err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}

		if sizeID != nil {
			l.Size = &models.Size{ID: *sizeID}
			if sizeName != nil {
				l.Size.Name = *sizeName
			}
			if sizePrice != nil {
				l.Size.Price = *sizePrice
			}
		}
		if err := json.Unmarshal(extras, &l.Extras); err != nil {
			return fmt.Errorf("failed to decode extras: %w", err)
		}

		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, l)
		}
	}
	return rows.Err()
}
