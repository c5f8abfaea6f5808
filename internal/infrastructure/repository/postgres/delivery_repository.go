package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	qb "github.com/sportsdesk/teamhub/internal/platform/querybuilder"
)

type DeliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]scoring.Delivery, error) {
	query, args, err := qb.Select(deliveryColumns).From("match_deliveries").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select deliveries query: %w", err)
	}

	var rows []deliveryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select deliveries: %w", err)
	}

	out := make([]scoring.Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *DeliveryRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("match_deliveries").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count deliveries query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return count, nil
}

// Append relies on uq_match_deliveries_sequence to reject a taken sequence.
func (r *DeliveryRepository) Append(ctx context.Context, d scoring.Delivery) error {
	query, args, err := qb.InsertModel("match_deliveries", deliveryRowFromDomain(d), "")
	if err != nil {
		return fmt.Errorf("build insert delivery query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert delivery: %w", mapWriteError(err))
	}
	return nil
}

const deleteLastDeliveryQuery = `
DELETE FROM match_deliveries
WHERE id = (
    SELECT id FROM match_deliveries
    WHERE match_public_id = $1
    ORDER BY sequence DESC
    LIMIT 1
)
RETURNING ` + deliveryColumns

func (r *DeliveryRepository) DeleteLast(ctx context.Context, matchID string) (scoring.Delivery, bool, error) {
	var row deliveryTableModel
	if err := r.db.GetContext(ctx, &row, deleteLastDeliveryQuery, matchID); err != nil {
		if isNotFound(err) {
			return scoring.Delivery{}, false, nil
		}
		return scoring.Delivery{}, false, fmt.Errorf("delete last delivery: %w", err)
	}
	return row.toDomain(), true, nil
}
