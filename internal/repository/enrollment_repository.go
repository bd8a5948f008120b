package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository хранит заявки на запись
type EnrollmentRepository struct {
	*base.Repository
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{Repository: base.NewRepository(pool)}
}

// Submit сохраняет заявку, выбранные слоты кладутся в JSONB
func (r *EnrollmentRepository) Submit(ctx context.Context, req *model.EnrollmentRequest) error {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return fmt.Errorf("marshal enrollment items: %w", err)
	}

	query := `
		INSERT INTO enrollment_requests (id, user_id, center, items, slot_count, subtotal, discount, due)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err = r.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.Center,
		items,
		req.Count,
		req.Subtotal,
		req.Discount,
		req.Due,
	).Scan(&req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create enrollment request: %w", err)
	}

	return nil
}

// ListByUser заявки пользователя, новые первыми
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*model.EnrollmentRequest, error) {
	query := `
		SELECT id, user_id, center, items, slot_count, subtotal, discount, due, created_at
		FROM enrollment_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list enrollment requests: %w", err)
	}
	defer rows.Close()

	var result []*model.EnrollmentRequest
	for rows.Next() {
		var (
			req   model.EnrollmentRequest
			id    uuid.UUID
			items []byte
		)
		if err := rows.Scan(&id, &req.UserID, &req.Center, &items, &req.Count,
			&req.Subtotal, &req.Discount, &req.Due, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan enrollment request: %w", err)
		}
		req.ID = id
		if err := json.Unmarshal(items, &req.Items); err != nil {
			return nil, fmt.Errorf("unmarshal enrollment items: %w", err)
		}
		result = append(result, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollment requests: %w", err)
	}

	return result, nil
}
