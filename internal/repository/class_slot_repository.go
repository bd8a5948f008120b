package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateSlot = errors.New("class slot already exists")

// ClassSlotRepository каталог занятий в таблице class_slots
type ClassSlotRepository struct {
	*base.Repository
}

func NewClassSlotRepository(pool *pgxpool.Pool) *ClassSlotRepository {
	return &ClassSlotRepository{Repository: base.NewRepository(pool)}
}

const classSlotColumns = `id, dow, time_range, subject, coins, seats_left, status,
	day_label, date_label, level, teacher, center`

// List возвращает каталог в порядке добавления
func (r *ClassSlotRepository) List(ctx context.Context) ([]model.Slot, error) {
	query := `SELECT ` + classSlotColumns + ` FROM class_slots ORDER BY position`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list class slots: %w", err)
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		slot, err := scanClassSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class slots: %w", err)
	}

	return slots, nil
}

// Create добавляет слот в конец каталога
func (r *ClassSlotRepository) Create(ctx context.Context, slot model.Slot) error {
	query := `
		INSERT INTO class_slots (id, dow, time_range, subject, coins, seats_left, status,
			day_label, date_label, level, teacher, center)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.ExecAffected(ctx, query,
		slot.ID,
		slot.DayOfWeek,
		slot.TimeRange,
		slot.Subject,
		slot.Price,
		seatsToDB(slot.SeatsLeft),
		slot.Status,
		slot.DayLabel,
		slot.DateLabel,
		slot.Level,
		slot.Teacher,
		slot.Center,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateSlot, slot.ID)
		}
		return fmt.Errorf("create class slot: %w", err)
	}

	return nil
}

func scanClassSlot(row pgx.Row) (model.Slot, error) {
	var (
		slot  model.Slot
		seats *int
	)
	err := row.Scan(
		&slot.ID,
		&slot.DayOfWeek,
		&slot.TimeRange,
		&slot.Subject,
		&slot.Price,
		&seats,
		&slot.Status,
		&slot.DayLabel,
		&slot.DateLabel,
		&slot.Level,
		&slot.Teacher,
		&slot.Center,
	)
	if err != nil {
		return model.Slot{}, err
	}

	slot.SeatsLeft = model.SeatsUnknown
	if seats != nil {
		slot.SeatsLeft = *seats
	}
	if slot.Status == "" {
		slot.Status = model.SlotStatusOpen
	}
	return slot, nil
}

// NULL в seats_left означает "не указано"
func seatsToDB(seats int) *int {
	if seats < 0 {
		return nil
	}
	return &seats
}
