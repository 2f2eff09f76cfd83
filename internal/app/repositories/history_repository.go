package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
)

const historyColumns = "id, entity_type, entity_key, action, old_value, new_value, changed_by, created_at"

// HistoryRepository handles the append-only configuration history log
type HistoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append records a configuration change. Entries are never updated or
// deleted.
func (r *HistoryRepository) Append(ctx context.Context, entry *models.ConfigurationHistory) error {
	query := `
		INSERT INTO configuration_history (entity_type, entity_key, action, old_value, new_value, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.EntityType, entry.EntityKey, entry.Action,
		entry.OldValue, entry.NewValue, entry.ChangedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error appending configuration history: %w", err)
	}

	return nil
}

// List retrieves a page of history entries matching the filter, newest first
func (r *HistoryRepository) List(ctx context.Context, filter dto.HistoryFilter, offset uint64, limit int) ([]*models.ConfigurationHistory, int64, error) {
	conditions := squirrel.And{}
	if filter.EntityType != "" {
		conditions = append(conditions, squirrel.Eq{"entity_type": filter.EntityType})
	}
	if filter.EntityKey != "" {
		conditions = append(conditions, squirrel.Eq{"entity_key": filter.EntityKey})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("configuration_history")
	listBuilder := r.sb.Select(historyColumns).From("configuration_history")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
		listBuilder = listBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build history count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting history entries: %w", err)
	}

	listSQL, listArgs, err := listBuilder.
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build history list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing history entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.ConfigurationHistory
	for rows.Next() {
		var e models.ConfigurationHistory
		err := rows.Scan(
			&e.ID,
			&e.EntityType,
			&e.EntityKey,
			&e.Action,
			&e.OldValue,
			&e.NewValue,
			&e.ChangedBy,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
