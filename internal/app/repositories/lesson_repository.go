package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
)

const lessonColumns = "id, organization_id, student_id, instructor_id, vehicle_id, starts_at, duration_minutes, status, notes, created_at, updated_at"

// LessonRepository handles database operations for lessons
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID,
		&l.OrganizationID,
		&l.StudentID,
		&l.InstructorID,
		&l.VehicleID,
		&l.StartsAt,
		&l.DurationMinutes,
		&l.Status,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create creates a new lesson
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (organization_id, student_id, instructor_id, vehicle_id, starts_at, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		lesson.OrganizationID, lesson.StudentID, lesson.InstructorID, lesson.VehicleID,
		lesson.StartsAt, lesson.DurationMinutes, lesson.Status, lesson.Notes,
	).Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}

	return lesson, nil
}

func (r *LessonRepository) filterConditions(orgID int64, filter dto.LessonFilter) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"organization_id": orgID}}
	if filter.StudentID > 0 {
		conditions = append(conditions, squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.InstructorID > 0 {
		conditions = append(conditions, squirrel.Eq{"instructor_id": filter.InstructorID})
	}
	if filter.Status != "" {
		conditions = append(conditions, squirrel.Eq{"status": filter.Status})
	}
	if filter.From != nil {
		conditions = append(conditions, squirrel.GtOrEq{"starts_at": *filter.From})
	}
	if filter.To != nil {
		conditions = append(conditions, squirrel.Lt{"starts_at": *filter.To})
	}
	return conditions
}

// List retrieves a page of lessons matching the filter, newest first
func (r *LessonRepository) List(ctx context.Context, orgID int64, filter dto.LessonFilter, offset uint64, limit int) ([]*models.Lesson, int64, error) {
	conditions := r.filterConditions(orgID, filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("lessons").Where(conditions).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build lesson count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting lessons: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(lessonColumns).
		From("lessons").
		Where(conditions).
		OrderBy("starts_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build lesson list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, 0, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

// ListUpcoming retrieves the next scheduled lessons matching the filter,
// soonest first.
func (r *LessonRepository) ListUpcoming(ctx context.Context, orgID int64, filter dto.LessonFilter, limit int) ([]*models.Lesson, error) {
	conditions := r.filterConditions(orgID, filter)
	conditions = append(conditions, squirrel.Eq{"status": models.LessonScheduled})

	sql, args, err := r.sb.Select(lessonColumns).
		From("lessons").
		Where(conditions).
		OrderBy("starts_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lessons, nil
}

// Update reschedules an existing lesson
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := `
		UPDATE lessons
		SET vehicle_id = $1, starts_at = $2, duration_minutes = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		lesson.VehicleID, lesson.StartsAt, lesson.DurationMinutes, lesson.Notes, lesson.ID)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// UpdateStatus transitions a lesson's status within the given transaction
func (r *LessonRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status models.LessonStatus, notes *string) error {
	query := `
		UPDATE lessons
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := tx.Exec(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("error updating lesson status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// CountByStatusSince counts the organization's lessons per status starting
// from the given time.
func (r *LessonRepository) CountByStatusSince(ctx context.Context, orgID int64, since time.Time) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM lessons
		WHERE organization_id = $1 AND starts_at >= $2
		GROUP BY status`, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("error counting lessons by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountDistinctStudents counts the distinct students an instructor has
// lessons with.
func (r *LessonRepository) CountDistinctStudents(ctx context.Context, instructorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT student_id) FROM lessons WHERE instructor_id = $1`,
		instructorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting instructor students: %w", err)
	}
	return count, nil
}
