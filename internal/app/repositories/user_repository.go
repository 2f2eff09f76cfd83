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
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/dberrors"
)

const userColumns = "id, organization_id, email, password, first_name, last_name, phone, role_type, is_active, created_at, updated_at, last_login_at"

// UserRepository handles database operations for users, students,
// instructors and lesson counters
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.OrganizationID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user and returns its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (organization_id, email, password, first_name, last_name, phone, role_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		user.OrganizationID, user.Email, user.Password, user.FirstName,
		user.LastName, user.Phone, user.RoleType, user.IsActive,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// ListUsers retrieves a page of users in an organization, optionally
// filtered by role and a case-insensitive name/email search.
func (r *UserRepository) ListUsers(ctx context.Context, orgID int64, role models.RoleType, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	base := squirrel.And{squirrel.Eq{"organization_id": orgID}}
	if role != "" {
		base = append(base, squirrel.Eq{"role_type": role})
	}
	if search != "" {
		pattern := "%" + search + "%"
		base = append(base, squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("users").Where(base).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(userColumns).
		From("users").
		Where(base).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser updates user base data
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, user.FirstName, user.LastName, user.Phone, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetUserActive activates or deactivates a user account
func (r *UserRepository) SetUserActive(ctx context.Context, id int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating user active state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// DeleteUser deletes a user by ID
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceInUse
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// CreateStudent creates the student sub-profile for a user
func (r *UserRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, category_id, required_minutes, medical_cert_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.CategoryID, student.RequiredMinutes, student.MedicalCertAt,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// Student rows join the owning user and the licence category so callers
// can check organization scope and show the category without extra queries.
const studentSelect = `
	SELECT s.id, s.user_id, s.category_id, s.required_minutes, s.medical_cert_at,
	       u.id, u.organization_id, u.email, u.first_name, u.last_name, u.phone,
	       u.role_type, u.is_active,
	       c.id, c.code, c.name, c.description
	FROM students s
	JOIN users u ON u.id = s.user_id
	JOIN categories c ON c.id = s.category_id
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var user models.User
	var category models.Category
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.CategoryID,
		&student.RequiredMinutes,
		&student.MedicalCertAt,
		&user.ID,
		&user.OrganizationID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.RoleType,
		&user.IsActive,
		&category.ID,
		&category.Code,
		&category.Name,
		&category.Description,
	)
	if err != nil {
		return nil, err
	}
	student.User = &user
	student.Category = &category
	return &student, nil
}

// GetStudentByID retrieves a student profile by student ID
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetStudentByUserID retrieves a student profile by user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// CreateInstructor creates the instructor sub-profile for a user
func (r *UserRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (user_id, hired_at, categories)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		instructor.UserID, instructor.HiredAt, instructor.Categories,
	).Scan(&instructor.ID)
	if err != nil {
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

const instructorSelect = `
	SELECT i.id, i.user_id, i.hired_at, i.categories,
	       u.id, u.organization_id, u.email, u.first_name, u.last_name, u.phone,
	       u.role_type, u.is_active
	FROM instructors i
	JOIN users u ON u.id = i.user_id
`

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	var instructor models.Instructor
	var user models.User
	err := row.Scan(
		&instructor.ID,
		&instructor.UserID,
		&instructor.HiredAt,
		&instructor.Categories,
		&user.ID,
		&user.OrganizationID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.RoleType,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	instructor.User = &user
	return &instructor, nil
}

// GetInstructorByID retrieves an instructor profile by instructor ID
func (r *UserRepository) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	instructor, err := scanInstructor(r.db.QueryRow(ctx, instructorSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return instructor, nil
}

// GetInstructorByUserID retrieves an instructor profile by user ID
func (r *UserRepository) GetInstructorByUserID(ctx context.Context, userID int64) (*models.Instructor, error) {
	instructor, err := scanInstructor(r.db.QueryRow(ctx, instructorSelect+` WHERE i.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return instructor, nil
}

// GetLessonCounter retrieves a student's lesson counter, returning a zero
// counter when the student has no completed lessons yet.
func (r *UserRepository) GetLessonCounter(ctx context.Context, studentID int64) (*models.LessonCounter, error) {
	query := `
		SELECT student_id, completed_minutes, completed_lessons, updated_at
		FROM lesson_counters
		WHERE student_id = $1
	`

	var counter models.LessonCounter
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&counter.StudentID,
		&counter.CompletedMinutes,
		&counter.CompletedLessons,
		&counter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.LessonCounter{StudentID: studentID}, nil
		}
		return nil, fmt.Errorf("error retrieving lesson counter: %w", err)
	}

	return &counter, nil
}

// IncrementLessonCounter adds a completed lesson to the student's counter
func (r *UserRepository) IncrementLessonCounter(ctx context.Context, tx pgx.Tx, studentID int64, minutes int) error {
	query := `
		INSERT INTO lesson_counters (student_id, completed_minutes, completed_lessons, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (student_id) DO UPDATE
		SET completed_minutes = lesson_counters.completed_minutes + EXCLUDED.completed_minutes,
		    completed_lessons = lesson_counters.completed_lessons + 1,
		    updated_at = NOW()
	`

	_, err := tx.Exec(ctx, query, studentID, minutes)
	if err != nil {
		return fmt.Errorf("error incrementing lesson counter: %w", err)
	}

	return nil
}

// CountUsersByRole returns the user count per role for an organization
func (r *UserRepository) CountUsersByRole(ctx context.Context, orgID int64) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role_type, COUNT(*)
		FROM users
		WHERE organization_id = $1
		GROUP BY role_type`, orgID)
	if err != nil {
		return nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
