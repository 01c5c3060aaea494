package repository

import (
	"context"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/jackc/pgx/v5"
)

type StudentProfileRepository struct {
	db DBTX
}

func NewStudentProfileRepository(db DBTX) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO student_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

const studentDetailColumns = `
	sp.id, sp.user_id, sp.skills, sp.education, sp.created_at, sp.updated_at,
	u.id, u.name, u.email, u.role, u.phone, u.bio, u.photo_url
`

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error) {
	query := `
		SELECT ` + studentDetailColumns + `
		FROM student_profiles sp
		JOIN users u ON u.id = sp.user_id
		WHERE sp.user_id = $1
	`
	return scanStudentDetail(r.db.QueryRow(ctx, query, userID))
}

func (r *StudentProfileRepository) GetByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	query := `
		SELECT ` + studentDetailColumns + `
		FROM student_profiles sp
		JOIN users u ON u.id = sp.user_id
		WHERE sp.id = $1
	`
	return scanStudentDetail(r.db.QueryRow(ctx, query, id))
}

func (r *StudentProfileRepository) List(ctx context.Context) ([]models.StudentDetail, error) {
	query := `
		SELECT ` + studentDetailColumns + `
		FROM student_profiles sp
		JOIN users u ON u.id = sp.user_id
		ORDER BY sp.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.StudentDetail, 0)
	for rows.Next() {
		student, err := scanStudentDetail(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

// UpdatePartial writes only the provided fields, keyed by the owning user.
func (r *StudentProfileRepository) UpdatePartial(ctx context.Context, userID int64, input UpdateStudentProfileInput) (*models.StudentDetail, error) {
	query := `
		UPDATE student_profiles
		SET skills = COALESCE($1, skills),
			education = COALESCE($2, education),
			updated_at = NOW()
		WHERE user_id = $3
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, input.Skills, input.Education, userID).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func scanStudentDetail(row pgx.Row) (*models.StudentDetail, error) {
	var detail models.StudentDetail
	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.Skills,
		&detail.Education,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.User.ID,
		&detail.User.Name,
		&detail.User.Email,
		&detail.User.Role,
		&detail.User.Phone,
		&detail.User.Bio,
		&detail.User.PhotoURL,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

type UpdateStudentProfileInput struct {
	Skills    *[]string
	Education *[]models.Education
}
