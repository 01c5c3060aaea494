package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/jackc/pgx/v5"
)

type MentorProfileRepository struct {
	db DBTX
}

func NewMentorProfileRepository(db DBTX) *MentorProfileRepository {
	return &MentorProfileRepository{db: db}
}

func (r *MentorProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO mentor_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

const mentorDetailColumns = `
	mp.id, mp.user_id, mp.specialization, mp.skills, mp.education, mp.work_experience,
	mp.currently_working_at, mp.availability, mp.rating,
	(SELECT COUNT(*) FROM reviews rv WHERE rv.mentor_id = mp.id),
	mp.created_at, mp.updated_at,
	u.id, u.name, u.email, u.role, u.phone, u.bio, u.photo_url
`

func (r *MentorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.MentorDetail, error) {
	query := `
		SELECT ` + mentorDetailColumns + `
		FROM mentor_profiles mp
		JOIN users u ON u.id = mp.user_id
		WHERE mp.user_id = $1
	`
	return scanMentorDetail(r.db.QueryRow(ctx, query, userID))
}

func (r *MentorProfileRepository) GetByID(ctx context.Context, id int64) (*models.MentorDetail, error) {
	query := `
		SELECT ` + mentorDetailColumns + `
		FROM mentor_profiles mp
		JOIN users u ON u.id = mp.user_id
		WHERE mp.id = $1
	`
	return scanMentorDetail(r.db.QueryRow(ctx, query, id))
}

type MentorListFilter struct {
	Search         string
	Specialization string
	MinRating      float64
	Offset         int
	Limit          int
}

// List returns a filtered page of mentors plus the total count for the filter.
func (r *MentorProfileRepository) List(ctx context.Context, filter MentorListFilter) ([]models.MentorDetail, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		idx := len(args)
		whereParts = append(whereParts, fmt.Sprintf(
			"(LOWER(u.name) LIKE $%d OR LOWER(mp.specialization) LIKE $%d OR EXISTS (SELECT 1 FROM unnest(mp.skills) skill WHERE LOWER(skill) LIKE $%d))",
			idx, idx, idx,
		))
	}
	if specialization := strings.TrimSpace(filter.Specialization); specialization != "" {
		args = append(args, strings.ToLower(specialization))
		whereParts = append(whereParts, fmt.Sprintf("LOWER(mp.specialization) = $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		whereParts = append(whereParts, fmt.Sprintf("mp.rating >= $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT `+mentorDetailColumns+`, COUNT(*) OVER()
		FROM mentor_profiles mp
		JOIN users u ON u.id = mp.user_id
		WHERE %s
		ORDER BY mp.rating DESC, mp.id ASC
		LIMIT $%d OFFSET $%d
	`, strings.Join(whereParts, " AND "), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	mentors := make([]models.MentorDetail, 0)
	total := 0
	for rows.Next() {
		var detail models.MentorDetail
		if err := rows.Scan(
			mentorDetailDests(&detail, &total)...,
		); err != nil {
			return nil, 0, err
		}
		mentors = append(mentors, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return mentors, total, nil
}

// ListAll returns every mentor joined with its user, for recommendation scoring.
func (r *MentorProfileRepository) ListAll(ctx context.Context) ([]models.MentorDetail, error) {
	query := `
		SELECT ` + mentorDetailColumns + `
		FROM mentor_profiles mp
		JOIN users u ON u.id = mp.user_id
		ORDER BY mp.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]models.MentorDetail, 0)
	for rows.Next() {
		detail, err := scanMentorDetail(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mentors, nil
}

// UpdatePartial writes only the provided fields, keyed by the owning user.
func (r *MentorProfileRepository) UpdatePartial(ctx context.Context, userID int64, input UpdateMentorProfileInput) (*models.MentorDetail, error) {
	query := `
		UPDATE mentor_profiles
		SET specialization = COALESCE($1, specialization),
			skills = COALESCE($2, skills),
			education = COALESCE($3, education),
			work_experience = COALESCE($4, work_experience),
			currently_working_at = COALESCE($5, currently_working_at),
			availability = COALESCE($6, availability),
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		input.Specialization,
		input.Skills,
		input.Education,
		input.WorkExperience,
		input.CurrentlyWorkingAt,
		input.Availability,
		userID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// RecalculateRating overwrites the stored rating with the mean of all
// reviews for the mentor, computed in the same statement so the write can
// never disagree with the stored reviews.
func (r *MentorProfileRepository) RecalculateRating(ctx context.Context, mentorID int64) error {
	query := `
		UPDATE mentor_profiles
		SET rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE mentor_id = $1),
		    updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, mentorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMentorDetail(row pgx.Row) (*models.MentorDetail, error) {
	var detail models.MentorDetail
	if err := row.Scan(mentorDetailDests(&detail, nil)...); err != nil {
		return nil, err
	}
	return &detail, nil
}

func mentorDetailDests(detail *models.MentorDetail, total *int) []any {
	dests := []any{
		&detail.ID,
		&detail.UserID,
		&detail.Specialization,
		&detail.Skills,
		&detail.Education,
		&detail.WorkExperience,
		&detail.CurrentlyWorkingAt,
		&detail.Availability,
		&detail.Rating,
		&detail.ReviewCount,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.User.ID,
		&detail.User.Name,
		&detail.User.Email,
		&detail.User.Role,
		&detail.User.Phone,
		&detail.User.Bio,
		&detail.User.PhotoURL,
	}
	if total != nil {
		dests = append(dests, total)
	}
	return dests
}

type UpdateMentorProfileInput struct {
	Specialization     *string
	Skills             *[]string
	Education          *[]models.Education
	WorkExperience     *[]models.WorkExperience
	CurrentlyWorkingAt *string
	Availability       *[]models.AvailabilityWindow
}
