package repository

import (
	"context"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
)

type CreateReviewInput struct {
	StudentID int64
	MentorID  int64
	Rating    int
	Comment   string
}

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	query := `
		INSERT INTO reviews (student_id, mentor_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, student_id, mentor_id, rating, comment, created_at
	`
	var review models.Review
	err := r.db.QueryRow(ctx, query,
		input.StudentID,
		input.MentorID,
		input.Rating,
		input.Comment,
	).Scan(
		&review.ID,
		&review.StudentID,
		&review.MentorID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByMentorID returns the mentor's reviews denormalized with reviewer
// identity, newest first.
func (r *ReviewRepository) ListByMentorID(ctx context.Context, mentorID int64) ([]models.ReviewDetail, error) {
	query := `
		SELECT rv.id, rv.student_id, rv.mentor_id, rv.rating, rv.comment, rv.created_at,
			   sp.id, su.id, su.name, su.email, su.photo_url
		FROM reviews rv
		JOIN student_profiles sp ON sp.id = rv.student_id
		JOIN users su ON su.id = sp.user_id
		WHERE rv.mentor_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC
	`
	rows, err := r.db.Query(ctx, query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.ReviewDetail, 0)
	for rows.Next() {
		var detail models.ReviewDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.StudentID,
			&detail.MentorID,
			&detail.Rating,
			&detail.Comment,
			&detail.CreatedAt,
			&detail.Student.ProfileID,
			&detail.Student.UserID,
			&detail.Student.Name,
			&detail.Student.Email,
			&detail.Student.PhotoURL,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
