package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Review struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	AuthorID  int       `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewForm struct {
	CourseID int    `json:"course_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

type ReviewService struct {
	b *Backend
}

// ListByCourse returns the reviews left on a course.
func (svc *ReviewService) ListByCourse(ctx context.Context, courseID int) ([]Review, error) {
	params := url.Values{"course": []string{strconv.Itoa(courseID)}}
	var reviews []Review
	err := svc.b.get(ctx, "/reviews", params, &reviews)
	return reviews, err
}

func (svc *ReviewService) Create(ctx context.Context, form ReviewForm) (Review, error) {
	var review Review
	if err := svc.b.send(ctx, http.MethodPost, "/reviews", form, &review); err != nil {
		return Review{}, err
	}
	svc.b.invalidate("/reviews", "/courses")
	return review, nil
}
