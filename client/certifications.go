package client

import (
	"context"
	"time"
)

type Certification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	Title     string    `json:"title"`
	Reference string    `json:"reference"`
	IssuedAt  time.Time `json:"issued_at"`
}

type CertificationService struct {
	b *Backend
}

// Mine lists the certifications issued to the logged-in user.
func (svc *CertificationService) Mine(ctx context.Context) ([]Certification, error) {
	var certs []Certification
	err := svc.b.get(ctx, "/certifications", nil, &certs)
	return certs, err
}

func (svc *CertificationService) Get(ctx context.Context, id int) (Certification, error) {
	var cert Certification
	err := svc.b.get(ctx, detailPath("/certifications", id), nil, &cert)
	return cert, err
}
