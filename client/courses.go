package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Course struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DisciplineID int       `json:"discipline_id"`
	SpecialtyID  int       `json:"specialty_id"`
	TeacherID    int       `json:"teacher_id"`
	Cover        string    `json:"cover,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CourseForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisciplineID int    `json:"discipline_id"`
	SpecialtyID  int    `json:"specialty_id"`
	Cover        string `json:"cover,omitempty"`
}

// CourseFilter applies AND operation on available fields.
type CourseFilter struct {
	DisciplineID int
	SpecialtyID  int
	Search       string
}

func (cf CourseFilter) values() url.Values {
	v := make(url.Values)
	if cf.DisciplineID > 0 {
		v.Set("discipline", strconv.Itoa(cf.DisciplineID))
	}
	if cf.SpecialtyID > 0 {
		v.Set("specialty", strconv.Itoa(cf.SpecialtyID))
	}
	if cf.Search != "" {
		v.Set("search", cf.Search)
	}
	return v
}

type CourseService struct {
	b *Backend
}

func (svc *CourseService) List(ctx context.Context, filter CourseFilter) ([]Course, error) {
	var courses []Course
	err := svc.b.get(ctx, "/courses", filter.values(), &courses)
	return courses, err
}

func (svc *CourseService) Get(ctx context.Context, id int) (Course, error) {
	var course Course
	err := svc.b.get(ctx, detailPath("/courses", id), nil, &course)
	return course, err
}

func (svc *CourseService) Create(ctx context.Context, form CourseForm) (Course, error) {
	var course Course
	if err := svc.b.send(ctx, http.MethodPost, "/courses", form, &course); err != nil {
		return Course{}, err
	}
	svc.b.invalidate("/courses")
	return course, nil
}

func (svc *CourseService) Update(ctx context.Context, id int, form CourseForm) (Course, error) {
	var course Course
	if err := svc.b.send(ctx, http.MethodPut, detailPath("/courses", id), form, &course); err != nil {
		return Course{}, err
	}
	svc.b.invalidate("/courses")
	return course, nil
}

func (svc *CourseService) Delete(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodDelete, detailPath("/courses", id), nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/courses")
	return nil
}

// Enroll registers the logged-in student on a course.
func (svc *CourseService) Enroll(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodPost, detailPath("/courses", id)+"/enroll", nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/courses")
	return nil
}

// Enrolled lists the courses the logged-in user is enrolled in.
func (svc *CourseService) Enrolled(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := svc.b.get(ctx, "/courses/enrolled", nil, &courses)
	return courses, err
}
