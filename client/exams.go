package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type (
	Exam struct {
		ID        int        `json:"id"`
		CourseID  int        `json:"course_id"`
		Title     string     `json:"title"`
		Duration  int        `json:"duration_minutes"`
		Questions []Question `json:"questions"`
	}

	Question struct {
		ID      int      `json:"id"`
		Text    string   `json:"text"`
		Choices []Choice `json:"choices"`
	}

	Choice struct {
		ID   int    `json:"id"`
		Text string `json:"text"`
	}

	// Submission carries the student's answers; grading happens server-side.
	Submission struct {
		Answers []Answer `json:"answers"`
	}

	Answer struct {
		QuestionID int `json:"question_id"`
		ChoiceID   int `json:"choice_id"`
	}

	ExamResult struct {
		ExamID      int       `json:"exam_id"`
		Score       int       `json:"score"`
		Total       int       `json:"total"`
		Passed      bool      `json:"passed"`
		SubmittedAt time.Time `json:"submitted_at"`
	}
)

type ExamService struct {
	b *Backend
}

// List returns the exams of a course.
func (svc *ExamService) List(ctx context.Context, courseID int) ([]Exam, error) {
	params := url.Values{"course": []string{strconv.Itoa(courseID)}}
	var exams []Exam
	err := svc.b.get(ctx, "/exams", params, &exams)
	return exams, err
}

func (svc *ExamService) Get(ctx context.Context, id int) (Exam, error) {
	var exam Exam
	err := svc.b.get(ctx, detailPath("/exams", id), nil, &exam)
	return exam, err
}

// Submit sends the answers in and returns the backend-graded result.
func (svc *ExamService) Submit(ctx context.Context, id int, sub Submission) (ExamResult, error) {
	var result ExamResult
	if err := svc.b.send(ctx, http.MethodPost, detailPath("/exams", id)+"/submit", sub, &result); err != nil {
		return ExamResult{}, err
	}
	// a passed exam may have issued a certificate
	svc.b.invalidate("/exams", "/certifications")
	return result, nil
}

// Results lists the logged-in user's past results for an exam.
func (svc *ExamService) Results(ctx context.Context, id int) ([]ExamResult, error) {
	var results []ExamResult
	err := svc.b.get(ctx, detailPath("/exams", id)+"/results", nil, &results)
	return results, err
}
