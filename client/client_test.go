package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	querycache "github.com/trezcool/academia/client/cache"
	testutil "github.com/trezcool/academia/tests"
)

type staticTokens string

func (t staticTokens) Token() string { return string(t) }

// catalogStub fakes the courses resource and counts list reads.
type catalogStub struct {
	server    *httptest.Server
	listCalls int32

	lastAuth      string
	lastRequestID string
}

func newCatalogStub(t *testing.T) *catalogStub {
	t.Helper()

	stub := &catalogStub{}
	app := echo.New()
	app.GET("/courses", func(ctx echo.Context) error {
		atomic.AddInt32(&stub.listCalls, 1)
		stub.lastAuth = ctx.Request().Header.Get("Authorization")
		stub.lastRequestID = ctx.Request().Header.Get("X-Request-ID")
		return ctx.JSON(http.StatusOK, []Course{
			{ID: 1, Title: "Algebra"},
			{ID: 2, Title: "Anatomy"},
		})
	})
	app.GET("/courses/404", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "course not found"})
	})
	app.POST("/courses", func(ctx echo.Context) error {
		var form CourseForm
		if err := ctx.Bind(&form); err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, Course{ID: 3, Title: form.Title})
	})
	stub.server = httptest.NewServer(app)
	t.Cleanup(stub.server.Close)
	return stub
}

func newTestBackend(t *testing.T, stub *catalogStub, token string, cache *querycache.Cache) *Backend {
	t.Helper()
	return NewBackend(&Options{
		BaseURL: stub.server.URL,
		Tokens:  staticTokens(token),
		Cache:   cache,
		Logger:  testutil.NewLogger(),
	})
}

func TestBackend_requestHeaders(t *testing.T) {
	stub := newCatalogStub(t)
	api := newTestBackend(t, stub, "tok123", nil)

	if _, err := api.Courses.List(context.Background(), CourseFilter{}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if stub.lastAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", stub.lastAuth)
	}
	if stub.lastRequestID == "" {
		t.Error("X-Request-ID not set")
	}

	// anonymous reads carry no Authorization header at all
	api = newTestBackend(t, stub, "", nil)
	if _, err := api.Courses.List(context.Background(), CourseFilter{}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if stub.lastAuth != "" {
		t.Errorf("Authorization = %q for anonymous request", stub.lastAuth)
	}
}

func TestCourseService_List(t *testing.T) {
	stub := newCatalogStub(t)
	api := newTestBackend(t, stub, "", nil)

	courses, err := api.Courses.List(context.Background(), CourseFilter{})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(courses) != 2 || courses[0].Title != "Algebra" {
		t.Errorf("List() = %+v", courses)
	}
}

func TestBackend_apiError(t *testing.T) {
	stub := newCatalogStub(t)
	api := newTestBackend(t, stub, "", nil)

	_, err := api.Courses.Get(context.Background(), 404)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "course not found" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestBackend_caching(t *testing.T) {
	stub := newCatalogStub(t)
	api := newTestBackend(t, stub, "", querycache.New(16, time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := api.Courses.List(context.Background(), CourseFilter{}); err != nil {
			t.Fatalf("List() failed: %v", err)
		}
	}
	if stub.listCalls != 1 {
		t.Fatalf("backend hit %d times, want 1 (reads must be cached)", stub.listCalls)
	}

	// distinct filters are distinct queries
	if _, err := api.Courses.List(context.Background(), CourseFilter{Search: "algebra"}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if stub.listCalls != 2 {
		t.Fatalf("backend hit %d times, want 2", stub.listCalls)
	}

	// a mutation invalidates the resource's cached reads
	if _, err := api.Courses.Create(context.Background(), CourseForm{Title: "Biology"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := api.Courses.List(context.Background(), CourseFilter{}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if stub.listCalls != 3 {
		t.Errorf("backend hit %d times, want 3 (mutation must invalidate)", stub.listCalls)
	}
}

func TestBackend_nilCacheDisablesCaching(t *testing.T) {
	stub := newCatalogStub(t)
	api := newTestBackend(t, stub, "", nil)

	for i := 0; i < 2; i++ {
		if _, err := api.Courses.List(context.Background(), CourseFilter{}); err != nil {
			t.Fatalf("List() failed: %v", err)
		}
	}
	if stub.listCalls != 2 {
		t.Errorf("backend hit %d times, want 2", stub.listCalls)
	}
}
