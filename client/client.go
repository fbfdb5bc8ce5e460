package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	querycache "github.com/trezcool/academia/client/cache"
	"github.com/trezcool/academia/core"
)

// TokenSource provides the bearer token attached to outgoing requests.
// The session store implements it; an empty token means "not logged in".
type TokenSource interface {
	Token() string
}

type (
	Options struct {
		BaseURL    string
		Tokens     TokenSource
		Cache      *querycache.Cache // optional; nil disables read caching
		Logger     core.Logger
		HTTPClient *http.Client
	}

	// Backend bundles one thin typed client per backend resource. Each
	// operation is request shaping and response typing only; all business
	// rules live server-side.
	Backend struct {
		baseURL string
		tokens  TokenSource
		cache   *querycache.Cache
		log     core.Logger
		http    *http.Client

		Courses        *CourseService
		Disciplines    *DisciplineService
		Specialties    *SpecialtyService
		Exams          *ExamService
		Certifications *CertificationService
		Groups         *GroupService
		Reviews        *ReviewService
		Users          *UserService
	}
)

func NewBackend(opts *Options) *Backend {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: core.Conf.HTTPTimeout}
	}
	b := &Backend{
		baseURL: opts.BaseURL,
		tokens:  opts.Tokens,
		cache:   opts.Cache,
		log:     opts.Logger,
		http:    httpClient,
	}
	b.Courses = &CourseService{b}
	b.Disciplines = &DisciplineService{b}
	b.Specialties = &SpecialtyService{b}
	b.Exams = &ExamService{b}
	b.Certifications = &CertificationService{b}
	b.Groups = &GroupService{b}
	b.Reviews = &ReviewService{b}
	b.Users = &UserService{b}
	return b
}

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// get performs a cached GET; identical in-flight queries are deduplicated and
// results live until invalidated by a mutation or expired by TTL.
func (b *Backend) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	fullPath := path
	if len(params) > 0 {
		fullPath += "?" + params.Encode()
	}

	fetch := func() ([]byte, error) { return b.do(ctx, http.MethodGet, fullPath, nil) }

	var data []byte
	var err error
	if b.cache != nil {
		data, err = b.cache.Do(fullPath, fetch)
	} else {
		data, err = fetch()
	}
	if err != nil {
		return err
	}
	return decode(data, out)
}

// send performs an uncached request (mutations); callers invalidate the
// affected query keys afterwards.
func (b *Backend) send(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "serializing request body")
		}
		body = bytes.NewReader(data)
	}
	data, err := b.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (b *Backend) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := b.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	b.log.Debug(fmt.Sprintf("backend: %s %s -> %d", method, path, resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}
	return data, nil
}

func (b *Backend) invalidate(prefixes ...string) {
	if b.cache != nil {
		b.cache.Invalidate(prefixes...)
	}
}

func decode(data []byte, out interface{}) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, out), "decoding response body")
}

func detailPath(base string, id int) string {
	return fmt.Sprintf("%s/%d", base, id)
}
