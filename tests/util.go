package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/session"
)

// SampleUser returns a session user with the given roles.
func SampleUser(roles ...string) session.User {
	return session.User{
		ID:    1,
		Name:  "T User",
		Email: "tuser@test.cd",
		Roles: roles,
	}
}

// Logger is a core.Logger recording entries for assertions.
type Logger struct {
	mutex   sync.Mutex
	Entries []LogEntry
}

type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger { return &Logger{} }

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Logged reports whether a message was logged at the given level.
func (l *Logger) Logged(level, msg string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	for _, e := range l.Entries {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}

// AuthStub fakes the backend's role-specific auth endpoints and records which
// one each exchange hit.
type AuthStub struct {
	Server *httptest.Server

	// canned response
	Success     bool
	AccessToken string
	User        *session.User

	mutex sync.Mutex
	hits  []string
}

func NewAuthStub(t *testing.T) *AuthStub {
	t.Helper()

	stub := &AuthStub{}
	app := echo.New()
	for _, path := range []string{
		"/auth/student/login",
		"/auth/teacher/login",
		"/auth/admin/login",
		"/auth/student/register",
		"/auth/teacher/register",
	} {
		app.POST(path, stub.handle)
	}
	stub.Server = httptest.NewServer(app)
	t.Cleanup(stub.Server.Close)
	return stub
}

func (stub *AuthStub) handle(ctx echo.Context) error {
	stub.mutex.Lock()
	stub.hits = append(stub.hits, ctx.Request().URL.Path)
	stub.mutex.Unlock()

	resp := map[string]interface{}{"success": stub.Success}
	if stub.Success {
		resp["access_token"] = stub.AccessToken
		resp["user"] = stub.User
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Hits returns the endpoints hit so far, in order.
func (stub *AuthStub) Hits() []string {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	return append([]string(nil), stub.hits...)
}

// LastHit returns the most recently hit endpoint, or "".
func (stub *AuthStub) LastHit() string {
	hits := stub.Hits()
	if len(hits) == 0 {
		return ""
	}
	return hits[len(hits)-1]
}
