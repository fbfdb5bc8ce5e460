package auth

import (
	"context"
	"testing"

	"github.com/trezcool/academia/core/guard"
	"github.com/trezcool/academia/core/session"
	notifysvc "github.com/trezcool/academia/services/notifier"
	"github.com/trezcool/academia/storage/keystore"
	inmemstore "github.com/trezcool/academia/storage/keystore/inmem"
	testutil "github.com/trezcool/academia/tests"
)

type navRecorder struct {
	routes []string
}

func (n *navRecorder) NavigateTo(route string) { n.routes = append(n.routes, route) }

type fixture struct {
	svc      *Service
	store    *session.Store
	ks       keystore.Keystore
	notifier *notifysvc.Mock
	nav      *navRecorder
	log      *testutil.Logger
}

func setup(t *testing.T, baseURL string) *fixture {
	t.Helper()

	f := &fixture{
		ks:       inmemstore.New(),
		notifier: notifysvc.NewServiceMock(),
		nav:      &navRecorder{},
		log:      testutil.NewLogger(),
	}
	f.store = session.NewStore(f.ks, f.log)
	f.store.Bootstrap()
	f.svc = NewService(&Options{
		BaseURL:   baseURL,
		Store:     f.store,
		Notifier:  f.notifier,
		Navigator: f.nav,
		Logger:    f.log,
	})
	return f
}

func (f *fixture) lastNotification(t *testing.T) notifysvc.Notification {
	t.Helper()
	notif, ok := f.notifier.Last()
	if !ok {
		t.Fatal("no notification recorded")
	}
	return notif
}

func TestService_Login_portalRouting(t *testing.T) {
	usr := testutil.SampleUser(session.RoleStudent)
	stub := testutil.NewAuthStub(t)
	stub.Success = true
	stub.AccessToken = "tok123"
	stub.User = &usr

	tests := []struct {
		role         string
		wantEndpoint string
	}{
		{role: "student", wantEndpoint: "/auth/student/login"},
		{role: "teacher", wantEndpoint: "/auth/teacher/login"},
		// anything else lands on the admin portal
		{role: "superuser", wantEndpoint: "/auth/admin/login"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			f := setup(t, stub.Server.URL)
			if ok := f.svc.Login(context.Background(), "a@x.com", "s3cretpwd", ParsePortal(tt.role)); !ok {
				t.Fatal("Login() = false, want true")
			}
			if got := stub.LastHit(); got != tt.wantEndpoint {
				t.Errorf("hit %s, want %s", got, tt.wantEndpoint)
			}
		})
	}
}

func TestService_Login_successEstablishesSession(t *testing.T) {
	usr := session.User{ID: 1, Name: "a", Roles: []string{session.RoleStudent}}
	stub := testutil.NewAuthStub(t)
	stub.Success = true
	stub.AccessToken = "tok123"
	stub.User = &usr

	f := setup(t, stub.Server.URL)
	if ok := f.svc.Login(context.Background(), "A@X.com ", "s3cretpwd", PortalStudent); !ok {
		t.Fatal("Login() = false, want true")
	}

	got, ok := f.store.User()
	if !ok || got.ID != 1 || !got.IsStudent() {
		t.Errorf("session user = %+v, %v", got, ok)
	}
	if f.store.Token() != "tok123" {
		t.Errorf("session token = %q, want tok123", f.store.Token())
	}
	if rec, err := f.ks.Load(); err != nil || rec.AccessToken != "tok123" {
		t.Errorf("persisted record = %+v, %v", rec, err)
	}
	if notif := f.lastNotification(t); notif.Level != notifysvc.LevelSuccess || notif.Message != msgWelcome {
		t.Errorf("notification = %+v", notif)
	}
}

func TestService_Login_rejectedLeavesSession(t *testing.T) {
	stub := testutil.NewAuthStub(t)
	stub.Success = false

	f := setup(t, stub.Server.URL)
	prior := testutil.SampleUser(session.RoleTeacher)
	if err := f.store.Set(prior, "orig-token"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if ok := f.svc.Login(context.Background(), "a@x.com", "wrong", PortalTeacher); ok {
		t.Fatal("Login() = true, want false")
	}

	// the prior session survives a rejected exchange untouched
	if got, ok := f.store.User(); !ok || got.ID != prior.ID {
		t.Errorf("session user = %+v, %v; want prior user intact", got, ok)
	}
	if f.store.Token() != "orig-token" {
		t.Errorf("session token = %q, want orig-token", f.store.Token())
	}
	if notif := f.lastNotification(t); notif.Level != notifysvc.LevelError || notif.Message != msgInvalidCredentials {
		t.Errorf("notification = %+v", notif)
	}
}

func TestService_Login_transportFailure(t *testing.T) {
	stub := testutil.NewAuthStub(t)
	stub.Server.Close()

	f := setup(t, stub.Server.URL)
	if ok := f.svc.Login(context.Background(), "a@x.com", "s3cretpwd", PortalStudent); ok {
		t.Fatal("Login() = true, want false")
	}
	if _, ok := f.store.User(); ok {
		t.Error("session established despite transport failure")
	}
	if notif := f.lastNotification(t); notif.Message != msgAuthFailed {
		t.Errorf("notification = %+v, want %q", notif, msgAuthFailed)
	}
	if !f.log.Logged("error", "auth: login failed") {
		t.Error("transport failure not logged")
	}
}

func TestService_Login_malformedSuccess(t *testing.T) {
	// success:true without a token is a broken response, not a login
	usr := testutil.SampleUser(session.RoleStudent)
	stub := testutil.NewAuthStub(t)
	stub.Success = true
	stub.User = &usr

	f := setup(t, stub.Server.URL)
	if ok := f.svc.Login(context.Background(), "a@x.com", "s3cretpwd", PortalStudent); ok {
		t.Fatal("Login() = true, want false")
	}
	if _, ok := f.store.User(); ok {
		t.Error("session established from a tokenless response")
	}
	if notif := f.lastNotification(t); notif.Message != msgAuthFailed {
		t.Errorf("notification = %+v, want %q", notif, msgAuthFailed)
	}
}

func TestService_Register(t *testing.T) {
	t.Run("auto-login on success", func(t *testing.T) {
		usr := testutil.SampleUser(session.RoleStudent)
		stub := testutil.NewAuthStub(t)
		stub.Success = true
		stub.AccessToken = "tok123"
		stub.User = &usr

		f := setup(t, stub.Server.URL)
		acct := NewAccount{
			Name:            "T User",
			Email:           "tuser@test.cd",
			Password:        "s3cretpwd",
			PasswordConfirm: "s3cretpwd",
			GroupID:         3,
		}
		if ok := f.svc.Register(context.Background(), acct, PortalStudent); !ok {
			t.Fatal("Register() = false, want true")
		}
		if got := stub.LastHit(); got != "/auth/student/register" {
			t.Errorf("hit %s, want /auth/student/register", got)
		}
		if _, ok := f.store.User(); !ok {
			t.Error("no session established after registration")
		}
		if notif := f.lastNotification(t); notif.Message != msgAccountCreated {
			t.Errorf("notification = %+v", notif)
		}
	})

	t.Run("admin portal registers as teacher", func(t *testing.T) {
		usr := testutil.SampleUser(session.RoleTeacher)
		stub := testutil.NewAuthStub(t)
		stub.Success = true
		stub.AccessToken = "tok123"
		stub.User = &usr

		f := setup(t, stub.Server.URL)
		acct := NewAccount{
			Name:            "T User",
			Email:           "tuser@test.cd",
			Password:        "s3cretpwd",
			PasswordConfirm: "s3cretpwd",
			DisciplineID:    2,
		}
		if ok := f.svc.Register(context.Background(), acct, PortalAdmin); !ok {
			t.Fatal("Register() = false, want true")
		}
		if got := stub.LastHit(); got != "/auth/teacher/register" {
			t.Errorf("hit %s, want /auth/teacher/register", got)
		}
	})

	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		stub := testutil.NewAuthStub(t)

		f := setup(t, stub.Server.URL)
		acct := NewAccount{
			Name:            "T User",
			Email:           "not-an-email",
			Password:        "short",
			PasswordConfirm: "short",
		}
		if ok := f.svc.Register(context.Background(), acct, PortalStudent); ok {
			t.Fatal("Register() = true, want false")
		}
		if hits := stub.Hits(); len(hits) != 0 {
			t.Errorf("backend hit despite invalid form: %v", hits)
		}
		if len(f.notifier.Notifications) == 0 {
			t.Error("no field error notifications")
		}
	})
}

func TestService_Logout(t *testing.T) {
	stub := testutil.NewAuthStub(t)
	f := setup(t, stub.Server.URL)
	if err := f.store.Set(testutil.SampleUser(session.RoleStudent), "tok123"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	f.svc.Logout()

	if _, ok := f.store.User(); ok {
		t.Error("session still present after Logout()")
	}
	if _, err := f.ks.Load(); err != keystore.ErrNotFound {
		t.Errorf("storage not cleared: %v", err)
	}
	if notif := f.lastNotification(t); notif.Level != notifysvc.LevelInfo || notif.Message != msgLoggedOut {
		t.Errorf("notification = %+v", notif)
	}
	if len(f.nav.routes) != 1 || f.nav.routes[0] != guard.RouteLogin {
		t.Errorf("navigated to %v, want [%s]", f.nav.routes, guard.RouteLogin)
	}
}

func TestService_HasRole(t *testing.T) {
	stub := testutil.NewAuthStub(t)
	f := setup(t, stub.Server.URL)

	if f.svc.HasRole(session.RoleStudent) {
		t.Error("HasRole() = true while logged out")
	}

	if err := f.store.Set(testutil.SampleUser(session.RoleTeacher, session.RoleStudent), "tok123"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{name: "held role", roles: []string{session.RoleTeacher}, want: true},
		{name: "any of several", roles: []string{session.RoleAdmin, session.RoleStudent}, want: true},
		{name: "missing role", roles: []string{session.RoleAdmin}, want: false},
		{name: "empty input", roles: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.svc.HasRole(tt.roles...); got != tt.want {
				t.Errorf("HasRole(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestService_UpdateUser(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	stub := testutil.NewAuthStub(t)
	f := setup(t, stub.Server.URL)
	if err := f.store.Set(testutil.SampleUser(session.RoleStudent), "tok123"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	f.svc.UpdateUser(session.UserPatch{Email: strPtr("new@test.cd")})

	if got, _ := f.store.User(); got.Email != "new@test.cd" {
		t.Errorf("session email = %q, want new@test.cd", got.Email)
	}
}
