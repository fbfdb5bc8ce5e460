package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/guard"
	"github.com/trezcool/academia/core/session"
	notifysvc "github.com/trezcool/academia/services/notifier"
)

// user-facing copy
const (
	msgInvalidCredentials = "invalid credentials"
	msgAuthFailed         = "authentication failed, check your credentials"
	msgWelcome            = "logged in"
	msgAccountCreated     = "account created"
	msgLoggedOut          = "logged out"
)

type (
	Options struct {
		BaseURL    string
		Store      *session.Store
		Notifier   notifysvc.Service
		Navigator  guard.Navigator
		Logger     core.Logger
		HTTPClient *http.Client
	}

	// Service performs credential exchange with the backend and drives the
	// session store. It is the error boundary for all auth operations: callers
	// only ever see booleans, never an error.
	Service struct {
		baseURL  string
		store    *session.Store
		notifier notifysvc.Service
		nav      guard.Navigator
		log      core.Logger
		http     *http.Client
	}
)

func NewService(opts *Options) *Service {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// no client-side timeout: a hanging exchange stays "in progress",
		// matching the backend contract (see Config.HTTPTimeout)
		httpClient = &http.Client{Timeout: core.Conf.HTTPTimeout}
	}
	return &Service{
		baseURL:  opts.BaseURL,
		store:    opts.Store,
		notifier: opts.Notifier,
		nav:      opts.Navigator,
		log:      opts.Logger,
		http:     httpClient,
	}
}

// Login exchanges credentials against the portal's login endpoint and, on
// success, establishes the session. It resolves to a boolean: failure reasons
// are logged and surfaced as notifications, never returned.
func (s *Service) Login(ctx context.Context, email, password string, portal Portal) bool {
	email = core.CleanString(email, true /* lower */)

	res := s.exchange(ctx, portal.LoginPath(), credentials{Email: email, Password: password})
	switch res.outcome {
	case outcomeOK:
		s.notifier.Notify(notifysvc.LevelSuccess, msgWelcome)
		return true
	case outcomeRejected:
		s.notifier.Notify(notifysvc.LevelError, msgInvalidCredentials)
		return false
	default:
		s.log.Error("auth: login failed", res.err)
		s.notifier.Notify(notifysvc.LevelError, msgAuthFailed)
		return false
	}
}

// Register creates an account against the portal's registration endpoint and
// establishes the session exactly as Login does (auto-login). Same contract:
// always resolves to a boolean.
func (s *Service) Register(ctx context.Context, acct NewAccount, portal Portal) bool {
	if err := acct.Validate(); err != nil {
		s.notifyValidationError(err)
		return false
	}

	res := s.exchange(ctx, portal.RegisterPath(), &acct)
	switch res.outcome {
	case outcomeOK:
		s.notifier.Notify(notifysvc.LevelSuccess, msgAccountCreated)
		return true
	case outcomeRejected:
		s.notifier.Notify(notifysvc.LevelError, msgInvalidCredentials)
		return false
	default:
		s.log.Error("auth: registration failed", res.err)
		s.notifier.Notify(notifysvc.LevelError, msgAuthFailed)
		return false
	}
}

// Logout clears the session, confirms, and navigates back to the login
// screen. It cannot fail.
func (s *Service) Logout() {
	s.store.Clear()
	s.notifier.Notify(notifysvc.LevelInfo, msgLoggedOut)
	s.nav.NavigateTo(guard.RouteLogin)
}

// UpdateUser merges a just-saved backend profile change into the session,
// keeping the in-memory identity consistent without a full re-fetch.
func (s *Service) UpdateUser(patch session.UserPatch) {
	if err := s.store.Update(patch); err != nil {
		s.log.Error("auth: updating session user", err)
	}
}

// HasRole reports whether the logged-in user holds any of the given roles.
// It is false when no user is logged in, never an error.
func (s *Service) HasRole(roles ...string) bool {
	usr, ok := s.store.User()
	if !ok {
		return false
	}
	return usr.HasAnyRole(roles...)
}

// internal result taxonomy; mapped to a boolean plus a notification at the
// public boundary so reasons stay distinguishable for logging

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRejected
	outcomeTransport
)

type exchangeResult struct {
	outcome outcome
	err     error
}

type authResponse struct {
	Success     bool          `json:"success"`
	AccessToken string        `json:"access_token"`
	User        *session.User `json:"user"`
}

func (s *Service) exchange(ctx context.Context, path string, payload interface{}) exchangeResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return exchangeResult{outcomeTransport, errors.Wrap(err, "serializing auth payload")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return exchangeResult{outcomeTransport, errors.Wrap(err, "building auth request")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return exchangeResult{outcomeTransport, errors.Wrap(err, "calling "+path)}
	}
	defer resp.Body.Close()

	var data authResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return exchangeResult{outcomeTransport, errors.Wrap(err, "decoding auth response")}
	}
	if !data.Success {
		return exchangeResult{outcome: outcomeRejected}
	}
	if data.AccessToken == "" || data.User == nil {
		return exchangeResult{outcomeTransport, errors.New("success response missing token or user")}
	}

	if err := s.store.Set(*data.User, data.AccessToken); err != nil {
		return exchangeResult{outcomeTransport, errors.Wrap(err, "establishing session")}
	}
	return exchangeResult{outcome: outcomeOK}
}

func (s *Service) notifyValidationError(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		for _, fld := range vErr.Fields {
			s.notifier.Notify(notifysvc.LevelError, fld.Field+": "+fld.Error)
		}
		return
	}
	s.notifier.Notify(notifysvc.LevelError, err.Error())
}
