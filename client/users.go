package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/trezcool/academia/core/session"
)

// Account is a platform user as seen by the administration screens.
type Account struct {
	session.User
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFilter applies AND operation on available fields.
type AccountFilter struct {
	Search string
	Role   string
}

func (af AccountFilter) values() url.Values {
	v := make(url.Values)
	if af.Search != "" {
		v.Set("search", af.Search)
	}
	if af.Role != "" {
		v.Set("role", af.Role)
	}
	return v
}

// UserService is the admin CRUD over platform users; it administers other
// accounts and never writes the local session (that is the auth service's).
type UserService struct {
	b *Backend
}

func (svc *UserService) List(ctx context.Context, filter AccountFilter) ([]Account, error) {
	var accounts []Account
	err := svc.b.get(ctx, "/users", filter.values(), &accounts)
	return accounts, err
}

func (svc *UserService) Get(ctx context.Context, id int) (Account, error) {
	var account Account
	err := svc.b.get(ctx, detailPath("/users", id), nil, &account)
	return account, err
}

func (svc *UserService) Update(ctx context.Context, id int, patch session.UserPatch) (Account, error) {
	var account Account
	if err := svc.b.send(ctx, http.MethodPut, detailPath("/users", id), patch, &account); err != nil {
		return Account{}, err
	}
	svc.b.invalidate("/users")
	return account, nil
}

func (svc *UserService) Delete(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodDelete, detailPath("/users", id), nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/users")
	return nil
}
