package client

import (
	"context"
	"net/http"
)

type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SpecialtyID int    `json:"specialty_id"`
}

type GroupForm struct {
	Name        string `json:"name"`
	SpecialtyID int    `json:"specialty_id"`
}

type GroupService struct {
	b *Backend
}

func (svc *GroupService) List(ctx context.Context) ([]Group, error) {
	var groups []Group
	err := svc.b.get(ctx, "/groups", nil, &groups)
	return groups, err
}

func (svc *GroupService) Get(ctx context.Context, id int) (Group, error) {
	var group Group
	err := svc.b.get(ctx, detailPath("/groups", id), nil, &group)
	return group, err
}

func (svc *GroupService) Create(ctx context.Context, form GroupForm) (Group, error) {
	var group Group
	if err := svc.b.send(ctx, http.MethodPost, "/groups", form, &group); err != nil {
		return Group{}, err
	}
	svc.b.invalidate("/groups")
	return group, nil
}

func (svc *GroupService) Update(ctx context.Context, id int, form GroupForm) (Group, error) {
	var group Group
	if err := svc.b.send(ctx, http.MethodPut, detailPath("/groups", id), form, &group); err != nil {
		return Group{}, err
	}
	svc.b.invalidate("/groups")
	return group, nil
}

func (svc *GroupService) Delete(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodDelete, detailPath("/groups", id), nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/groups")
	return nil
}
