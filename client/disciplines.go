package client

import (
	"context"
	"net/http"
)

type Discipline struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DisciplineForm struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DisciplineService struct {
	b *Backend
}

func (svc *DisciplineService) List(ctx context.Context) ([]Discipline, error) {
	var disciplines []Discipline
	err := svc.b.get(ctx, "/disciplines", nil, &disciplines)
	return disciplines, err
}

func (svc *DisciplineService) Get(ctx context.Context, id int) (Discipline, error) {
	var discipline Discipline
	err := svc.b.get(ctx, detailPath("/disciplines", id), nil, &discipline)
	return discipline, err
}

func (svc *DisciplineService) Create(ctx context.Context, form DisciplineForm) (Discipline, error) {
	var discipline Discipline
	if err := svc.b.send(ctx, http.MethodPost, "/disciplines", form, &discipline); err != nil {
		return Discipline{}, err
	}
	svc.b.invalidate("/disciplines")
	return discipline, nil
}

func (svc *DisciplineService) Update(ctx context.Context, id int, form DisciplineForm) (Discipline, error) {
	var discipline Discipline
	if err := svc.b.send(ctx, http.MethodPut, detailPath("/disciplines", id), form, &discipline); err != nil {
		return Discipline{}, err
	}
	svc.b.invalidate("/disciplines")
	return discipline, nil
}

func (svc *DisciplineService) Delete(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodDelete, detailPath("/disciplines", id), nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/disciplines")
	return nil
}
