package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Specialty struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DisciplineID int    `json:"discipline_id"`
}

type SpecialtyForm struct {
	Name         string `json:"name"`
	DisciplineID int    `json:"discipline_id"`
}

type SpecialtyService struct {
	b *Backend
}

// List returns specialties, optionally restricted to a discipline (0 = all).
func (svc *SpecialtyService) List(ctx context.Context, disciplineID int) ([]Specialty, error) {
	var params url.Values
	if disciplineID > 0 {
		params = url.Values{"discipline": []string{strconv.Itoa(disciplineID)}}
	}
	var specialties []Specialty
	err := svc.b.get(ctx, "/specialties", params, &specialties)
	return specialties, err
}

func (svc *SpecialtyService) Get(ctx context.Context, id int) (Specialty, error) {
	var specialty Specialty
	err := svc.b.get(ctx, detailPath("/specialties", id), nil, &specialty)
	return specialty, err
}

func (svc *SpecialtyService) Create(ctx context.Context, form SpecialtyForm) (Specialty, error) {
	var specialty Specialty
	if err := svc.b.send(ctx, http.MethodPost, "/specialties", form, &specialty); err != nil {
		return Specialty{}, err
	}
	svc.b.invalidate("/specialties")
	return specialty, nil
}

func (svc *SpecialtyService) Update(ctx context.Context, id int, form SpecialtyForm) (Specialty, error) {
	var specialty Specialty
	if err := svc.b.send(ctx, http.MethodPut, detailPath("/specialties", id), form, &specialty); err != nil {
		return Specialty{}, err
	}
	svc.b.invalidate("/specialties")
	return specialty, nil
}

func (svc *SpecialtyService) Delete(ctx context.Context, id int) error {
	if err := svc.b.send(ctx, http.MethodDelete, detailPath("/specialties", id), nil, nil); err != nil {
		return err
	}
	svc.b.invalidate("/specialties")
	return nil
}
