package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type CreateHallRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=2000"`
}

type HallResponse struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type HallListResponse struct {
	Halls []HallResponse `json:"halls"`
}

func (app *Application) createHallHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateHallRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hall, err := app.catalog.AddHall(r.Context(), input.Name, input.Capacity)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) getHallHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	hall, err := app.catalog.GetHall(r.Context(), name)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listHallsHandler(w http.ResponseWriter, r *http.Request) {
	halls, err := app.catalog.ListHalls(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := HallListResponse{
		Halls: make([]HallResponse, len(halls)),
	}
	for i, hall := range halls {
		resp.Halls[i] = toHallResponse(hall)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toHallResponse(hall *domain.Hall) HallResponse {
	return HallResponse{
		Name:     hall.Name,
		Capacity: hall.Capacity,
	}
}
