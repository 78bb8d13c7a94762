package app

import (
	"fmt"
	"net/http"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type CreateScreeningRequest struct {
	MovieTitle string `json:"movieTitle" validate:"required,max=200"`
	HallName   string `json:"hallName" validate:"required,max=100"`
	Date       string `json:"date" validate:"required,show_date"`
	Time       string `json:"time" validate:"required,show_time"`
}

type ScreeningResponse struct {
	ID             string `json:"id"`
	MovieTitle     string `json:"movieTitle"`
	HallName       string `json:"hallName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	SeatsRemaining int    `json:"seatsRemaining"`
}

type ScreeningListResponse struct {
	Date       string              `json:"date"`
	Screenings []ScreeningResponse `json:"screenings"`
}

func (app *Application) createScreeningHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateScreeningRequest

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

	date, err := readDateParam(input.Date)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.scheduler.AddScreening(r.Context(), input.MovieTitle, input.HallName, date, input.Time)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) getScreeningHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readScreeningIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.scheduler.GetScreening(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// findScreeningHandler resolves a screening from the customer-facing triple
// (movie, date, time), mirroring how bookings were looked up in the legacy
// flow.
func (app *Application) findScreeningHandler(w http.ResponseWriter, r *http.Request) {
	movieTitle := r.URL.Query().Get("movie")
	if movieTitle == "" {
		app.badRequestResponse(w, r, fmt.Errorf("query parameter %q is required", "movie"))
		return
	}

	date, err := readDateParam(r.URL.Query().Get("date"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	startTime := r.URL.Query().Get("time")

	screening, err := app.scheduler.FindScreening(r.Context(), movieTitle, date, startTime)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listScreeningsHandler(w http.ResponseWriter, r *http.Request) {
	date, err := readDateParam(r.URL.Query().Get("date"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screenings, err := app.scheduler.ListScreeningsForDate(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ScreeningListResponse{
		Date:       date.Format("2006-01-02"),
		Screenings: make([]ScreeningResponse, len(screenings)),
	}
	for i, screening := range screenings {
		resp.Screenings[i] = toScreeningResponse(screening)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toScreeningResponse(screening *domain.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:             screening.ID.String(),
		MovieTitle:     screening.MovieTitle,
		HallName:       screening.HallName,
		Date:           screening.ShowDate.Format("2006-01-02"),
		Time:           screening.StartTime,
		SeatsRemaining: screening.SeatsRemaining,
	}
}
