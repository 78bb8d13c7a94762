package app

import (
	"net/http"
	"time"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type CreateReservationRequest struct {
	CustomerName string `json:"customerName" validate:"required,max=100"`
	Seats        int    `json:"seats" validate:"required,min=1"`
}

type ReservationResponse struct {
	ID             string    `json:"id"`
	ScreeningID    string    `json:"screeningId"`
	CustomerName   string    `json:"customerName"`
	Seats          int       `json:"seats"`
	Status         string    `json:"status"`
	SeatsRemaining int       `json:"seatsRemaining"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RosterResponse struct {
	Reservations []domain.RosterEntry `json:"reservations"`
}

type ScreeningReservationsResponse struct {
	ScreeningID  string                `json:"screeningId"`
	Reservations []ReservationResponse `json:"reservations"`
}

func (app *Application) createReservationHandler(w http.ResponseWriter, r *http.Request) {
	screeningID, err := readScreeningIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input CreateReservationRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation, err := app.ledger.Reserve(r.Context(), screeningID, input.CustomerName, input.Seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listReservationsHandler(w http.ResponseWriter, r *http.Request) {
	roster, err := app.queries.ReservationRoster(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, RosterResponse{Reservations: roster}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listScreeningReservationsHandler(w http.ResponseWriter, r *http.Request) {
	screeningID, err := readScreeningIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservations, err := app.ledger.ListReservationsForScreening(r.Context(), screeningID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ScreeningReservationsResponse{
		ScreeningID:  screeningID.String(),
		Reservations: make([]ReservationResponse, len(reservations)),
	}
	for i, reservation := range reservations {
		resp.Reservations[i] = toReservationResponse(reservation)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservationResponse(reservation *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             reservation.ID.String(),
		ScreeningID:    reservation.ScreeningID.String(),
		CustomerName:   reservation.CustomerName,
		Seats:          reservation.Seats,
		Status:         reservation.Status,
		SeatsRemaining: reservation.SeatsRemaining,
		CreatedAt:      reservation.CreatedAt,
	}
}
