package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type DailyScheduleResponse struct {
	Date     string                 `json:"date"`
	Schedule []domain.ScheduleEntry `json:"schedule"`
}

func (app *Application) dailyScheduleHandler(w http.ResponseWriter, r *http.Request) {
	date, err := readDateParam(chi.URLParam(r, "date"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedule, err := app.queries.DailySchedule(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := DailyScheduleResponse{
		Date:     date.Format("2006-01-02"),
		Schedule: schedule,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
