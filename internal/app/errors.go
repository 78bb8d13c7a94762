package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	appvalidator "github.com/odeonlabs/theater-reservation-system/internal/validator"
)

const (
	ErrInternalServer = "The server encountered a problem and could not process your request"
	ErrResourceBusy   = "The resource is busy, please retry shortly"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestID string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ValidationErrorResponse{
		Message: "The request contains invalid fields",
	}

	for _, fieldErr := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// domainErrorResponse maps core error values onto HTTP statuses. Every
// expected failure of the engine passes through here; anything unrecognized
// is a 500.
func (app *Application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		conflictErr domain.SchedulingConflictError
		capacityErr domain.InsufficientCapacityError
		limitErr    domain.PerBookingLimitError
	)

	switch {
	case errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrHallNotFound),
		errors.Is(err, domain.ErrScreeningNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrDuplicateMovie),
		errors.Is(err, domain.ErrDuplicateHall),
		errors.Is(err, domain.ErrDuplicateReservation):
		app.errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.As(err, &conflictErr), errors.As(err, &capacityErr):
		app.errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.As(err, &limitErr), errors.Is(err, domain.ErrInvalidInput):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrBusy):
		w.Header().Set("Retry-After", "1")
		app.errorResponse(w, r, http.StatusServiceUnavailable, ErrResourceBusy)

	default:
		app.serverErrorResponse(w, r, err)
	}
}
