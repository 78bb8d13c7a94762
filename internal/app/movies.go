package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type CreateMovieRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Duration int    `json:"duration" validate:"required,min=1,max=600"`
}

type MovieResponse struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

func (app *Application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateMovieRequest

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

	movie, err := app.catalog.AddMovie(r.Context(), input.Title, input.Duration)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) getMovieHandler(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	movie, err := app.catalog.GetMovie(r.Context(), title)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.catalog.ListMovies(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{
		Movies: make([]MovieResponse, len(movies)),
	}
	for i, movie := range movies {
		resp.Movies[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		Title:    movie.Title,
		Duration: movie.Duration,
	}
}
