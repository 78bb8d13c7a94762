package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/odeonlabs/theater-reservation-system/internal/mocks"
	"github.com/odeonlabs/theater-reservation-system/internal/service"
	appvalidator "github.com/odeonlabs/theater-reservation-system/internal/validator"
)

type testMocks struct {
	movies       *mocks.MockMovieRepo
	halls        *mocks.MockHallRepo
	screenings   *mocks.MockScreeningRepo
	reservations *mocks.MockReservationRepo
	schedule     *mocks.MockScheduleRepo
}

func newTestApplication(policy domain.Policy) (*Application, *testMocks) {
	m := &testMocks{
		movies:       new(mocks.MockMovieRepo),
		halls:        new(mocks.MockHallRepo),
		screenings:   new(mocks.MockScreeningRepo),
		reservations: new(mocks.MockReservationRepo),
		schedule:     new(mocks.MockScheduleRepo),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog := service.NewCatalog(m.movies, m.halls)
	scheduler := service.NewScheduler(m.screenings, catalog, policy)
	ledger := service.NewLedger(m.reservations, policy)
	queries := service.NewQueryService(m.schedule, ledger, nil, 0, logger)

	app := &Application{
		config:    Config{Env: "test"},
		logger:    logger,
		validator: appvalidator.NewValidator(),
		catalog:   catalog,
		scheduler: scheduler,
		ledger:    ledger,
		queries:   queries,
	}

	return app, m
}

func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.Routes().ServeHTTP(w, r)

	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return v
}

func checkErrorMessage(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	resp := decodeResponse[ErrorResponse](t, w)
	if want != "" && resp.Message != want {
		t.Errorf("error message = %q, want %q", resp.Message, want)
	}
}

func checkValidationIssue(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	resp := decodeResponse[ValidationErrorResponse](t, w)

	for _, vErr := range resp.ValidationErrors {
		if vErr.Issue == want {
			return
		}
	}

	t.Errorf("expected validation issue %q not found in %+v", want, resp.ValidationErrors)
}

func checkStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Errorf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
