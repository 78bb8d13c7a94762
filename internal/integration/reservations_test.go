package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/odeonlabs/theater-reservation-system/internal/app"
	"github.com/stretchr/testify/suite"
)

type ReservationSuite struct {
	BaseSuite
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) seedScreening(capacity int) app.ScreeningResponse {
	s.createMovie("Dune", 155)
	s.createHall("Oak", capacity)

	return s.createScreening("Dune", "Oak", "2026-09-04", "19:30")
}

func (s *ReservationSuite) reserve(screeningID, customer string, seats int) *http.Response {
	s.T().Helper()

	return s.postJSON(s.reservationsURL(screeningID), app.CreateReservationRequest{
		CustomerName: customer,
		Seats:        seats,
	})
}

func (s *ReservationSuite) TestReserveSeats() {
	screening := s.seedScreening(50)

	resp := s.reserve(screening.ID, "Alice", 10)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	reservation := decodeBody[app.ReservationResponse](&s.BaseSuite, resp)
	s.Equal(screening.ID, reservation.ScreeningID)
	s.Equal("Alice", reservation.CustomerName)
	s.Equal(10, reservation.Seats)
	s.Equal("confirmed", reservation.Status)
	s.Equal(40, reservation.SeatsRemaining)

	resp = s.getJSON("/screenings/" + screening.ID)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	updated := decodeBody[app.ScreeningResponse](&s.BaseSuite, resp)
	s.Equal(40, updated.SeatsRemaining)
}

func (s *ReservationSuite) TestInsufficientCapacity() {
	screening := s.seedScreening(12)

	resp := s.reserve(screening.ID, "Alice", 8)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.reserve(screening.ID, "Bob", 9)
	s.Require().Equal(http.StatusConflict, resp.StatusCode)

	errResp := decodeBody[app.ErrorResponse](&s.BaseSuite, resp)
	s.Equal("not enough seats: requested 9, 4 available", errResp.Message)

	// the failed booking must not burn any seats
	resp = s.getJSON("/screenings/" + screening.ID)
	updated := decodeBody[app.ScreeningResponse](&s.BaseSuite, resp)
	s.Equal(4, updated.SeatsRemaining)
}

func (s *ReservationSuite) TestDuplicateCustomerRejected() {
	screening := s.seedScreening(50)

	resp := s.reserve(screening.ID, "Alice", 4)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.reserve(screening.ID, "Alice", 2)
	s.Require().Equal(http.StatusConflict, resp.StatusCode)

	errResp := decodeBody[app.ErrorResponse](&s.BaseSuite, resp)
	s.Equal("customer already holds a reservation for this screening", errResp.Message)

	resp = s.getJSON("/screenings/" + screening.ID)
	updated := decodeBody[app.ScreeningResponse](&s.BaseSuite, resp)
	s.Equal(46, updated.SeatsRemaining)
}

func (s *ReservationSuite) TestPerBookingLimit() {
	screening := s.seedScreening(50)

	resp := s.reserve(screening.ID, "Alice", 11)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *ReservationSuite) TestUnknownScreeningReturnsNotFound() {
	s.seedScreening(50)

	resp := s.reserve("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "Alice", 2)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ReservationSuite) TestRosterOrderedByShowing() {
	s.createMovie("Dune", 155)
	s.createMovie("Arrival", 116)
	s.createHall("Oak", 50)
	s.createHall("Grand", 120)

	evening := s.createScreening("Dune", "Oak", "2026-09-04", "21:00")
	matinee := s.createScreening("Arrival", "Grand", "2026-09-04", "14:00")

	s.reserve(evening.ID, "Carol", 2).Body.Close()
	s.reserve(matinee.ID, "Alice", 3).Body.Close()
	s.reserve(matinee.ID, "Bob", 1).Body.Close()

	resp := s.getJSON("/reservations")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	roster := decodeBody[app.RosterResponse](&s.BaseSuite, resp)
	s.Require().Len(roster.Reservations, 3)

	s.Equal("Alice", roster.Reservations[0].CustomerName)
	s.Equal("Arrival", roster.Reservations[0].MovieTitle)
	s.Equal("Bob", roster.Reservations[1].CustomerName)
	s.Equal("Carol", roster.Reservations[2].CustomerName)
	s.Equal("Dune", roster.Reservations[2].MovieTitle)
}

func (s *ReservationSuite) TestListScreeningReservations() {
	screening := s.seedScreening(50)

	s.reserve(screening.ID, "Alice", 3).Body.Close()
	s.reserve(screening.ID, "Bob", 2).Body.Close()

	resp := s.getJSON(s.reservationsURL(screening.ID))
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	list := decodeBody[app.ScreeningReservationsResponse](&s.BaseSuite, resp)
	s.Equal(screening.ID, list.ScreeningID)
	s.Require().Len(list.Reservations, 2)
}

// TestConcurrentReservationsNeverOversell hammers a single screening from
// many goroutines and checks that the confirmed seats sum to exactly the
// hall capacity, with every surplus request turned away.
func (s *ReservationSuite) TestConcurrentReservationsNeverOversell() {
	const (
		capacity      = 50
		seatsEach     = 5
		customerCount = 20
	)

	screening := s.seedScreening(capacity)

	type outcome struct {
		status int
		seats  int
	}

	results := make(chan outcome, customerCount)

	var wg sync.WaitGroup
	for i := 0; i < customerCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			status, err := s.reserveWithRetry(screening.ID, fmt.Sprintf("customer-%02d", i), seatsEach)
			if err != nil {
				s.T().Errorf("reservation request failed: %v", err)
				return
			}

			results <- outcome{status: status, seats: seatsEach}
		}(i)
	}

	wg.Wait()
	close(results)

	var booked, confirmed, rejected int
	for res := range results {
		switch res.status {
		case http.StatusCreated:
			confirmed++
			booked += res.seats
		case http.StatusConflict:
			rejected++
		default:
			s.T().Errorf("unexpected status %d", res.status)
		}
	}

	s.Equal(capacity, booked)
	s.Equal(capacity/seatsEach, confirmed)
	s.Equal(customerCount-capacity/seatsEach, rejected)

	resp := s.getJSON("/screenings/" + screening.ID)
	updated := decodeBody[app.ScreeningResponse](&s.BaseSuite, resp)
	s.Equal(0, updated.SeatsRemaining)

	resp = s.getJSON(s.reservationsURL(screening.ID))
	list := decodeBody[app.ScreeningReservationsResponse](&s.BaseSuite, resp)
	s.Len(list.Reservations, confirmed)
}

// reserveWithRetry retries bookings turned away with 503 while the
// screening row is contended. A timed-out booking never commits, so the
// retry cannot double-book.
func (s *ReservationSuite) reserveWithRetry(screeningID, customer string, seats int) (int, error) {
	payload, err := json.Marshal(app.CreateReservationRequest{
		CustomerName: customer,
		Seats:        seats,
	})
	if err != nil {
		return 0, err
	}

	url := s.server.URL + s.reservationsURL(screeningID)

	for attempt := 0; attempt < 5; attempt++ {
		resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			return 0, err
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusServiceUnavailable {
			return resp.StatusCode, nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return http.StatusServiceUnavailable, nil
}
