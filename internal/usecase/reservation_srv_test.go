package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"airline-api/internal/dto/request"
	"airline-api/pkg/clock"

	"go.uber.org/zap"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

const (
	upcomingFlight = 1
	departedFlight = 2
	boundaryFlight = 3
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func fixedPrice(bool) float64 { return 120 }
func passenger(name string, firstClass bool) request.Passenger {
	return request.Passenger{Name: name, FirstClass: boolPtr(firstClass)}
}

func seededStore() *memStore {
	store := newMemStore()
	store.addAirport("LIS", "Lisbon")
	store.addAirport("OPO", "Porto")
	store.addAircraft("CS-TTA", []string{"1A", "1B"}, []string{"2A", "2B", "2C", "2D"})
	store.addFlight(upcomingFlight, "CS-TTA", "LIS", "OPO", now.Add(2*time.Hour))
	store.addFlight(departedFlight, "CS-TTA", "LIS", "OPO", now.Add(-time.Hour))
	store.addFlight(boundaryFlight, "CS-TTA", "OPO", "LIS", now)
	return store
}

func newReservationFixture() (*memStore, ReservationService) {
	store := seededStore()
	svc := NewReservationService(store.repository(), clock.Fake(now), fixedPrice, zap.NewNop())
	return store, svc
}

func TestPurchaseCreatesSaleWithAllTickets(t *testing.T) {
	store, svc := newReservationFixture()

	req := &request.PurchaseRequest{
		BuyerTaxID: "123456789",
		Counter:    strPtr("lis"),
		Passengers: request.Manifest{
			passenger("Ana Silva", true),
			passenger("Rui Costa", false),
			passenger("Ana Silva", false),
		},
	}

	resp, err := svc.Purchase(context.Background(), upcomingFlight, req)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if resp.TicketCount != 3 || len(resp.Tickets) != 3 {
		t.Fatalf("ticket count = %d (%d items), want 3", resp.TicketCount, len(resp.Tickets))
	}
	if resp.FlightID != upcomingFlight {
		t.Errorf("flight id = %d, want %d", resp.FlightID, upcomingFlight)
	}
	if !resp.SoldAt.Equal(now) {
		t.Errorf("sold at = %v, want %v", resp.SoldAt, now)
	}

	tickets, _ := store.FindByReservationCode(context.Background(), resp.ReservationCode)
	if len(tickets) != 3 {
		t.Fatalf("stored tickets = %d, want 3", len(tickets))
	}

	wantNames := []string{"Ana Silva", "Rui Costa", "Ana Silva"}
	wantClass := []bool{true, false, false}
	for i, ticket := range tickets {
		if ticket.FlightID != upcomingFlight {
			t.Errorf("ticket %d flight = %d, want %d", i, ticket.FlightID, upcomingFlight)
		}
		if ticket.AircraftSerial != "CS-TTA" {
			t.Errorf("ticket %d aircraft = %q, want CS-TTA", i, ticket.AircraftSerial)
		}
		if ticket.PassengerName != wantNames[i] || ticket.IsFirstClass != wantClass[i] {
			t.Errorf("ticket %d = %q/%v, want %q/%v", i, ticket.PassengerName, ticket.IsFirstClass, wantNames[i], wantClass[i])
		}
		if ticket.Price != 120 {
			t.Errorf("ticket %d price = %v, want 120", i, ticket.Price)
		}
		if ticket.IsCheckedIn() {
			t.Errorf("ticket %d already has seat %q", i, *ticket.SeatLabel)
		}
		if resp.Tickets[i].ID != ticket.ID {
			t.Errorf("response ticket %d id = %d, want %d", i, resp.Tickets[i].ID, ticket.ID)
		}
	}

	sales, _ := store.counts()
	if sales != 1 {
		t.Errorf("sales = %d, want 1", sales)
	}
	if got := store.sales[resp.ReservationCode].Counter; got == nil || *got != "LIS" {
		t.Errorf("counter = %v, want LIS", got)
	}
}

func TestPurchaseAcceptsNonDigitTaxID(t *testing.T) {
	_, svc := newReservationFixture()

	req := &request.PurchaseRequest{
		BuyerTaxID: "AB12CD34E",
		Passengers: request.Manifest{passenger("Rui Costa", false)},
	}
	if _, err := svc.Purchase(context.Background(), upcomingFlight, req); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
}

func TestPurchaseRejected(t *testing.T) {
	valid := func() *request.PurchaseRequest {
		return &request.PurchaseRequest{
			BuyerTaxID: "123456789",
			Passengers: request.Manifest{passenger("Ana Silva", true)},
		}
	}

	tests := []struct {
		name     string
		flightID int64
		modify   func(*request.PurchaseRequest)
		wantErr  error
		wantTx   bool
		field    string
	}{
		{
			name:     "unknown flight",
			flightID: 99,
			wantErr:  ErrNotFound,
			wantTx:   true,
		},
		{
			name:     "departed flight",
			flightID: departedFlight,
			wantErr:  ErrAlreadyDeparted,
			wantTx:   true,
		},
		{
			name:     "departing right now",
			flightID: boundaryFlight,
			wantErr:  ErrAlreadyDeparted,
			wantTx:   true,
		},
		{
			name:     "empty manifest",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.Passengers = request.Manifest{} },
			wantErr:  ErrInvalidInput,
			field:    "passengers",
		},
		{
			name:     "missing manifest",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.Passengers = nil },
			wantErr:  ErrInvalidInput,
			field:    "passengers",
		},
		{
			name:     "tax id too short",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.BuyerTaxID = "12345678" },
			wantErr:  ErrInvalidInput,
			field:    "buyer_tax_id",
		},
		{
			name:     "tax id too long",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.BuyerTaxID = "1234567890" },
			wantErr:  ErrInvalidInput,
			field:    "buyer_tax_id",
		},
		{
			name:     "missing class flag",
			flightID: upcomingFlight,
			modify: func(r *request.PurchaseRequest) {
				r.Passengers = append(r.Passengers, request.Passenger{Name: "Rui Costa"})
			},
			wantErr: ErrInvalidInput,
			field:   "passengers[1].first_class",
		},
		{
			name:     "blank passenger name",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.Passengers[0].Name = "   " },
			wantErr:  ErrInvalidInput,
			field:    "passengers[0].name",
		},
		{
			name:     "malformed counter",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.Counter = strPtr("L1") },
			wantErr:  ErrInvalidInput,
			field:    "counter",
		},
		{
			name:     "unknown counter",
			flightID: upcomingFlight,
			modify:   func(r *request.PurchaseRequest) { r.Counter = strPtr("XXX") },
			wantErr:  ErrInvalidInput,
			wantTx:   true,
			field:    "counter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newReservationFixture()

			req := valid()
			if tt.modify != nil {
				tt.modify(req)
			}

			_, err := svc.Purchase(context.Background(), tt.flightID, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Purchase error = %v, want %v", err, tt.wantErr)
			}

			if tt.field != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error %v is not a *ValidationError", err)
				}
				if _, ok := verr.Fields[tt.field]; !ok {
					t.Errorf("validation fields = %v, want key %q", verr.Fields, tt.field)
				}
			}

			if sales, tickets := store.counts(); sales != 0 || tickets != 0 {
				t.Errorf("stored %d sales and %d tickets, want none", sales, tickets)
			}
			if started := store.txCount > 0; started != tt.wantTx {
				t.Errorf("transaction started = %v, want %v", started, tt.wantTx)
			}
		})
	}
}

func TestPurchaseRollsBackSaleWhenTicketsFail(t *testing.T) {
	store, svc := newReservationFixture()
	store.failTickets = true

	req := &request.PurchaseRequest{
		BuyerTaxID: "123456789",
		Passengers: request.Manifest{passenger("Ana Silva", true), passenger("Rui Costa", false)},
	}

	_, err := svc.Purchase(context.Background(), upcomingFlight, req)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("Purchase error = %v, want ErrTransient", err)
	}
	if sales, tickets := store.counts(); sales != 0 || tickets != 0 {
		t.Fatalf("stored %d sales and %d tickets after rollback, want none", sales, tickets)
	}
}

func TestPurchaseNilRequest(t *testing.T) {
	_, svc := newReservationFixture()

	if _, err := svc.Purchase(context.Background(), upcomingFlight, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Purchase(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestRandomPriceWithinRange(t *testing.T) {
	price := RandomPrice(50, 500)

	for i := 0; i < 1000; i++ {
		p := price(i%2 == 0)
		if p < 50 || p > 500 {
			t.Fatalf("price %v outside [50, 500]", p)
		}
		if cents := p * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
			t.Fatalf("price %v is not rounded to cents", p)
		}
	}
}
