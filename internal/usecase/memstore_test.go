package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"airline-api/internal/data/entity"
	"airline-api/internal/data/repository"
)

// memStore implements every repository interface in memory. Transactions
// are serialised on txMu and undone on error, which is enough to exercise
// the services' all-or-nothing behaviour.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	airports map[string]*entity.Airport
	flights  map[int64]*entity.Flight
	seats    map[string][]*entity.Seat
	sales    map[int64]*entity.Sale
	tickets  map[int64]*entity.Ticket

	nextSale   int64
	nextTicket int64

	// conflicts makes the next n AssignSeat calls fail with ErrConflict.
	conflicts int
	// txErr, when set, is returned by WithTx without running fn.
	txErr error
	// failTickets makes CreateBatch fail after the sale was written.
	failTickets bool

	txCount int
}

func newMemStore() *memStore {
	return &memStore{
		airports: make(map[string]*entity.Airport),
		flights:  make(map[int64]*entity.Flight),
		seats:    make(map[string][]*entity.Seat),
		sales:    make(map[int64]*entity.Sale),
		tickets:  make(map[int64]*entity.Ticket),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Airport:    m,
		Flight:     m,
		Seat:       m,
		Sale:       m,
		Ticket:     m,
		Transactor: m,
	}
}

// Seeding helpers

func (m *memStore) addAirport(code, city string) {
	m.airports[code] = &entity.Airport{Code: code, Name: city + " Airport", City: city, Country: "PT"}
}

// addAircraft provisions an aircraft whose seat labels are given per class.
func (m *memStore) addAircraft(serial string, firstClass, economy []string) {
	for _, label := range firstClass {
		m.seats[serial] = append(m.seats[serial], &entity.Seat{Label: label, AircraftSerial: serial, IsFirstClass: true})
	}
	for _, label := range economy {
		m.seats[serial] = append(m.seats[serial], &entity.Seat{Label: label, AircraftSerial: serial})
	}
}

func (m *memStore) addFlight(id int64, serial, origin, destination string, departs time.Time) *entity.Flight {
	flight := &entity.Flight{
		ID:             id,
		AircraftSerial: serial,
		DepartsAt:      departs,
		ArrivesAt:      departs.Add(time.Hour),
		Origin:         origin,
		Destination:    destination,
	}
	m.flights[id] = flight
	return flight
}

func (m *memStore) addTicket(flightID int64, name string, firstClass bool) *entity.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTicket++
	ticket := &entity.Ticket{
		ID:             m.nextTicket,
		FlightID:       flightID,
		PassengerName:  name,
		Price:          100,
		IsFirstClass:   firstClass,
		AircraftSerial: m.flights[flightID].AircraftSerial,
	}
	m.tickets[ticket.ID] = ticket
	return ticket
}

func (m *memStore) ticket(id int64) *entity.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

func (m *memStore) counts() (sales, tickets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sales), len(m.tickets)
}

// Transactor

func (m *memStore) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrTransient, err)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	m.txCount++
	sales := make(map[int64]*entity.Sale, len(m.sales))
	for k, v := range m.sales {
		cp := *v
		sales[k] = &cp
	}
	tickets := make(map[int64]*entity.Ticket, len(m.tickets))
	for k, v := range m.tickets {
		cp := *v
		tickets[k] = &cp
	}
	nextSale, nextTicket := m.nextSale, m.nextTicket
	m.mu.Unlock()

	if err := fn(m.repository()); err != nil {
		m.mu.Lock()
		m.sales, m.tickets = sales, tickets
		m.nextSale, m.nextTicket = nextSale, nextTicket
		m.mu.Unlock()
		return err
	}
	return nil
}

// AirportRepository

func (m *memStore) FindAll(ctx context.Context) ([]*entity.Airport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*entity.Airport, 0, len(m.airports))
	for _, a := range m.airports {
		cp := *a
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *memStore) FindByCode(ctx context.Context, code string) (*entity.Airport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.airports[code]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// FlightRepository

func (m *memStore) FindByID(ctx context.Context, id int64) (*entity.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.flights[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memStore) LockForSeating(ctx context.Context, id int64) (*entity.Flight, error) {
	return m.FindByID(ctx, id)
}

func (m *memStore) FindDepartingBetween(ctx context.Context, origin string, from, to time.Time) ([]*entity.Flight, error) {
	return m.findFlights(func(f *entity.Flight) bool {
		return f.Origin == origin && !f.DepartsAt.Before(from) && !f.DepartsAt.After(to)
	}, 0), nil
}

func (m *memStore) FindNextAvailable(ctx context.Context, origin, destination string, after time.Time, limit int) ([]*entity.Flight, error) {
	m.mu.Lock()
	priced := make(map[int64]bool)
	for _, t := range m.tickets {
		if t.Price > 0 {
			priced[t.FlightID] = true
		}
	}
	m.mu.Unlock()

	return m.findFlights(func(f *entity.Flight) bool {
		return f.Origin == origin && f.Destination == destination && f.DepartsAt.After(after) && priced[f.ID]
	}, limit), nil
}

func (m *memStore) findFlights(match func(*entity.Flight) bool, limit int) []*entity.Flight {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []*entity.Flight{}
	for _, f := range m.flights {
		if match(f) {
			cp := *f
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DepartsAt.Equal(result[j].DepartsAt) {
			return result[i].DepartsAt.Before(result[j].DepartsAt)
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// SeatRepository

func (m *memStore) FindByAircraft(ctx context.Context, aircraftSerial string) ([]*entity.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*entity.Seat, 0, len(m.seats[aircraftSerial]))
	for _, s := range m.seats[aircraftSerial] {
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	return result, nil
}

func (m *memStore) FindFirstFree(ctx context.Context, flightID int64, aircraftSerial string, firstClass bool) (*entity.Seat, error) {
	seats, _ := m.FindByAircraft(ctx, aircraftSerial)

	m.mu.Lock()
	defer m.mu.Unlock()

	taken := m.takenLocked(flightID)
	for _, s := range seats {
		if s.IsFirstClass == firstClass && !taken[s.Label] {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStore) takenLocked(flightID int64) map[string]bool {
	taken := make(map[string]bool)
	for _, t := range m.tickets {
		if t.FlightID == flightID && t.SeatLabel != nil {
			taken[*t.SeatLabel] = true
		}
	}
	return taken
}

// SaleRepository

func (m *memStore) Create(ctx context.Context, sale *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSale++
	sale.ReservationCode = m.nextSale
	cp := *sale
	m.sales[sale.ReservationCode] = &cp
	return nil
}

// TicketRepository

func (m *memStore) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failTickets {
		return fmt.Errorf("insert ticket: %w", repository.ErrTransient)
	}

	for _, t := range tickets {
		if _, ok := m.sales[t.ReservationCode]; !ok {
			return fmt.Errorf("ticket references unknown sale %d", t.ReservationCode)
		}
		m.nextTicket++
		t.ID = m.nextTicket
		cp := *t
		m.tickets[t.ID] = &cp
	}
	return nil
}

func (m *memStore) FindByReservationCode(ctx context.Context, reservationCode int64) ([]*entity.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []*entity.Ticket{}
	for _, t := range m.tickets {
		if t.ReservationCode == reservationCode {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) FindUnseatedForUpdate(ctx context.Context, id int64) (*entity.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tickets[id]
	if !ok || t.SeatLabel != nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) AssignSeat(ctx context.Context, id int64, seatLabel, aircraftSerial string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflicts > 0 {
		m.conflicts--
		return fmt.Errorf("assign seat %s: %w", seatLabel, repository.ErrConflict)
	}

	t, ok := m.tickets[id]
	if !ok || t.SeatLabel != nil {
		return fmt.Errorf("%w: ticket %d already has a seat", repository.ErrConflict, id)
	}
	if m.takenLocked(t.FlightID)[seatLabel] {
		return fmt.Errorf("%w: seat %s taken on flight %d", repository.ErrConflict, seatLabel, t.FlightID)
	}

	label := seatLabel
	t.SeatLabel = &label
	t.AircraftSerial = aircraftSerial
	return nil
}
