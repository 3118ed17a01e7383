package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type PurchaseRequest struct {
	BuyerTaxID string   `json:"buyer_tax_id" validate:"required,len=9"`
	Counter    *string  `json:"counter,omitempty" validate:"omitempty,len=3,alpha"`
	Passengers Manifest `json:"passengers" validate:"required,min=1,dive"`
}

type Passenger struct {
	Name       string `json:"name" validate:"required,max=80"`
	FirstClass *bool  `json:"first_class" validate:"required"`
}

// Manifest is the ordered passenger list of one purchase. The same name may
// appear more than once; each entry becomes its own ticket.
type Manifest []Passenger

// UnmarshalJSON accepts a list of {"name", "first_class"} objects, or an
// object mapping passenger name to first-class flag. Object keys keep their
// document order and repeated keys are not collapsed.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}

	switch data[0] {
	case '[':
		var list []Passenger
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*m = list
		return nil
	case '{':
		return m.unmarshalPairs(data)
	default:
		return errors.New("passengers must be a list or an object")
	}
}

func (m *Manifest) unmarshalPairs(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	list := []Passenger{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var firstClass *bool
		if err := dec.Decode(&firstClass); err != nil || firstClass == nil {
			return fmt.Errorf("passenger %q: first class flag must be a boolean", name)
		}
		list = append(list, Passenger{Name: name, FirstClass: firstClass})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = list
	return nil
}

// UnmarshalJSON also understands the legacy "nif" and "ticket-pairs" keys.
func (r *PurchaseRequest) UnmarshalJSON(data []byte) error {
	type plain PurchaseRequest
	var aux struct {
		plain
		LegacyTaxID *string  `json:"nif"`
		LegacyPairs Manifest `json:"ticket-pairs"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = PurchaseRequest(aux.plain)
	if r.BuyerTaxID == "" && aux.LegacyTaxID != nil {
		r.BuyerTaxID = *aux.LegacyTaxID
	}
	if r.Passengers == nil && aux.LegacyPairs != nil {
		r.Passengers = aux.LegacyPairs
	}

	return nil
}

// Normalize trims passenger names and upper-cases the counter code.
func (r *PurchaseRequest) Normalize() {
	r.BuyerTaxID = strings.TrimSpace(r.BuyerTaxID)
	if r.Counter != nil {
		counter := strings.ToUpper(strings.TrimSpace(*r.Counter))
		r.Counter = &counter
	}
	for i := range r.Passengers {
		r.Passengers[i].Name = strings.TrimSpace(r.Passengers[i].Name)
	}
}
