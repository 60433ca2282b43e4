package converter

import (
	"encoding/json"
	"fmt"
	"math"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"
)

// PassengerRecord is the stored JSON shape of one manifest entry.
type PassengerRecord struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
}

type passengerData struct {
	Passengers []PassengerRecord `json:"passengers"`
}

func EncodeManifest(m reservation.Manifest) ([]byte, error) {
	data := passengerData{Passengers: make([]PassengerRecord, 0, m.Len())}
	for _, p := range m.Passengers() {
		data.Passengers = append(data.Passengers, PassengerRecord{
			FirstName:      p.FirstName(),
			LastName:       p.LastName(),
			DocumentNumber: p.DocumentNumber(),
		})
	}
	return json.Marshal(data)
}

func DecodePassengers(raw []byte) ([]PassengerRecord, error) {
	if len(raw) == 0 {
		return []PassengerRecord{}, nil
	}
	var data passengerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode passenger data: %w", err)
	}
	if data.Passengers == nil {
		data.Passengers = []PassengerRecord{}
	}
	return data.Passengers, nil
}

func ReservationToCreateParams(res *reservation.Reservation) (postgres.CreateReservationParams, error) {
	count := res.PassengerCount()
	if count > math.MaxInt32 {
		return postgres.CreateReservationParams{}, fmt.Errorf("passenger count out of int32 range: %d", count)
	}

	manifest, err := EncodeManifest(res.Manifest())
	if err != nil {
		return postgres.CreateReservationParams{}, err
	}

	return postgres.CreateReservationParams{
		ID:             res.ID(),
		UserID:         res.UserID(),
		ResourceID:     res.ResourceID(),
		PassengerCount: int32(count), // #nosec G115 -- range checked above
		PassengerData:  manifest,
		Status:         res.Status().String(),
		ExpiresAt:      res.ExpiresAt(),
		CreatedAt:      res.CreatedAt(),
	}, nil
}

func ReservationToStatusParams(res *reservation.Reservation) postgres.UpdateReservationStatusParams {
	return postgres.UpdateReservationStatusParams{
		ID:                 res.ID(),
		Status:             res.Status().String(),
		ConfirmedAt:        pgconv.TimePtrToPgtype(res.ConfirmedAt()),
		CancelledAt:        pgconv.TimePtrToPgtype(res.CancelledAt()),
		CancellationReason: pgconv.StringPtrToPgtype(res.CancellationReason()),
		UpdatedAt:          res.UpdatedAt(),
	}
}

func ReservationToDomain(row postgres.Reservations) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	records, err := DecodePassengers(row.PassengerData)
	if err != nil {
		return nil, err
	}
	passengers := make([]reservation.Passenger, len(records))
	for i, p := range records {
		passengers[i] = reservation.ReconstructPassenger(p.FirstName, p.LastName, p.DocumentNumber)
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.UserID,
		row.ResourceID,
		int(row.PassengerCount),
		reservation.ReconstructManifest(passengers),
		status,
		row.ExpiresAt,
		pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.StringPtrFromPgtype(row.CancellationReason),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
