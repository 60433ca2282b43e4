package converter

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"flight-booking/internal/domain/resource"
	"flight-booking/internal/infra/postgres"
)

// FlightMetadata is the stored JSON shape of resources.metadata.
type FlightMetadata struct {
	FlightNumber  string    `json:"flightNumber"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Airline       string    `json:"airline"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

func DecodeFlightMetadata(raw []byte) (FlightMetadata, error) {
	var m FlightMetadata
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return FlightMetadata{}, fmt.Errorf("decode flight metadata: %w", err)
	}
	return m, nil
}

func ResourceToCreateParams(res *resource.Resource) (postgres.CreateResourceParams, error) {
	if res.MaxSlots() > math.MaxInt32 {
		return postgres.CreateResourceParams{}, fmt.Errorf("max slots out of int32 range: %d", res.MaxSlots())
	}
	metadata, err := encodeFlightMetadata(res.Flight())
	if err != nil {
		return postgres.CreateResourceParams{}, err
	}

	return postgres.CreateResourceParams{
		ID:          res.ID(),
		Name:        res.Name(),
		Description: res.Description(),
		Type:        res.Type().String(),
		MaxSlots:    int32(res.MaxSlots()), // #nosec G115 -- range checked above
		PriceCents:  res.Price().Cents(),
		Currency:    res.Price().Currency(),
		Metadata:    metadata,
		CreatedAt:   res.CreatedAt(),
	}, nil
}

func ResourceToUpdateParams(res *resource.Resource) (postgres.UpdateResourceParams, error) {
	if res.MaxSlots() > math.MaxInt32 {
		return postgres.UpdateResourceParams{}, fmt.Errorf("max slots out of int32 range: %d", res.MaxSlots())
	}
	metadata, err := encodeFlightMetadata(res.Flight())
	if err != nil {
		return postgres.UpdateResourceParams{}, err
	}

	return postgres.UpdateResourceParams{
		ID:          res.ID(),
		Name:        res.Name(),
		Description: res.Description(),
		MaxSlots:    int32(res.MaxSlots()), // #nosec G115 -- range checked above
		PriceCents:  res.Price().Cents(),
		Currency:    res.Price().Currency(),
		Metadata:    metadata,
		UpdatedAt:   res.UpdatedAt(),
	}, nil
}

func encodeFlightMetadata(fd resource.FlightDetails) ([]byte, error) {
	return json.Marshal(FlightMetadata{
		FlightNumber:  fd.FlightNumber,
		Origin:        fd.Origin,
		Destination:   fd.Destination,
		Airline:       fd.Airline,
		DepartureTime: fd.DepartureTime,
		ArrivalTime:   fd.ArrivalTime,
	})
}

func ResourceToDomain(row postgres.Resources) (*resource.Resource, error) {
	meta, err := DecodeFlightMetadata(row.Metadata)
	if err != nil {
		return nil, err
	}
	return resource.ReconstructResource(
		row.ID,
		row.Name,
		row.Description,
		resource.Type(row.Type),
		int(row.MaxSlots),
		int(row.AvailableSlots),
		resource.ReconstructMoney(row.PriceCents, row.Currency),
		resource.FlightDetails{
			FlightNumber:  meta.FlightNumber,
			Origin:        meta.Origin,
			Destination:   meta.Destination,
			Airline:       meta.Airline,
			DepartureTime: meta.DepartureTime,
			ArrivalTime:   meta.ArrivalTime,
		},
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
