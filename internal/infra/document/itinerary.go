package document

import (
	"bytes"
	"fmt"
	"time"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	timeLayout = "Mon 02 Jan 2006 15:04 MST"
	qrSize     = 256
)

var ErrNotConfirmed = errs.Mark(errs.New("itinerary is only available for confirmed reservations"), errs.ErrDomainValidation)

// ItineraryRenderer produces a one-page PDF itinerary for a confirmed
// reservation, with a QR code of its booking reference.
type ItineraryRenderer struct {
	location *time.Location
}

func NewItineraryRenderer(location *time.Location) *ItineraryRenderer {
	if location == nil {
		location = time.UTC
	}
	return &ItineraryRenderer{location: location}
}

func (r *ItineraryRenderer) Render(view *queries.ReservationView) ([]byte, error) {
	if view.Status != reservation.StatusConfirmed.String() {
		return nil, ErrNotConfirmed
	}

	qrPNG, err := qrcode.Encode(view.Reference, qrcode.Medium, qrSize)
	if err != nil {
		return nil, errs.Wrap(err, "encode itinerary qr code")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary "+view.Reference, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "BookYourFlight - Itinerary")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Booking reference: "+view.Reference)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Booked by: "+view.UserName+" <"+view.UserEmail+">")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 28)
	pdf.Cell(0, 14, view.Origin+"  ->  "+view.Destination)
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Flight", fmt.Sprintf("%s (%s)", view.FlightNumber, view.Airline)},
		{"Departure", view.DepartureTime.In(r.location).Format(timeLayout)},
		{"Arrival", view.ArrivalTime.In(r.location).Format(timeLayout)},
		{"Passengers", fmt.Sprintf("%d", view.PassengerCount)},
	}
	if view.Payment != nil {
		rows = append(rows, [2]string{"Total paid", formatAmount(view.Payment.AmountCents, view.Currency)})
	}
	for _, row := range rows {
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for i, p := range view.Passengers {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 7, p.FirstName+" "+p.LastName, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, p.DocumentNumber, "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 45, 45, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "render itinerary pdf")
	}
	return buf.Bytes(), nil
}

func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}
