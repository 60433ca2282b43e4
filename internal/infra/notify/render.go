package notify

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/pkg/errs"

	"github.com/skip2/go-qrcode"
)

//go:embed templates/*.html
var templateFS embed.FS

const departureLayout = "Mon 02 Jan 2006, 15:04 MST"

// Message is a rendered e-mail ready for a Mailer.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

type view struct {
	Subject   string
	Title     string
	Event     notification.Event
	Reference string
	Departure string
	Amount    string
	QRCode    template.URL
}

type Renderer struct {
	pages map[notification.Topic]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files := map[notification.Topic]string{
		notification.TopicReservationConfirmation: "templates/confirmation.html",
		notification.TopicReservationCancelled:    "templates/cancellation.html",
		notification.TopicReservationDeleted:      "templates/deletion.html",
	}
	pages := make(map[notification.Topic]*template.Template, len(files))
	for topic, file := range files {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, errs.Wrapf(err, "parse template %s", file)
		}
		pages[topic] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(event notification.Event) (Message, error) {
	tmpl, ok := r.pages[event.Topic]
	if !ok {
		return Message{}, errs.New(fmt.Sprintf("no template for topic %q", event.Topic))
	}

	v := view{
		Event:     event,
		Reference: event.Reference(),
		Departure: event.DepartureTime.In(time.UTC).Format(departureLayout),
		Amount:    FormatAmount(event.AmountCents, event.Currency),
	}
	switch event.Topic {
	case notification.TopicReservationConfirmation:
		v.Title = "Reservation confirmed"
		v.Subject = fmt.Sprintf("Reservation confirmed - %s %s", event.FlightNumber, v.Reference)
		qr, err := qrDataURI(v.Reference)
		if err != nil {
			return Message{}, err
		}
		v.QRCode = qr
	case notification.TopicReservationCancelled:
		v.Title = "Reservation cancelled"
		v.Subject = fmt.Sprintf("Reservation cancelled - %s", v.Reference)
	case notification.TopicReservationDeleted:
		v.Title = "Reservation removed"
		v.Subject = fmt.Sprintf("Reservation removed - %s", v.Reference)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		return Message{}, errs.Wrapf(err, "render %s", event.Topic)
	}
	return Message{
		To:      event.RecipientEmail,
		ToName:  event.RecipientName,
		Subject: v.Subject,
		HTML:    buf.String(),
	}, nil
}

func FormatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}

// QRCodePNG encodes the booking reference shown on e-mails and itineraries.
func QRCodePNG(reference string, size int) ([]byte, error) {
	png, err := qrcode.Encode(reference, qrcode.Medium, size)
	if err != nil {
		return nil, errs.Wrap(err, "encode qr code")
	}
	return png, nil
}

func qrDataURI(reference string) (template.URL, error) {
	png, err := QRCodePNG(reference, 256)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
