// Package ticket builds the QR payload printed on event tickets and checks
// scanned payloads against the store record.
//
// Tickets are not signed. Anyone who can produce the JSON can produce a valid
// ticket; the scanner only checks that the registration exists.
package ticket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

const (
	// Marker is the value of the payload's type field.
	Marker = "eventra-ticket"

	// DigitalTicket is the ticket type printed by the ticket viewer.
	DigitalTicket = "Digital Ticket"

	// DefaultSize is the QR image edge in pixels.
	DefaultSize = 256

	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Scan result messages.
const (
	msgValid         = "Valid user: %s (ID: %s)"
	MsgNotRegistered = "Invalid ticket: User not registered for this event"
	MsgBadFormat     = "Invalid QR code format"
	MsgBadData       = "Invalid QR code data"
	unknownEvent     = "Unknown"
)

// Payload is the JSON content of a ticket QR code.
type Payload struct {
	Type          string   `json:"type"`
	EventID       model.ID `json:"eventId"`
	EventTitle    string   `json:"eventTitle"`
	UserID        model.ID `json:"userId"`
	UserName      string   `json:"userName"`
	EventDate     string   `json:"eventDate,omitempty"`
	EventTime     string   `json:"eventTime,omitempty"`
	EventLocation string   `json:"eventLocation,omitempty"`
	TicketType    string   `json:"ticketType,omitempty"`
	IssuedAt      string   `json:"issuedAt,omitempty"`
}

// Issue builds the ticket of holder for ev. A holder without an id is
// identified by email.
func Issue(ev model.Event, holder model.Session, now time.Time) Payload {
	userID := holder.ID
	if userID == "" {
		userID = model.ID(holder.Email)
	}
	return Payload{
		Type:          Marker,
		EventID:       ev.ID,
		EventTitle:    ev.Title,
		UserID:        userID,
		UserName:      holder.Name,
		EventDate:     ev.Date,
		EventTime:     ev.Time,
		EventLocation: ev.Location,
		TicketType:    DigitalTicket,
		IssuedAt:      now.UTC().Format(isoLayout),
	}
}

// Encode returns the canonical JSON text of p. Equal payloads encode to equal
// bytes.
func (p Payload) Encode() ([]byte, error) {
	data, err := model.MarshalCanonical(p)
	if err != nil {
		return nil, fmt.Errorf("encode ticket: %w", err)
	}
	return data, nil
}

// PNG renders p as a QR code image of size by size pixels.
func (p Payload) PNG(size int) ([]byte, error) {
	content, err := p.Encode()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return png, nil
}

// ASCII renders p as a QR code drawn with terminal block characters.
func (p Payload) ASCII() (string, error) {
	content, err := p.Encode()
	if err != nil {
		return "", err
	}
	q, err := qrcode.New(string(content), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("render ticket: %w", err)
	}
	return q.ToSmallString(false), nil
}

// Result is the outcome of scanning a ticket.
type Result struct {
	Valid      bool         `json:"valid"`
	Message    string       `json:"message"`
	EventTitle string       `json:"eventTitle"`
	UserID     model.ID     `json:"userId,omitempty"`
	UserName   string       `json:"userName,omitempty"`
	Event      *model.Event `json:"eventDetails,omitempty"`
}

// Scan checks decoded QR text against rec. A ticket is valid when it carries
// the marker and its holder is registered for an event that still exists.
// Malformed input yields an invalid result, never an error.
func Scan(rec model.Record, text string) Result {
	var raw any
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return Result{Message: MsgBadData, EventTitle: unknownEvent}
	}
	obj, ok := raw.(map[string]any)
	if !ok || obj["type"] != Marker {
		return Result{Message: MsgBadFormat, EventTitle: unknownEvent}
	}

	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Result{Message: MsgBadData, EventTitle: unknownEvent}
	}

	for _, ev := range views.UserEvents(rec, p.UserID) {
		if ev.ID == p.EventID {
			return Result{
				Valid:      true,
				Message:    fmt.Sprintf(msgValid, p.UserName, p.UserID),
				EventTitle: p.EventTitle,
				Event:      &ev,
			}
		}
	}
	return Result{
		Message:    MsgNotRegistered,
		EventTitle: p.EventTitle,
		UserID:     p.UserID,
		UserName:   p.UserName,
	}
}
