package event

import (
	"encoding/json"
	"fmt"

	"github.com/nais/exchangerator/pkg/azure/result"
)

type Name string

const (
	Provisioned Name = "ExchangeApplicationProvisioned"
)

type Event struct {
	ID          string      `json:"@id"`
	EventName   Name        `json:"@event_name"`
	Application Application `json:"application"`
}

func NewEvent(ID string, eventName Name, app result.Application) Event {
	application := Application{
		Name:     app.DisplayName,
		ClientId: app.ClientId,
		ObjectId: app.ObjectId,
		Tenant:   app.Tenant,
	}

	return Event{ID: ID, EventName: eventName, Application: application}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e Event) String() string {
	return fmt.Sprintf("%s (%s)", e.EventName, e.ID)
}
