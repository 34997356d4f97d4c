package events

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// account lifecycle event names
const (
	AccountRegistered = "account.registered"
	AccountUpdated    = "account.updated"
	AccountDeleted    = "account.deleted"
)

const eventsTopic = "accounts/events"

// Publisher pushes account lifecycle events to an MQTT broker. A nil
// Publisher drops everything, so deployments without a broker run unchanged.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker and returns a Publisher.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(client mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

type accountEvent struct {
	Event string `json:"event"`
	ID    int    `json:"id"`
	Email string `json:"email,omitempty"`
}

// Publish sends one lifecycle event, best effort. Failures are logged and
// never surface to the request that triggered them.
func (p *Publisher) Publish(event string, userID int, email string) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(accountEvent{Event: event, ID: userID, Email: email})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to encode account event")
		return
	}
	token := p.client.Publish(eventsTopic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("event", event).Msg("failed to publish account event")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
