package repository

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"field_station/internal/models"
)

// MQTTMirror publishes each collected record as JSON on a broker topic
// for downstream consumers (irrigation controllers, alerting).
type MQTTMirror struct {
	client mqtt.Client
	topic  string
}

func NewMQTTMirror(broker, clientID, topic string) (*MQTTMirror, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %q: %w", broker, token.Error())
	}
	return &MQTTMirror{client: client, topic: topic}, nil
}

var _ RecordMirror = (*MQTTMirror)(nil)

func (m *MQTTMirror) Publish(ctx context.Context, rec models.CollectedRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %q: %w", m.topic, err)
	}
	return nil
}

func (m *MQTTMirror) Close() {
	m.client.Disconnect(250)
}
