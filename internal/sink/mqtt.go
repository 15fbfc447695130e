package sink

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"plantgen/internal/model"
)

// MQTT streams each record as a JSON payload to <prefix>/<table>, QoS 0.
// Useful for feeding pipeline tests that consume from a broker instead of
// files.
type MQTT struct {
	client mqtt.Client
	prefix string
}

// NewMQTT connects to the broker. The prefix defaults to "plantgen".
func NewMQTT(broker, prefix string) (*MQTT, error) {
	if prefix == "" {
		prefix = "plantgen"
	}
	opts := mqtt.NewClientOptions().AddBroker(broker)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return &MQTT{client: client, prefix: prefix}, nil
}

func (s *MQTT) Write(rec model.Tabular) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", rec.TableName(), err)
	}
	token := s.client.Publish(s.prefix+"/"+rec.TableName(), 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s record: %w", rec.TableName(), err)
	}
	return nil
}

func (s *MQTT) Close() error {
	s.client.Disconnect(250)
	return nil
}
