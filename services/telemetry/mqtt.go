//go:build !tinygo

package telemetry

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"envclock-go/errcode"
)

const brokerTimeout = 5 * time.Second

type mqttPublisher struct {
	client mqtt.Client
}

// Dial connects to the broker and returns a Publisher over the session.
func Dial(broker, clientID string) (Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(brokerTimeout).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(brokerTimeout) {
		return nil, &errcode.E{C: errcode.Timeout, Op: "mqtt.connect"}
	}
	if err := tok.Error(); err != nil {
		return nil, errcode.Wrap(errcode.LinkDown, "mqtt.connect", err)
	}
	return &mqttPublisher{client: client}, nil
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	tok := p.client.Publish(topic, 0, false, payload)
	if !tok.WaitTimeout(brokerTimeout) {
		return &errcode.E{C: errcode.Timeout, Op: "mqtt.publish"}
	}
	return errcode.Wrap(errcode.LinkDown, "mqtt.publish", tok.Error())
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}
