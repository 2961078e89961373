package announce

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	corelogger "github.com/kilianp07/forcecharge/core/logger"
	"github.com/kilianp07/forcecharge/core/model"
	"github.com/kilianp07/forcecharge/infra/logger"
)

const connectTimeout = 5 * time.Second

// pahoClient is the subset of the Paho client used by the announcer.
type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTAnnouncer publishes planned force-charge ranges on an MQTT topic
// so home-automation systems can react to upcoming charge windows.
type MQTTAnnouncer struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    corelogger.Logger
}

// New connects to the broker and returns a ready announcer.
func New(cfg Config) (*MQTTAnnouncer, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, errors.New("mqtt connect timeout")
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTAnnouncer{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("announce"),
	}, nil
}

// AnnounceRanges publishes the created ranges as a JSON array.
func (a *MQTTAnnouncer) AnnounceRanges(ranges []model.ForceChargeRange) error {
	payload, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("encode ranges: %w", err)
	}
	tok := a.cli.Publish(a.topic, a.qos, a.retain, payload)
	if !tok.WaitTimeout(connectTimeout) {
		return errors.New("mqtt publish timeout")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	a.log.Debugf("announced %d ranges on %s", len(ranges), a.topic)
	return nil
}

// Close disconnects from the broker.
func (a *MQTTAnnouncer) Close() {
	a.cli.Disconnect(250)
}
