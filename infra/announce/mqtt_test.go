package announce

import (
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/forcecharge/core/model"
)

type mockToken struct{ err error }

func (t *mockToken) Wait() bool                     { return true }
func (t *mockToken) WaitTimeout(time.Duration) bool { return true }
func (t *mockToken) Error() error                   { return t.err }
func (t *mockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type mockClient struct {
	published map[string][]byte
	connected bool
}

func (m *mockClient) Connect() paho.Token {
	m.connected = true
	return &mockToken{}
}

func (m *mockClient) Disconnect(uint) { m.connected = false }

func (m *mockClient) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	if m.published == nil {
		m.published = map[string][]byte{}
	}
	m.published[topic] = payload.([]byte)
	return &mockToken{}
}

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	old := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return mc }
	t.Cleanup(func() { newMQTTClient = old })
}

func TestMQTTAnnouncer_PublishesRanges(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)

	ann, err := New(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("new announcer: %v", err)
	}
	defer ann.Close()

	ranges := []model.ForceChargeRange{{
		ID:       "rng_1",
		StartsAt: time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 1, 10, 4, 0, 0, 0, time.UTC),
		State:    model.RangeStatePlanned,
		Source:   model.RangeSourceAutomatic,
	}}
	if err := ann.AnnounceRanges(ranges); err != nil {
		t.Fatalf("announce: %v", err)
	}

	payload, ok := mc.published["forcecharge/ranges"]
	if !ok {
		t.Fatalf("nothing published on default topic, got %v", mc.published)
	}
	var decoded []model.ForceChargeRange
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "rng_1" {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestMQTTAnnouncer_CloseDisconnects(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)

	ann, err := New(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("new announcer: %v", err)
	}
	ann.Close()
	if mc.connected {
		t.Fatal("client still connected after Close")
	}
}
