package planner

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// PlanResult is the wire form of a finished planning run.
type PlanResult struct {
	Map        string  `json:"map"`
	Start      Point   `json:"start"`
	Goal       Point   `json:"goal"`
	Found      bool    `json:"found"`
	Plan       Plan    `json:"plan"`
	LengthCell float64 `json:"lengthCells"`
	Timestamp  int64   `json:"timestamp"`
}

// Publisher pushes plan results to MQTT so downstream consumers (dashboards,
// robot executors) can pick them up. Results are also cached locally for the
// HTTP surface.
type Publisher struct {
	client        mqtt.Client
	publishPrefix string
	qos           byte
	retain        bool
	mu            sync.RWMutex
	results       map[string]*PlanResult
}

// NewPublisher creates a plan publisher. An empty prefix defaults to
// "gridplan". A nil client disables publishing (for testing the cache side).
func NewPublisher(client mqtt.Client, publishPrefix string) *Publisher {
	if publishPrefix == "" {
		publishPrefix = "gridplan"
	}
	return &Publisher{
		client:        client,
		publishPrefix: publishPrefix,
		qos:           0,    // fire and forget
		retain:        true, // retain the latest plan per map
		results:       make(map[string]*PlanResult),
	}
}

// PublishPlan publishes the plan computed for the named map to
// "<prefix>/plans/<name>" and caches it locally.
func (p *Publisher) PublishPlan(name string, start, goal Point, plan Plan) error {
	result := &PlanResult{
		Map:        name,
		Start:      start,
		Goal:       goal,
		Found:      plan.Found(),
		Plan:       plan,
		LengthCell: plan.Length(),
		Timestamp:  time.Now().Unix(),
	}

	p.mu.Lock()
	p.results[name] = result
	p.mu.Unlock()

	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling plan result: %w", err)
	}

	topic := fmt.Sprintf("%s/plans/%s", p.publishPrefix, name)
	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}
	return nil
}

// LastResult returns the most recent result for a map name.
func (p *Publisher) LastResult(name string) (*PlanResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.results[name]
	return r, ok
}

// SetQoS sets the publish quality of service (0, 1, or 2).
func (p *Publisher) SetQoS(qos byte) {
	if qos <= 2 {
		p.qos = qos
	}
}

// SetRetain controls whether the broker retains the latest result.
func (p *Publisher) SetRetain(retain bool) {
	p.retain = retain
}

// ConnectMQTT builds and connects a paho client from config.
func ConnectMQTT(cfg MQTTConfig) (mqtt.Client, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt.broker is required")
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("gridplan-%d", time.Now().UnixNano())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timeout connecting to MQTT broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, err)
	}
	return client, nil
}
