// Package mqtt feeds sensor payloads published to an MQTT topic into the ingest pipeline.
// The broker's own authentication is the trust boundary, so no ingest token is checked here.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hydro_monitor/internal/config"
	"hydro_monitor/internal/logger"
	"hydro_monitor/internal/models"
	"hydro_monitor/internal/normalizer"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	subscribeQoS      = byte(1) // at least once
	subscribeTimeout  = 5 * time.Second
	ingestTimeout     = 5 * time.Second
	connectPoll       = 200 * time.Millisecond
	disconnectQuiesce = 250 // ms
)

// ErrStopped is returned by Connect after Disconnect.
var ErrStopped = errors.New("subscriber stopped")

// Ingestor is the part of the ingest service the subscriber needs.
type Ingestor interface {
	Ingest(ctx context.Context, p normalizer.Payload) (models.Reading, error)
}

type Subscriber struct {
	client mqtt.Client
	cfg    config.MQTTConfig
	ingest Ingestor
	log    *logger.Logger

	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSubscriber(cfg config.MQTTConfig, ingest Ingestor, log *logger.Logger) *Subscriber {
	s := &Subscriber{
		cfg:    cfg,
		ingest: ingest,
		log:    log,
		stopCh: make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.URL())
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Clean sessions drop subscriptions, so subscribe again on every (re)connect.
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		s.setConnected(true)
		s.log.Infow("mqtt_connected", "broker", cfg.URL())
		if err := s.subscribe(c); err != nil {
			s.log.Errorw("mqtt_subscribe_failed", "topic", cfg.Topic, "err", err)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.setConnected(false)
		s.log.Warnw("mqtt_connection_lost", "err", err)
	})

	s.client = mqtt.NewClient(opts)
	return s
}

// Connect starts the broker connection and waits until it is established, ctx ends or Disconnect is called.
func (s *Subscriber) Connect(ctx context.Context) error {
	select {
	case <-s.stopCh:
		return ErrStopped
	default:
	}
	if s.IsConnected() {
		return nil
	}

	token := s.client.Connect()
	for !token.WaitTimeout(connectPoll) {
		select {
		case <-ctx.Done():
			s.client.Disconnect(0)
			return ctx.Err()
		case <-s.stopCh:
			s.client.Disconnect(0)
			return ErrStopped
		default:
		}
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

func (s *Subscriber) subscribe(c mqtt.Client) error {
	token := c.Subscribe(s.cfg.Topic, subscribeQoS, s.handleMessage)
	if !token.WaitTimeout(subscribeTimeout) {
		return fmt.Errorf("subscribe timeout for topic %s", s.cfg.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.cfg.Topic, err)
	}
	s.log.Infow("mqtt_subscribed", "topic", s.cfg.Topic, "qos", subscribeQoS)
	return nil
}

// handleMessage runs one published payload through the same pipeline as POST /api/ingest.
func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	saved, err := s.ingest.Ingest(ctx, normalizer.DecodePayload(msg.Payload()))
	if err != nil {
		s.log.Errorw("mqtt_ingest_failed", "topic", msg.Topic(), "err", err)
		return
	}
	s.log.Debugw("mqtt_ingest_stored", "topic", msg.Topic(), "size", len(msg.Payload()), "ts", saved.Timestamp)
}

func (s *Subscriber) IsConnected() bool {
	s.mu.RLock()
	connected := s.connected
	s.mu.RUnlock()
	return connected && s.client.IsConnected()
}

// Disconnect unsubscribes and closes the connection. Safe to call more than once.
func (s *Subscriber) Disconnect() {
	s.stopOnce.Do(func() { close(s.stopCh) })

	if s.IsConnected() {
		s.client.Unsubscribe(s.cfg.Topic).WaitTimeout(2 * time.Second)
	}
	s.client.Disconnect(disconnectQuiesce)
	s.setConnected(false)
	s.log.Infow("mqtt_disconnected")
}

func (s *Subscriber) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}
