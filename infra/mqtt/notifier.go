package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/logger"
)

// Config defines the connection parameters for the booking notifier.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "aurorasync/bookings"
	}
	if c.ClientID == "" {
		c.ClientID = fmt.Sprintf("aurorasync-scheduler-%s", uuid.NewString()[:8])
	}
}

// notification is the payload published for each booking, matching the
// contract of the downstream notification channel.
type notification struct {
	BookingID      string         `json:"booking_id"`
	VehicleID      string         `json:"vehicle_id"`
	WorkshopName   string         `json:"workshop_name"`
	WorkshopCity   string         `json:"workshop_city"`
	SlotTime       time.Time      `json:"slot_time"`
	Severity       model.Severity `json:"severity"`
	Recommendation string         `json:"recommendation"`
}

// Notifier publishes booking confirmations to an MQTT topic.
type Notifier struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewNotifier connects to the broker and returns the notifier.
func NewNotifier(cfg Config) (*Notifier, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &Notifier{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("mqtt-notifier"),
	}, nil
}

// NotifyBooking publishes the booking result as JSON.
func (n *Notifier) NotifyBooking(ctx context.Context, res model.AppointmentResult) error {
	payload, err := json.Marshal(notification{
		BookingID:      res.BookingID,
		VehicleID:      res.VehicleID,
		WorkshopName:   res.AssignedWorkshop.Name,
		WorkshopCity:   res.AssignedWorkshop.City,
		SlotTime:       res.Slot.DateTime,
		Severity:       res.Priority,
		Recommendation: res.SafetyAssessment.Recommendation,
	})
	if err != nil {
		return err
	}
	tok := n.cli.Publish(n.topic, n.qos, false, payload)
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	n.cli.Disconnect(250)
	n.log.Infof("notifier disconnected")
}
