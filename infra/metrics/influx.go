package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/let-the-dreamers-rise/aurorasync-os/core/metrics"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/logger"
)

// InfluxConfig holds the InfluxDB connection parameters.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes scheduling events to InfluxDB using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing backend never blocks
// scheduling.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordBooking writes the booking as a point.
func (s *InfluxSink) RecordBooking(ev coremetrics.BookingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("booking_event").
		AddTag("workshop_id", ev.WorkshopID).
		AddTag("severity", ev.Severity.String()).
		AddTag("emergency", strconv.FormatBool(ev.Emergency)).
		AddTag("fallback", strconv.FormatBool(ev.Fallback)).
		AddTag("component", ev.Component).
		AddField("booking_id", ev.BookingID).
		AddField("vehicle_id", ev.VehicleID).
		AddField("match_score", ev.MatchScore).
		AddField("latency_ms", float64(ev.Latency.Milliseconds())).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEscalation writes the escalation as a point.
func (s *InfluxSink) RecordEscalation(ev coremetrics.EscalationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("escalation_event").
		AddTag("component", ev.Component).
		AddTag("severity", ev.Severity.String()).
		AddField("escalation_id", ev.EscalationID).
		AddField("probability", ev.Probability).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordWorkshopLoad writes the load fraction as a point.
func (s *InfluxSink) RecordWorkshopLoad(workshopID string, load float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("workshop_load").
		AddTag("workshop_id", workshopID).
		AddField("load", load).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
