package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apischeduling "github.com/let-the-dreamers-rise/aurorasync-os/api/scheduling"
	"github.com/let-the-dreamers-rise/aurorasync-os/config"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/escalation"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/forecast"
	coremetrics "github.com/let-the-dreamers-rise/aurorasync-os/core/metrics"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/notify"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/scheduler"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/slot"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/workshop"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/bookinglog"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/metrics"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/mqtt"
	"github.com/let-the-dreamers-rise/aurorasync-os/internal/eventbus"
	"github.com/let-the-dreamers-rise/aurorasync-os/jobs/dailyreset"
)

// Service is the composition root: it owns one instance of every
// scheduling component and wires them together. No package-level
// singletons exist; tests construct their own instances.
type Service struct {
	Scheduler  *scheduler.Scheduler
	Workshops  *workshop.Manager
	Forecaster *forecast.Forecaster
	Slots      *slot.Manager
	Store      booking.Store

	cfg      *config.Config
	bus      *eventbus.Bus
	notifier notify.Notifier
	closers  []func()
	log      logger.Logger
}

// New builds a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := bookinglog.New(cfg.BookingLog)
	if err != nil {
		return nil, fmt.Errorf("booking log: %w", err)
	}

	workshops, err := workshop.NewManager(cfg.Workshops.Catalog, logger.New("workshop"))
	if err != nil {
		return nil, fmt.Errorf("workshop manager: %w", err)
	}

	ids := make([]string, 0, len(cfg.Workshops.Catalog))
	for _, ws := range cfg.Workshops.Catalog {
		ids = append(ids, ws.ID)
	}
	forecaster := forecast.NewForecaster(ids, cfg.Forecast.Seed, logger.New("forecast"))
	slots := slot.NewManager(store, logger.New("slot"))
	engine := escalation.NewEngine(logger.New("escalation"))

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics.Influx))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	sched, err := scheduler.New(workshops, slots, forecaster, engine, logger.New("scheduler"),
		scheduler.WithMetrics(sink),
		scheduler.WithEventBus(bus),
	)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	svc := &Service{
		Scheduler:  sched,
		Workshops:  workshops,
		Forecaster: forecaster,
		Slots:      slots,
		Store:      store,
		cfg:        cfg,
		bus:        bus,
		notifier:   notify.Nop{},
		log:        logg,
	}

	if cfg.Notifier.Enabled {
		n, err := mqtt.NewNotifier(cfg.Notifier)
		if err != nil {
			return nil, fmt.Errorf("notifier: %w", err)
		}
		svc.notifier = n
		svc.closers = append(svc.closers, n.Close)
	}
	return svc, nil
}

// Run starts the HTTP API, the metrics server, the daily reset job and
// the notification pump, then blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	go dailyreset.New(s.Workshops, s.log).Run(ctx)
	go s.pumpNotifications(ctx)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := apischeduling.NewMux(s.Scheduler, s.Workshops, s.Forecaster, s.Slots, s.Store)
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Infof("scheduling API listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// pumpNotifications forwards confirmed bookings from the bus to the
// notifier.
func (s *Service) pumpNotifications(ctx context.Context) {
	events := s.bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if bc, isBooking := ev.(eventbus.BookingConfirmed); isBooking {
				if err := s.notifier.NotifyBooking(ctx, bc.Result); err != nil {
					s.log.Errorf("notify booking %s: %v", bc.Result.BookingID, err)
				}
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
	return s.Store.Close()
}
