package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  addr: ":9000"
forecast:
  seed: 7
metrics:
  prometheus_enabled: true
  prometheus_port: ":9191"
booking_log:
  backend: "jsonl"
  path: "ledger.log"
notifier:
  enabled: false
  broker: "tcp://localhost:1883"
  topic: "maintenance/bookings"
workshops:
  catalog:
    - id: "ws-test"
      name: "Test Workshop"
      city: "Mumbai"
      technician_capacity: 4
      specializations: ["brake_system"]
      emergency_slots_per_day: 1
      operating_hours:
        start: 9
        end: 18
      rating: 4.0
      parts_availability:
        brake_system: 0.9
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api.addr", cfg.API.Addr, ":9000"},
		{"forecast.seed", cfg.Forecast.Seed, int64(7)},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":9191"},
		{"booking_log.backend", cfg.BookingLog.Backend, "jsonl"},
		{"booking_log.path", cfg.BookingLog.Path, "ledger.log"},
		{"notifier.broker", cfg.Notifier.Broker, "tcp://localhost:1883"},
		{"notifier.topic", cfg.Notifier.Topic, "maintenance/bookings"},
		{"catalog size", len(cfg.Workshops.Catalog), 1},
		{"catalog id", cfg.Workshops.Catalog[0].ID, "ws-test"},
		{"catalog hours", cfg.Workshops.Catalog[0].Hours.Start, 9},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoad_InvalidCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `workshops:
  catalog:
    - id: "ws-bad"
      technician_capacity: 0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.API.Addr != ":8080" {
		t.Fatalf("api addr = %s", cfg.API.Addr)
	}
	if cfg.Forecast.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Forecast.Seed)
	}
	if cfg.Metrics.PrometheusPort != ":9090" {
		t.Fatalf("prometheus port = %s", cfg.Metrics.PrometheusPort)
	}
	if cfg.BookingLog.Backend != "memory" {
		t.Fatalf("backend = %s", cfg.BookingLog.Backend)
	}
	if len(cfg.Workshops.Catalog) != 5 {
		t.Fatalf("catalog size = %d", len(cfg.Workshops.Catalog))
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultCatalog_Consistency(t *testing.T) {
	seen := map[string]bool{}
	for _, ws := range DefaultCatalog() {
		if seen[ws.ID] {
			t.Fatalf("duplicate workshop id %s", ws.ID)
		}
		seen[ws.ID] = true
		if err := ws.Validate(); err != nil {
			t.Fatalf("workshop %s: %v", ws.ID, err)
		}
		for _, comp := range ws.Specializations {
			if comp == "electrical" {
				continue
			}
			if _, ok := ws.PartsAvailability[comp]; !ok {
				t.Fatalf("workshop %s missing parts availability for %s", ws.ID, comp)
			}
		}
	}
}
