package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/let-the-dreamers-rise/aurorasync-os/app"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/logger"
)

var scheduleFlags struct {
	vehicleID     string
	component     string
	riskLevel     string
	probability   float64
	preferredTime string
	preferredDay  string
	city          string
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run a single appointment request and print the result",
	RunE:  scheduleOnce,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVar(&scheduleFlags.vehicleID, "vehicle-id", "VH-001", "vehicle identifier")
	f.StringVar(&scheduleFlags.component, "component", "brake_system", "failing component")
	f.StringVar(&scheduleFlags.riskLevel, "risk-level", "medium", "risk level (low|medium|high)")
	f.Float64Var(&scheduleFlags.probability, "probability", 0.5, "failure probability in [0,1]")
	f.StringVar(&scheduleFlags.preferredTime, "preferred-time", "", "preferred time of day (morning|afternoon|evening)")
	f.StringVar(&scheduleFlags.preferredDay, "preferred-day", "", "preferred day (today|tomorrow|weekend)")
	f.StringVar(&scheduleFlags.city, "city", "", "preferred workshop city")
	rootCmd.AddCommand(scheduleCmd)
}

func scheduleOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("schedule-command").Errorf("service close: %v", err)
		}
	}()

	req := model.AppointmentRequest{
		VehicleID:   scheduleFlags.vehicleID,
		Component:   scheduleFlags.component,
		RiskLevel:   model.RiskLevel(scheduleFlags.riskLevel),
		Probability: scheduleFlags.probability,
	}
	if scheduleFlags.preferredTime != "" || scheduleFlags.preferredDay != "" || scheduleFlags.city != "" {
		req.Preferences = &model.Preferences{
			PreferredTime: scheduleFlags.preferredTime,
			PreferredDay:  scheduleFlags.preferredDay,
			PreferredCity: scheduleFlags.city,
		}
	}
	res := svc.Scheduler.ScheduleAppointment(req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("scheduling failed: %s", res.Error)
	}
	return nil
}
