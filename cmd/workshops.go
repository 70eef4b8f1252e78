package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/workshop"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/logger"
)

var workshopsCmd = &cobra.Command{
	Use:   "workshops",
	Short: "Print the configured workshop catalog with current status",
	RunE:  listWorkshops,
}

func init() {
	rootCmd.AddCommand(workshopsCmd)
}

func listWorkshops(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := workshop.NewManager(cfg.Workshops.Catalog, logger.New("workshops-command"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(manager.All())
}
