package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/config"
)

// runMigrate relies on database.NewStore having migrated during setup.
func runMigrate(cmd *cobra.Command, args []string) error {
	if current.cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires the %q driver, got %q", config.DriverPostgres, current.cfg.Database.Driver)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s@%s/%s\n",
		current.cfg.Database.User, current.cfg.Database.Host, current.cfg.Database.Name)
	return nil
}
