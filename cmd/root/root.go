package root

import (
	"fmt"

	"github.com/liuhaochen/site-analytics/cmd/migrate"
	"github.com/liuhaochen/site-analytics/config"
	"github.com/liuhaochen/site-analytics/server"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "site-analytics",
	Short: "Privacy-first web analytics collector",
}

func GetRootCmd(config *config.Config) *cobra.Command {
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DB.User,
		config.DB.Password,
		config.DB.Host,
		config.DB.Port,
		config.DB.DBName,
		config.DB.SSLMode)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunServer(config)
		},
	})

	rootCmd.AddCommand(migrate.GetMigrateCmd(dbURL))

	return rootCmd
}
