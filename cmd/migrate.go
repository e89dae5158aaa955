package cmd

import (
	"github.com/ExpertsInside/Botty-McBotface/db"
	"github.com/ExpertsInside/Botty-McBotface/internal/appconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures the provisioning ledger exists and then runs goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Set the log level
		setLogging(logLevel)

		// Load the config file
		var err error
		appCfg, err = appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		logger := log.Logger
		provisioningDB, err := db.NewProvisioningDB(appCfg.Database.Driver, appCfg.Database.Source, &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize ProvisioningDB")
		}
		defer provisioningDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := provisioningDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
