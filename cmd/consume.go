package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ExpertsInside/Botty-McBotface/internal/events"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the Pulsar consumer to provision teams requested on the request topic",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and the application secret, set up logging
		commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		provisioner, _, cleanup := newProvisioner(ctx)
		defer cleanup()

		logger := log.Logger
		consumer, err := events.NewEventConsumer(appCfg.Pulsar.URL, appCfg.Pulsar.TopicConsumer, appCfg.Pulsar.Subscription, &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event consumer")
		}
		defer consumer.Close()

		log.Info().Str("topic", appCfg.Pulsar.TopicConsumer).Msg("Waiting for provisioning requests")

		handle := provisioner.RequestHandler("pulsar:" + appCfg.Pulsar.TopicConsumer)
		err = consumer.Run(logger.WithContext(ctx), handle)
		if err != nil {
			log.Error().Err(err).Msg("Consumer stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
