package cmd

import (
	"context"

	"github.com/ExpertsInside/Botty-McBotface/db"
	awsclient "github.com/ExpertsInside/Botty-McBotface/internal/aws"
	"github.com/ExpertsInside/Botty-McBotface/internal/events"
	"github.com/ExpertsInside/Botty-McBotface/internal/notify"
	"github.com/ExpertsInside/Botty-McBotface/internal/services"
	"github.com/rs/zerolog/log"
)

// newProvisioner wires the ledger, event publisher and mailer around the
// Graph client. The returned func releases them.
func newProvisioner(ctx context.Context) (*services.Provisioner, *db.ProvisioningDB, func()) {
	logger := log.Logger

	provisioningDB, err := db.NewProvisioningDB(appCfg.Database.Driver, appCfg.Database.Source, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ProvisioningDB")
	}

	provisioner := &services.Provisioner{
		Store:     provisioningDB,
		Directory: graphClient,
		Tenants:   graphClient,
	}

	var publisher *events.EventPublisher
	if appCfg.Pulsar.URL != "" && appCfg.Pulsar.TopicProducer != "" {
		publisher, err = events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer, &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event publisher")
		}
		provisioner.Events = publisher
	} else {
		log.Warn().Msg("Pulsar producer not configured, provisioning events are not published")
	}

	if appCfg.AWS.Region != "" {
		awsCfg, err := awsclient.LoadAWSConfig(ctx, appCfg.AWS.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load AWS config")
		}

		if err := awsclient.LogCallerIdentity(ctx, awsclient.NewSTSClient(awsCfg), &logger); err != nil {
			log.Warn().Err(err).Msg("Could not determine AWS identity")
		}

		if appCfg.Notifications.Sender != "" {
			provisioner.Mailer = notify.NewMailer(awsclient.NewSESClient(awsCfg), appCfg.Notifications.Sender, &logger)
		}
	}

	cleanup := func() {
		if publisher != nil {
			publisher.Close()
		}
		if err := provisioningDB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}

	return provisioner, provisioningDB, cleanup
}
