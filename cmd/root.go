package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ExpertsInside/Botty-McBotface/internal/appconfig"
	awsclient "github.com/ExpertsInside/Botty-McBotface/internal/aws"
	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/internal/secrets"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultGraphTimeout = 30 * time.Second

var (
	logLevel   string
	configPath string
	host       string
	port       int

	appCfg      *appconfig.Config
	graphClient *graph.Client
)

var rootCmd = &cobra.Command{
	Use:   "botty",
	Short: "Team Services",
	Long:  `Team Services provisions Microsoft 365 groups and teams through Microsoft Graph on behalf of the bot.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the configuration file")
}

// commonSetUp sets the log level, loads the config and the application
// secret and builds the Graph client.
func commonSetUp() {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	source, err := secretSource(ctx, appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize secret source")
	}

	// An explicit secret in the config wins over the configured source
	if appCfg.Application.AppSecret == "" {
		appCfg.Application.AppSecret, err = source.AppSecret(ctx)
		if err != nil {
			log.Fatal().Err(err).Str("source", appCfg.Application.SecretSource).Msg("Failed to load application secret")
		}
	}

	timeout := defaultGraphTimeout
	if appCfg.Graph.TimeoutSeconds > 0 {
		timeout = time.Duration(appCfg.Graph.TimeoutSeconds) * time.Second
	}

	graphClient = graph.NewClient(appCfg.GraphSettings(), &http.Client{Timeout: timeout}, appCfg.RateLimit())
}

func secretSource(ctx context.Context, cfg *appconfig.Config) (secrets.Source, error) {
	switch cfg.Application.SecretSource {
	case appconfig.SecretSourceAWS:
		awsCfg, err := awsclient.LoadAWSConfig(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		return secrets.AWSSource{
			Client:   awsclient.NewSecretsManagerClient(awsCfg),
			SecretID: cfg.Application.SecretName,
			Key:      cfg.Application.SecretKey,
		}, nil
	case appconfig.SecretSourceKubernetes:
		client, err := secrets.NewKubernetesClient(cfg.Kubernetes.Kubeconfig)
		if err != nil {
			return nil, err
		}
		return secrets.KubernetesSource{
			Client:    client,
			Namespace: cfg.Kubernetes.Namespace,
			Name:      cfg.Application.SecretName,
			Key:       cfg.Application.SecretKey,
		}, nil
	case appconfig.SecretSourceEnv:
		return secrets.EnvSource{Var: cfg.Application.SecretName}, nil
	default:
		return nil, fmt.Errorf("unknown secret source %q", cfg.Application.SecretSource)
	}
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
