package appconfig

import (
	"bytes"
	"errors"
	"html/template"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
)

// Secret sources for the application secret
const (
	SecretSourceEnv        = "env"
	SecretSourceAWS        = "aws"
	SecretSourceKubernetes = "kubernetes"
)

// Config holds all configuration details
type Config struct {
	Host          string              `yaml:"host"`
	BasePath      string              `yaml:"basePath"`
	DocsPath      string              `yaml:"docsPath"`
	Application   ApplicationConfig   `yaml:"application"`
	Graph         GraphConfig         `yaml:"graph"`
	Database      DatabaseConfig      `yaml:"database"`
	Pulsar        PulsarConfig        `yaml:"pulsar"`
	AWS           AWSConfig           `yaml:"aws"`
	Kubernetes    KubernetesConfig    `yaml:"kubernetes"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// ApplicationConfig defines the app registration used for Graph access.
// The secret itself is loaded from SecretSource at startup.
type ApplicationConfig struct {
	AppID        string `yaml:"appId"`
	AppSecret    string `yaml:"appSecret"`
	RedirectURL  string `yaml:"redirectUrl"`
	SecretSource string `yaml:"secretSource"`
	SecretName   string `yaml:"secretName"`
	SecretKey    string `yaml:"secretKey"`
}

// GraphConfig defines the identity and directory endpoints
type GraphConfig struct {
	DiscoveryURL      string  `yaml:"discoveryUrl"`
	AuthorityURL      string  `yaml:"authorityUrl"`
	URL               string  `yaml:"url"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
	TimeoutSeconds    int     `yaml:"timeoutSeconds"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
	TopicConsumer string `yaml:"topicConsumer"`
	Subscription  string `yaml:"subscription"`
}

type AWSConfig struct {
	Region string `yaml:"region"`
}

// KubernetesConfig locates the secret holding the application secret when
// SecretSource is kubernetes. An empty Kubeconfig means in-cluster.
type KubernetesConfig struct {
	Kubeconfig string `yaml:"kubeconfig"`
	Namespace  string `yaml:"namespace"`
}

// NotificationsConfig defines the sender of owner notifications. Email is
// disabled when Sender is empty.
type NotificationsConfig struct {
	Sender string `yaml:"sender"`
}

// GraphSettings builds the Graph client settings from the configuration.
func (c *Config) GraphSettings() graph.Settings {
	return graph.Settings{
		AppID:        c.Application.AppID,
		AppSecret:    c.Application.AppSecret,
		RedirectURL:  c.Application.RedirectURL,
		DiscoveryURL: c.Graph.DiscoveryURL,
		AuthorityURL: c.Graph.AuthorityURL,
		GraphURL:     c.Graph.URL,
	}.WithDefaults()
}

// RateLimit returns the Graph request pacing, falling back to the default.
func (c *Config) RateLimit() graph.RateLimitConfig {
	if c.Graph.RequestsPerSecond <= 0 || c.Graph.Burst <= 0 {
		return graph.DefaultRateLimit
	}
	return graph.RateLimitConfig{RequestsPerSecond: c.Graph.RequestsPerSecond, BurstSize: c.Graph.Burst}
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Render environment variables into the template
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, loadEnvVars()); err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	if config.Application.SecretSource == "" {
		config.Application.SecretSource = SecretSourceEnv
	}

	return &config, nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
