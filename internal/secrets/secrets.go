// Package secrets loads the application secret used for the client
// credentials grant.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// DefaultEnvVar holds the secret when it comes from the environment.
const DefaultEnvVar = "GRAPH_APP_SECRET"

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrEmptySecret    = errors.New("secret is empty")
)

// Source yields the application secret.
type Source interface {
	AppSecret(ctx context.Context) (string, error)
}

// EnvSource reads the secret from an environment variable.
type EnvSource struct {
	Var string
}

func (s EnvSource) AppSecret(context.Context) (string, error) {
	name := s.Var
	if name == "" {
		name = DefaultEnvVar
	}
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%w: environment variable %s", ErrSecretNotFound, name)
	}
	if value == "" {
		return "", fmt.Errorf("%w: environment variable %s", ErrEmptySecret, name)
	}
	return value, nil
}

// SecretsManagerAPI is the part of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSource reads the secret from AWS Secrets Manager. When Key is set the
// secret string is a JSON object and Key selects the field.
type AWSSource struct {
	Client   SecretsManagerAPI
	SecretID string
	Key      string
}

func (s AWSSource) AppSecret(ctx context.Context) (string, error) {
	out, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.SecretID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, s.SecretID)
		}
		return "", fmt.Errorf("failed to get secret %s: %w", s.SecretID, err)
	}

	value := aws.ToString(out.SecretString)
	if s.Key != "" {
		var fields map[string]string
		if err := json.Unmarshal([]byte(value), &fields); err != nil {
			return "", fmt.Errorf("failed to decode secret %s: %w", s.SecretID, err)
		}
		var ok bool
		if value, ok = fields[s.Key]; !ok {
			return "", fmt.Errorf("%w: key %s in %s", ErrSecretNotFound, s.Key, s.SecretID)
		}
	}

	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptySecret, s.SecretID)
	}
	return value, nil
}

// KubernetesSource reads one key of a Kubernetes secret.
type KubernetesSource struct {
	Client    kubernetes.Interface
	Namespace string
	Name      string
	Key       string
}

func (s KubernetesSource) AppSecret(ctx context.Context) (string, error) {
	secret, err := s.Client.CoreV1().Secrets(s.Namespace).Get(ctx, s.Name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s/%s", ErrSecretNotFound, s.Namespace, s.Name)
		}
		return "", fmt.Errorf("failed to get secret %s/%s: %w", s.Namespace, s.Name, err)
	}

	value, ok := secret.Data[s.Key]
	if !ok {
		return "", fmt.Errorf("%w: key %s in %s/%s", ErrSecretNotFound, s.Key, s.Namespace, s.Name)
	}
	if len(value) == 0 {
		return "", fmt.Errorf("%w: %s/%s", ErrEmptySecret, s.Namespace, s.Name)
	}
	return string(value), nil
}

// NewKubernetesClient uses the in-cluster config inside a pod and the given
// kubeconfig, or the default one, elsewhere.
func NewKubernetesClient(kubeconfig string) (*kubernetes.Clientset, error) {
	var config *rest.Config
	var err error

	if _, exists := os.LookupEnv("KUBERNETES_SERVICE_HOST"); exists && kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load in-cluster Kubernetes config: %w", err)
		}
	} else {
		if kubeconfig == "" {
			kubeconfig = clientcmd.RecommendedHomeFile
		}
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return clientset, nil
}
