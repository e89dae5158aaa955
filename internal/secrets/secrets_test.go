package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type MockSecretsManager struct {
	mock.Mock
}

func (m *MockSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return out, args.Error(1)
}

func TestEnvSource(t *testing.T) {
	t.Setenv(DefaultEnvVar, "s3cret")

	value, err := EnvSource{}.AppSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = EnvSource{Var: "TEAMS_BOT_UNSET_SECRET"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)

	t.Setenv("TEAMS_BOT_EMPTY_SECRET", "")
	_, err = EnvSource{Var: "TEAMS_BOT_EMPTY_SECRET"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestAWSSource(t *testing.T) {
	client := new(MockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.MatchedBy(func(in *secretsmanager.GetSecretValueInput) bool {
		return aws.ToString(in.SecretId) == "teams-bot"
	})).Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"appSecret": "from-aws"}`),
	}, nil)

	value, err := AWSSource{Client: client, SecretID: "teams-bot", Key: "appSecret"}.AppSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-aws", value)

	_, err = AWSSource{Client: client, SecretID: "teams-bot", Key: "other"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestAWSSource_PlainString(t *testing.T) {
	client := new(MockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String("plain"),
	}, nil)

	value, err := AWSSource{Client: client, SecretID: "teams-bot"}.AppSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "plain", value)
}

func TestAWSSource_NotFound(t *testing.T) {
	client := new(MockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "no such secret"})

	_, err := AWSSource{Client: client, SecretID: "missing"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestAWSSource_OtherError(t *testing.T) {
	client := new(MockSecretsManager)
	client.On("GetSecretValue", mock.Anything, mock.Anything).Return(nil, errors.New("network down"))

	_, err := AWSSource{Client: client, SecretID: "teams-bot"}.AppSecret(context.Background())
	assert.ErrorContains(t, err, "network down")
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}

func TestKubernetesSource(t *testing.T) {
	client := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "teams-bot", Namespace: "bots"},
		Data:       map[string][]byte{"appSecret": []byte("from-k8s")},
	})

	value, err := KubernetesSource{Client: client, Namespace: "bots", Name: "teams-bot", Key: "appSecret"}.AppSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-k8s", value)

	_, err = KubernetesSource{Client: client, Namespace: "bots", Name: "teams-bot", Key: "missing"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = KubernetesSource{Client: client, Namespace: "bots", Name: "absent", Key: "appSecret"}.AppSecret(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
