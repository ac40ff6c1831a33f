package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"

	"github.com/siteworks/deploy/constants"
	"github.com/siteworks/deploy/model"
	"github.com/siteworks/deploy/secrets/aws"
	"github.com/siteworks/deploy/secrets/azure"
)

// Supported providers.
const (
	AWS   = "aws"
	Azure = "azure"
)

// Environment markers the cloud runtimes set on their workers.
const (
	awsMarkerEnvVar   = "LAMBDA_TASK_ROOT"
	azureMarkerEnvVar = "WEBSITE_INSTANCE_ID"
)

// ErrUnknownProvider is returned when no runtime marker identifies the cloud
var ErrUnknownProvider = errors.New("unable to identify the cloud provider to fetch the credentials")

// A Provider fetches the named secret material as configuration keys
type Provider interface {
	Fetch(ctx context.Context, name string) (map[string]string, error)
}

// Detect identifies the cloud provider from the runtime's environment markers
func Detect() (string, error) {
	if _, ok := os.LookupEnv(awsMarkerEnvVar); ok {
		return AWS, nil
	}
	if _, ok := os.LookupEnv(azureMarkerEnvVar); ok {
		return Azure, nil
	}
	return "", ErrUnknownProvider
}

// NewProvider creates the secret provider for the named cloud
func NewProvider(ctx context.Context, provider string) (Provider, error) {
	switch provider {
	case AWS:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot load AWS configuration: %v", err)
		}
		return aws.New(secretsmanager.NewFromConfig(cfg)), nil
	case Azure:
		return azure.New(), nil
	}
	return nil, fmt.Errorf("unsupported secret provider %q", provider)
}

// Load folds secret material into conf. Without a secret name configured it
// does nothing: a site can run with no secrets at all.
func Load(ctx context.Context, conf model.SiteConfig) error {
	name := conf[constants.SecretNameEnvVar]
	if name == "" {
		return nil
	}

	provider := conf[constants.SecretProviderEnvVar]
	if provider == "" {
		detected, err := Detect()
		if err != nil {
			return err
		}
		provider = detected
	}

	p, err := NewProvider(ctx, provider)
	if err != nil {
		return err
	}
	values, err := p.Fetch(ctx, name)
	if err != nil {
		return err
	}
	for k, v := range values {
		conf[k] = v
	}

	log.WithFields(log.Fields{
		"provider": provider,
		"secrets":  len(values),
	}).Info("secrets loaded")
	return nil
}
