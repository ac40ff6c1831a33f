package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Client is the part of the Secrets Manager API the provider uses
type Client interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Provider fetches secrets from AWS Secrets Manager
type Provider struct {
	client Client
}

// New creates a Provider backed by the supplied client
func New(client Client) *Provider {
	return &Provider{client: client}
}

// Fetch reads the secret and decodes it as a JSON object of configuration
// keys. Depending on how the secret was stored, it can be either a string or
// binary.
func (p *Provider) Fetch(ctx context.Context, secretID string) (map[string]string, error) {
	req := secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)}
	resp, err := p.client.GetSecretValue(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("error fetching secret %s: %w", secretID, err)
	}

	payload := resp.SecretBinary
	if resp.SecretString != nil {
		payload = []byte(*resp.SecretString)
	}
	if len(payload) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("secret %s is not a JSON object: %v", secretID, err)
	}
	return values, nil
}
