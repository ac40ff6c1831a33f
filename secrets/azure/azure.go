package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// Client is the part of the Key Vault API the provider uses
type Client interface {
	NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse]
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

var _ Client = (*azsecrets.Client)(nil)

// Provider fetches secrets from an Azure Key Vault
type Provider struct {
	connect func(vaultURL string) (Client, error)
}

// New creates an Azure Key Vault provider authenticated with the ambient
// Azure credential
func New() *Provider {
	return &Provider{connect: connect}
}

func connect(vaultURL string) (Client, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("cannot acquire Azure credential: %v", err)
	}
	client, err := azsecrets.NewClient(vaultURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create key vault client for %s: %v", vaultURL, err)
	}
	return client, nil
}

// Fetch lists every secret in the named vault and returns the latest value of
// each, keyed by secret name.
func (p *Provider) Fetch(ctx context.Context, vaultName string) (map[string]string, error) {
	vaultURL := fmt.Sprintf("https://%s.vault.azure.net", vaultName)
	client, err := p.connect(vaultURL)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	pager := client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing secrets in %s: %v", vaultName, err)
		}
		for _, item := range page.Value {
			if item.ID == nil {
				continue
			}
			name := item.ID.Name()
			secret, err := client.GetSecret(ctx, name, "", nil)
			if err != nil {
				return nil, fmt.Errorf("error fetching secret %s: %w", name, err)
			}
			if secret.Value == nil {
				continue
			}
			values[name] = *secret.Value
		}
	}
	return values, nil
}
