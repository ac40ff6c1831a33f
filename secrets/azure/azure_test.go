package azure

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient pages through canned secret listings; a nil value in values
// stands for a secret the vault returns without a value.
type fakeClient struct {
	pages   []azsecrets.ListSecretPropertiesResponse
	values  map[string]*string
	listErr error
	getErr  error
}

func (f *fakeClient) NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse] {
	next := 0
	return runtime.NewPager(runtime.PagingHandler[azsecrets.ListSecretPropertiesResponse]{
		More: func(page azsecrets.ListSecretPropertiesResponse) bool {
			return page.NextLink != nil
		},
		Fetcher: func(ctx context.Context, _ *azsecrets.ListSecretPropertiesResponse) (azsecrets.ListSecretPropertiesResponse, error) {
			if f.listErr != nil {
				return azsecrets.ListSecretPropertiesResponse{}, f.listErr
			}
			page := f.pages[next]
			next++
			return page, nil
		},
	})
}

func (f *fakeClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	if f.getErr != nil {
		return azsecrets.GetSecretResponse{}, f.getErr
	}
	value, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, fmt.Errorf("secret %s is not in the vault", name)
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: value}}, nil
}

func ptr(s string) *string { return &s }

func secretID(name string) *azsecrets.ID {
	id := azsecrets.ID("https://site-secrets.vault.azure.net/secrets/" + name + "/0123456789abcdef")
	return &id
}

func propertiesPage(nextLink string, ids ...*azsecrets.ID) azsecrets.ListSecretPropertiesResponse {
	var page azsecrets.ListSecretPropertiesResponse
	for _, id := range ids {
		page.Value = append(page.Value, &azsecrets.SecretProperties{ID: id})
	}
	if nextLink != "" {
		page.NextLink = &nextLink
	}
	return page
}

// connected wires a Provider to the fake and records the vault URL it dialled
func connected(f *fakeClient) (*Provider, *string) {
	var gotURL string
	p := &Provider{connect: func(vaultURL string) (Client, error) {
		gotURL = vaultURL
		return f, nil
	}}
	return p, &gotURL
}

func TestFetch(t *testing.T) {
	f := &fakeClient{
		pages: []azsecrets.ListSecretPropertiesResponse{
			propertiesPage("", secretID("DB-PASSWORD"), secretID("API-KEY")),
		},
		values: map[string]*string{"DB-PASSWORD": ptr("hunter2"), "API-KEY": ptr("abc")},
	}
	p, gotURL := connected(f)

	values, err := p.Fetch(context.Background(), "site-secrets")

	require.NoError(t, err)
	assert.Equal(t, "https://site-secrets.vault.azure.net", *gotURL)
	assert.Equal(t, map[string]string{"DB-PASSWORD": "hunter2", "API-KEY": "abc"}, values)
}

func TestFetchAcrossPages(t *testing.T) {
	f := &fakeClient{
		pages: []azsecrets.ListSecretPropertiesResponse{
			propertiesPage("https://site-secrets.vault.azure.net/secrets?page=2", secretID("DB-PASSWORD")),
			propertiesPage("", secretID("API-KEY")),
		},
		values: map[string]*string{"DB-PASSWORD": ptr("hunter2"), "API-KEY": ptr("abc")},
	}
	p, _ := connected(f)

	values, err := p.Fetch(context.Background(), "site-secrets")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB-PASSWORD": "hunter2", "API-KEY": "abc"}, values)
}

func TestFetchSkipsUnreadableEntries(t *testing.T) {
	f := &fakeClient{
		pages: []azsecrets.ListSecretPropertiesResponse{
			propertiesPage("", nil, secretID("DB-PASSWORD"), secretID("DISABLED")),
		},
		values: map[string]*string{"DB-PASSWORD": ptr("hunter2"), "DISABLED": nil},
	}
	p, _ := connected(f)

	values, err := p.Fetch(context.Background(), "site-secrets")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB-PASSWORD": "hunter2"}, values)
}

func TestFetchListError(t *testing.T) {
	f := &fakeClient{listErr: errors.New("vault not found")}
	p, _ := connected(f)

	_, err := p.Fetch(context.Background(), "site-secrets")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error listing secrets in site-secrets")
}

func TestFetchGetError(t *testing.T) {
	f := &fakeClient{
		pages:  []azsecrets.ListSecretPropertiesResponse{propertiesPage("", secretID("DB-PASSWORD"))},
		getErr: errors.New("Forbidden"),
	}
	p, _ := connected(f)

	_, err := p.Fetch(context.Background(), "site-secrets")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error fetching secret DB-PASSWORD")
}

func TestFetchConnectError(t *testing.T) {
	p := &Provider{connect: func(vaultURL string) (Client, error) {
		return nil, errors.New("no ambient credential")
	}}

	_, err := p.Fetch(context.Background(), "site-secrets")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ambient credential")
}
