package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"

	"github.com/siteworks/deploy/constants"
)

// NewClient creates a new github client for the apiURL,
// authenticated with the supplied token
func NewClient(ctx context.Context, apiURL, token string) (client *github.Client, err error) {
	tokenService := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tokenClient := oauth2.NewClient(ctx, tokenService)

	client = github.NewClient(tokenClient)
	if apiURL == "" || apiURL == constants.PublicAPIURL {
		return
	}

	client, err = client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		err = fmt.Errorf("cannot create github client: %v", err)
		return
	}

	return
}
