package model

// The DispatchRequest type carries all the information needed to dispatch the deploy workflow
type DispatchRequest struct {
	// Token is the github token used to authenticate the dispatch
	Token string
	// The repo owner
	Owner string
	// the repo name
	Repo string
	// the branch the workflow runs on
	Branch string
	// APIURL overrides the GitHub API root, empty means the public API
	APIURL string
}

// SiteConfig holds the settings of the web shell, secret values are folded in at startup
type SiteConfig map[string]string
