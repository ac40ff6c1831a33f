package dispatcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v75/github"
	log "github.com/sirupsen/logrus"

	"github.com/siteworks/deploy/constants"
	gh "github.com/siteworks/deploy/github"
	"github.com/siteworks/deploy/model"
)

// Validation errors, one per configuration value so the operator
// sees exactly which one is missing.
var (
	ErrNoToken = fmt.Errorf(
		"environment variable %s is not exported; export a github token that can dispatch workflows",
		constants.TokenEnvVar,
	)
	ErrNoOwner = fmt.Errorf(
		"environment variable %s is not exported; export the owner of the repository to deploy",
		constants.OwnerEnvVar,
	)
	ErrNoRepo = fmt.Errorf(
		"environment variable %s is not exported; export the name of the repository to deploy",
		constants.RepoEnvVar,
	)
	ErrNoBranch = fmt.Errorf(
		"environment variable %s is not exported; export %s or %s",
		constants.BranchEnvVar, constants.MainBranch, constants.StageBranch,
	)
)

// Dispatch outcomes that carry no request-specific detail.
var (
	ErrUnauthorized = fmt.Errorf("unauthorized: the %s credential is not valid", constants.TokenEnvVar)
	ErrForbidden    = fmt.Errorf("forbidden: the %s credential is not allowed to dispatch workflows on this repository", constants.TokenEnvVar)
	ErrRateLimited  = fmt.Errorf("rate limit exceeded: wait before dispatching again")
)

// Validate checks the four configuration values one at a time, in a fixed
// order, so a single run reports a single actionable problem. It runs before
// any network I/O.
func Validate(req model.DispatchRequest) error {
	if req.Token == "" {
		return ErrNoToken
	}
	if req.Owner == "" {
		return ErrNoOwner
	}
	if req.Repo == "" {
		return ErrNoRepo
	}
	if req.Branch == "" {
		return ErrNoBranch
	}
	if req.Branch != constants.MainBranch && req.Branch != constants.StageBranch {
		return fmt.Errorf("%s must be %s or %s, got %q",
			constants.BranchEnvVar, constants.MainBranch, constants.StageBranch, req.Branch)
	}
	return nil
}

// Run validates the request and dispatches the deploy workflow
func Run(ctx context.Context, req model.DispatchRequest) (err error) {
	err = Validate(req)
	if err != nil {
		return
	}
	return Dispatch(ctx, req)
}

// Dispatch asks GitHub to start the deploy workflow on the requested branch.
// A nil error confirms the trigger was accepted, not that the workflow run
// itself succeeded. The call is not idempotent: dispatching twice starts two
// runs.
func Dispatch(ctx context.Context, req model.DispatchRequest) (err error) {
	apiURL, err := gh.APIRoot(req.APIURL)
	if err != nil {
		return
	}
	client, err := gh.NewClient(ctx, apiURL, req.Token)
	if err != nil {
		return
	}

	log.WithFields(log.Fields{
		"owner":    req.Owner,
		"repo":     req.Repo,
		"branch":   req.Branch,
		"workflow": constants.WorkflowFile,
	}).Info("dispatching workflow")

	event := github.CreateWorkflowDispatchEventRequest{Ref: req.Branch}
	resp, err := client.Actions.CreateWorkflowDispatchEventByFileName(
		ctx, req.Owner, req.Repo, constants.WorkflowFile, event,
	)
	if resp == nil {
		return fmt.Errorf("cannot reach the GitHub API: %v", err)
	}

	return outcome(resp, req)
}

// outcome maps the response status to a terminal result. The status code
// alone decides: the client library wraps most non-2xx responses in its own
// error types, but the operator diagnosis depends only on the code.
func outcome(resp *github.Response, req model.DispatchRequest) error {
	switch resp.StatusCode {
	case http.StatusNoContent:
		log.WithFields(log.Fields{
			"owner":  req.Owner,
			"repo":   req.Repo,
			"branch": req.Branch,
		}).Info("workflow dispatched")
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return fmt.Errorf("not found: repository %s/%s or workflow %s does not exist, or the token cannot see it",
			req.Owner, req.Repo, constants.WorkflowFile)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("unprocessable: %s has no workflow_dispatch trigger or the payload was rejected",
			constants.WorkflowFile)
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return unexpectedStatus(resp)
}

// unexpectedStatus surfaces the raw response body when one is available, to
// aid diagnosis of statuses the mapping doesn't know about.
func unexpectedStatus(resp *github.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return fmt.Errorf("unexpected status %s: %s", resp.Status, body)
}
