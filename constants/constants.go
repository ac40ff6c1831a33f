package constants

const (
	// Version is the application version reported by `deploy version` and `deploy --version`
	Version = "0.2.0"

	// TokenEnvVar is the name of the environment variable that holds the github token
	TokenEnvVar = "GITHUB_TOKEN"
	// OwnerEnvVar is the name of the environment variable that holds the repository owner
	OwnerEnvVar = "GITHUB_OWNER"
	// RepoEnvVar is the name of the environment variable that holds the repository name
	RepoEnvVar = "GITHUB_REPO"
	// BranchEnvVar is the name of the environment variable that holds the branch to deploy
	BranchEnvVar = "BRANCH"
	// APIURLEnvVar is the name of the environment variable that overrides the GitHub API root
	APIURLEnvVar = "GITHUB_API_URL"

	// PortEnvVar is the name of the environment variable the functions host uses to hand the shell its port
	PortEnvVar = "FUNCTIONS_CUSTOMHANDLER_PORT"
	// SecretNameEnvVar is the name of the environment variable that holds the secret id (AWS) or vault name (Azure)
	SecretNameEnvVar = "SECRET_NAME"
	// SecretProviderEnvVar is the name of the environment variable that overrides cloud provider detection
	SecretProviderEnvVar = "SECRET_PROVIDER"

	// MainBranch and StageBranch are the only refs the deploy workflow may be dispatched on
	MainBranch  = "main"
	StageBranch = "stage"

	// WorkflowFile is the workflow definition dispatch targets
	WorkflowFile = "deploy.yml"

	// PublicAPIURL is the root of the public GitHub API
	PublicAPIURL = "https://api.github.com"

	// DefaultPort is the port serve listens on when the functions host hasn't set one
	DefaultPort = "8080"
)
