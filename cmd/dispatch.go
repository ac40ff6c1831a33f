package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/siteworks/deploy/constants"
	"github.com/siteworks/deploy/dispatcher"
	"github.com/siteworks/deploy/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dispatchCmd = &cobra.Command{
	Use:     "dispatch",
	Aliases: []string{"trigger"},
	Short:   "Dispatch the GitHub Actions workflow that deploys the site",
	Long: `
Dispatch the GitHub Actions workflow that deploys the site:

1. validates the configuration exported in the environment
2. asks GitHub to run deploy.yml on the requested branch
3. reports the outcome, exiting 0 only if the trigger was accepted
	`,
	Example: `GITHUB_OWNER=siteworks GITHUB_REPO=website BRANCH=main deploy dispatch`,
	Run: func(cmd *cobra.Command, args []string) {
		req := model.DispatchRequest{
			Token:  viper.GetString(constants.TokenEnvVar),
			Owner:  viper.GetString(constants.OwnerEnvVar),
			Repo:   viper.GetString(constants.RepoEnvVar),
			Branch: viper.GetString(constants.BranchEnvVar),
			APIURL: viper.GetString(constants.APIURLEnvVar),
		}
		if err := dispatcher.Run(cmd.Context(), req); err != nil {
			log.WithError(err).Fatal("workflow not dispatched")
		}
	},
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}
