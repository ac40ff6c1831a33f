package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/siteworks/deploy/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Dispatch the site's deploy workflow and host its web shell",
	Long: `
	Deploy runs in two modes:

	1. as a cli command (deploy dispatch, usually run by an operator or a CI/CD pipeline) that triggers the GitHub Actions deploy workflow
	2. as a web shell (deploy serve) that hosts the site the workflow deploys
	`,
	Version: constants.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deploy.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".deploy")
	}

	viper.AutomaticEnv()
	viper.BindEnv(constants.TokenEnvVar)
	viper.BindEnv(constants.OwnerEnvVar)
	viper.BindEnv(constants.RepoEnvVar)
	viper.BindEnv(constants.BranchEnvVar)
	viper.BindEnv(constants.APIURLEnvVar)
	viper.BindEnv(constants.PortEnvVar)
	viper.BindEnv(constants.SecretNameEnvVar)
	viper.BindEnv(constants.SecretProviderEnvVar)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
