package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/siteworks/deploy/constants"
	"github.com/siteworks/deploy/model"
	"github.com/siteworks/deploy/secrets"
	"github.com/siteworks/deploy/site"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web shell that fronts the deployed site",
	Long: `
Run the web shell that fronts the deployed site:

1. folds cloud secret material into the site configuration
2. serves the site and its metrics until stopped
	`,
	Run: func(cmd *cobra.Command, args []string) {
		conf := model.SiteConfig{}
		for _, key := range []string{constants.SecretNameEnvVar, constants.SecretProviderEnvVar} {
			if v := viper.GetString(key); v != "" {
				conf[key] = v
			}
		}

		// the site can start without its secrets, so report and carry on
		if err := secrets.Load(cmd.Context(), conf); err != nil {
			log.WithError(err).Error("loading secrets")
		}

		if port == "" {
			port = viper.GetString(constants.PortEnvVar)
		}
		if port == "" {
			port = constants.DefaultPort
		}

		if err := site.Serve(cmd.Context(), port, conf); err != nil {
			log.WithError(err).Fatal("serving site")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&port, "port", "", "port to listen on (default is FUNCTIONS_CUSTOMHANDLER_PORT or 8080)")
}
