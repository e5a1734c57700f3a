package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "careerctl",
	Short: "careerctl manages job postings and applications on the careers API",
	Long: `careerctl is the command-line interface for the careers site backend.

Common workflows:

  List open jobs in one city:
    careerctl jobs list --location Jakarta

  Post a job:
    careerctl jobs create --title "Backend Engineer" --location Jakarta --sector IT

  Apply on behalf of an existing candidate:
    careerctl apply --job 3 --email someone@gmail.com

  Show a candidate's applications:
    careerctl applications someone@gmail.com

Configuration:
  CAREERS_URL    API endpoint (default: http://localhost:8080)
  A config file at $HOME/.careerctl.yaml may set "url" as well.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".careerctl"
			viper.AddConfigPath(home)
			viper.SetConfigName(".careerctl")
			viper.SetConfigType("yaml")
		}
	}

	// Read environment variables that match "CAREERS_VARNAME"
	viper.SetEnvPrefix("CAREERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.careerctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "Careers API URL")
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}

// printAPIError reports a failed call, preferring the server's message.
func printAPIError(cmd *cobra.Command, action string, err error) {
	if apiErr, ok := err.(*APIError); ok {
		cmd.Printf("%s failed (%d): %s\n", action, apiErr.StatusCode, apiErr.Message)
		return
	}
	cmd.Printf("%s failed: %v\n", action, err)
}
