package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit an application for an existing candidate",
	Long: `Submit an application. The candidate must already have a profile,
and may apply to each job only once.

Example:
  careerctl apply --job 3 --email someone@gmail.com`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		jobID, _ := cmd.Flags().GetInt64("job")
		email, _ := cmd.Flags().GetString("email")

		if jobID <= 0 {
			cmd.Println("Error: --job is required")
			return
		}
		if email == "" {
			cmd.Println("Error: --email is required")
			return
		}

		client := NewCareersClient(viper.GetString("url"))
		id, err := client.Apply(jobID, email)
		if err != nil {
			printAPIError(cmd, "Application", err)
			return
		}

		cmd.Printf("✓ Application submitted!\nID: %d\n", id)
	},
}

var applicationsCmd = &cobra.Command{
	Use:   "applications <email>",
	Short: "List a candidate's applications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewCareersClient(viper.GetString("url"))
		apps, err := client.ListApplications(args[0])
		if err != nil {
			printAPIError(cmd, "Listing applications", err)
			return
		}

		if len(apps) == 0 {
			cmd.Println("No applications found.")
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tJOB\tTITLE\tAPPLIED\tSTATUS")
		for _, a := range apps {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", a.ApplicationID, a.JobID, a.Title,
				a.ApplicationDate.Format("2006-01-02 15:04"), a.Status)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(applyCmd, applicationsCmd)

	applyCmd.Flags().Int64("job", 0, "Job ID (required)")
	applyCmd.Flags().String("email", "", "Candidate email (required)")
}
