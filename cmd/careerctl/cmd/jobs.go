package cmd

import (
	"fmt"
	"text/tabwriter"

	"go-careers-backend/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List or create job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings, newest first",
	Long: `List job postings. Filters match exactly.

Example:
  careerctl jobs list
  careerctl jobs list --location Jakarta --sector IT`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		location, _ := cmd.Flags().GetString("location")
		sector, _ := cmd.Flags().GetString("sector")

		client := NewCareersClient(viper.GetString("url"))
		jobs, err := client.ListJobs(location, sector)
		if err != nil {
			printAPIError(cmd, "Listing jobs", err)
			return
		}

		if len(jobs) == 0 {
			cmd.Println("No jobs found.")
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tSECTOR\tDATE")
		for _, j := range jobs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Location, j.Sector, j.Date)
		}
		w.Flush()
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new job",
	Long: `Post a new job. The posting date defaults to today.

Example:
  careerctl jobs create --title "Backend Engineer" --location Jakarta --sector IT --experience "3+ years"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		var in domain.JobInput
		in.Title, _ = flags.GetString("title")
		in.Location, _ = flags.GetString("location")
		in.Sector, _ = flags.GetString("sector")
		in.Date, _ = flags.GetString("date")
		in.Description, _ = flags.GetString("description")
		in.Experience, _ = flags.GetString("experience")
		in.Details, _ = flags.GetString("details")

		if in.Title == "" {
			cmd.Println("Error: --title is required")
			return
		}

		client := NewCareersClient(viper.GetString("url"))
		id, err := client.CreateJob(in)
		if err != nil {
			printAPIError(cmd, "Creating job", err)
			return
		}

		cmd.Printf("✓ Job created!\nID: %d\nTitle: %s\n", id, in.Title)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsCreateCmd)

	jobsListCmd.Flags().String("location", "", "Only jobs at this location")
	jobsListCmd.Flags().String("sector", "", "Only jobs in this sector")

	jobsCreateCmd.Flags().String("title", "", "Job title (required)")
	jobsCreateCmd.Flags().String("location", "", "Job location")
	jobsCreateCmd.Flags().String("sector", "", "Job sector")
	jobsCreateCmd.Flags().String("date", "", "Posting date, YYYY-MM-DD (default today)")
	jobsCreateCmd.Flags().String("description", "", "Job description")
	jobsCreateCmd.Flags().String("experience", "", "Required experience")
	jobsCreateCmd.Flags().String("details", "", "Additional details")
}
