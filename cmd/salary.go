package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prepdeck/internal/salary"
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Estimate a salary from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		years, _ := cmd.Flags().GetInt("years")
		country, _ := cmd.Flags().GetString("country")
		location, _ := cmd.Flags().GetString("location")

		result := salary.NewEstimator(nil).Estimate(salary.Profile{
			Role:            role,
			ExperienceYears: years,
			Country:         country,
			Location:        location,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	},
}

func init() {
	salaryCmd.Flags().String("role", "software_engineer", "role to estimate for")
	salaryCmd.Flags().Int("years", 0, "years of experience")
	salaryCmd.Flags().String("country", "IN", "country code (IN/US/UK)")
	salaryCmd.Flags().String("location", "", "location, e.g. Bangalore")
}
