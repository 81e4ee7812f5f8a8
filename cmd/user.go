package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a user and print their access code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.users.Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\nAccess code: %s\n", user.ID, user.Name, user.Code)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users and their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		list, err := app.users.List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCORRECT\tINCORRECT\tKNOWN\tACCURACY")
		for _, u := range list {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.0f%%\n",
				u.ID, u.Name, u.NumCorrect, u.NumIncorrect, u.NumKnown, u.TotalPercentage*100)
		}
		return tw.Flush()
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
}
