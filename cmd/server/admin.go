package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

var adminInput services.CreateUserInput

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		input := adminInput
		input.IsAdmin = true
		if input.Username == "" {
			input.Username = input.EmployeeID
		}

		user, err := app.Users.CreateUser(input)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (id %d)\n", user.EmployeeID, user.ID)
		return nil
	},
}

func init() {
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminInput.EmployeeID, "employee-id", "", "employee ID used to log in")
	flags.StringVar(&adminInput.Password, "password", "", "initial password")
	flags.StringVar(&adminInput.Username, "username", "", "display username (defaults to the employee ID)")
	flags.StringVar(&adminInput.FirstName, "first-name", "", "first name")
	flags.StringVar(&adminInput.LastName, "last-name", "", "last name")
	_ = createAdminCmd.MarkFlagRequired("employee-id")
	_ = createAdminCmd.MarkFlagRequired("password")
}
