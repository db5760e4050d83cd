package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

var (
	userEmail    string
	userPassword string
	userRole     string
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a staff account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStores(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer st.close()

		staff := &service.Staff{Users: st.users, BcryptCost: cfg.BcryptCost, Log: log}
		u, err := staff.CreateUser(cmd.Context(), service.CreateUserRequest{
			Email: userEmail, Password: userPassword, Role: userRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (id %d)\n", u.Role, u.Email, u.ID)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password, at least 8 characters")
	userCreateCmd.Flags().StringVar(&userRole, "role", model.RoleStaff, "ADMIN or STAFF")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)
}
