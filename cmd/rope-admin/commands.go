package main

import (
	"errors"
	"strconv"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the session cookie signs in as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := a.probe.Run(cmd.Context(), a.creds)
			if err := a.render(identityTable(id), identityRow(id)); err != nil {
				return err
			}
			if id.Status != domainauth.StatusSignedIn {
				return errors.New("not signed in")
			}
			return nil
		},
	}
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage the accounts allowed to use rope"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.users.List(cmd.Context(), a.creds)
			if err != nil {
				return err
			}
			return a.render(userTable(users), userRows(users))
		},
	}

	var admin, manager bool
	add := &cobra.Command{
		Use:   "add EMAIL",
		Short: "Grant an institution account access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.users.Add(cmd.Context(), a.creds, model.NewUserRequest{
				Email:     args[0],
				IsAdmin:   admin,
				IsManager: manager,
			})
			if err != nil {
				return err
			}
			return a.render(userTable([]model.User{u}), userRows([]model.User{u})[0])
		},
	}
	add.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	add.Flags().BoolVar(&manager, "manager", false, "grant the manager role")

	cmd.AddCommand(list, add)
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Inspect and change Moodle settings"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List Moodle settings, including unset defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := a.settings.Load(cmd.Context(), a.creds)
			if err != nil {
				return err
			}
			return a.render(settingTable(settings), settingRows(settings))
		},
	}

	set := &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Create or update one Moodle setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings.Set(cmd.Context(), a.creds, args[0], args[1])
			if err != nil {
				return err
			}
			one := model.MoodleSettings{s}
			return a.render(settingTable(one), settingRows(one)[0])
		},
	}

	cmd.AddCommand(list, set)
	return cmd
}

func newDistrictsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "districts", Short: "Manage school districts"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List school districts by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			districts, err := a.settings.ListDistricts(cmd.Context(), a.creds)
			if err != nil {
				return err
			}
			return a.render(districtTable(districts), districtRows(districts))
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an active school district",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.settings.AddDistrict(cmd.Context(), a.creds, args[0])
			if err != nil {
				return err
			}
			one := []model.SchoolDistrict{d}
			return a.render(districtTable(one), districtRows(one)[0])
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}

func newBuildsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "builds", Short: "Inspect course builds"}

	var filter model.CourseBuildFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List course builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builds, err := a.builds.ListAll(cmd.Context(), a.creds, filter)
			if err != nil {
				return err
			}
			return a.render(buildTable(builds), buildRows(builds))
		},
	}
	list.Flags().StringVar(&filter.Email, "email", "", "instructor email contains")
	list.Flags().StringVar(&filter.AcademicYear, "year", "", "academic year contains")

	cmd.AddCommand(list)
	return cmd
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
