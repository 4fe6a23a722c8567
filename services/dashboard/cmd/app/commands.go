package main

import (
	"context"
	"fmt"
	"strconv"

	"learnboard/pkg/api"
	"learnboard/services/dashboard/internal/dashboard"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = a.prompter.Ask("Username"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompter.Ask("Password"); err != nil {
					return err
				}
			}

			if err := a.gateway.Login(cmd.Context(), api.LoginRequest{Username: username, Password: password}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.gateway.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run `%s` to start.\n", user.Username, loginCommand)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newDashboardCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show plans and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := dashboard.ParseFilter(filter)
			if err != nil {
				return err
			}
			return a.guard.Protect(cmd.Context(), func(ctx context.Context) error {
				a.controller.Load(ctx)
				a.controller.SetFilter(f)
				return dashboard.Render(cmd.OutOrStdout(), a.controller.View())
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(dashboard.FilterAll), "all, completed or in_progress")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	form := dashboard.NewPlanForm()
	var difficulty string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new learning plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := form.SetDifficulty(difficulty); err != nil {
				return err
			}
			return a.guard.Protect(cmd.Context(), func(ctx context.Context) error {
				a.controller.OpenModal()
				if err := form.Submit(ctx, a.controller.CreatePlan); err != nil {
					return err
				}
				return dashboard.Render(cmd.OutOrStdout(), a.controller.View())
			})
		},
	}
	cmd.Flags().StringVarP(&form.Goal, "goal", "g", "", "what you want to learn")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(api.Intermediate), "beginner, intermediate or advanced")
	return cmd
}

func newCompleteCmd(a *app) *cobra.Command {
	var planID, activityID int64
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark an activity of a plan as done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.guard.Protect(cmd.Context(), func(ctx context.Context) error {
				if err := a.controller.LogActivity(ctx, planID, activityID); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Could not record the activity.")
					return nil
				}
				return dashboard.Render(cmd.OutOrStdout(), a.controller.View())
			})
		},
	}
	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	cmd.Flags().Int64Var(&activityID, "activity", 0, "activity id")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("activity")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a learning plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid plan id %q", args[0])
			}
			if yes {
				a.prompter.AssumeYes()
			}
			return a.guard.Protect(cmd.Context(), func(ctx context.Context) error {
				a.controller.Load(ctx)
				sent, err := a.controller.DeletePlan(ctx, id)
				switch {
				case !sent:
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				case err != nil:
					fmt.Fprintln(cmd.OutOrStdout(), "Could not delete the plan.")
					return nil
				}
				return dashboard.Render(cmd.OutOrStdout(), a.controller.View())
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
