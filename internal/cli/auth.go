package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillhub/backend/internal/client"
	"github.com/skillhub/backend/internal/models"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var req models.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			user, err := a.session.Register(ctx, &req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(a.out, "Registered and signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			user, err := a.session.Login(ctx, &req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(a.out, "Signed in as %s <%s>, %d steps completed\n", user.Name, user.Email, len(user.CompletedSteps))
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		}),
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			user := a.session.User()
			if user == nil {
				fmt.Fprintln(a.out, "Not signed in")
				return nil
			}
			fmt.Fprintf(a.out, "%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
			return nil
		}),
	}
}

func newProfileCmd(a *app) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage the profile of the signed-in user",
	}

	var name, email string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name and/or email",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := &models.UpdateProfileRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if req.Name == nil && req.Email == nil {
				return errors.New("nothing to update: pass --name and/or --email")
			}

			user, err := a.session.UpdateProfile(ctx, req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Name, user.Email)
			return nil
		}),
	}
	update.Flags().StringVar(&name, "name", "", "New display name")
	update.Flags().StringVar(&email, "email", "", "New email address")

	profile.AddCommand(update)
	return profile
}

func newPasswordCmd(a *app) *cobra.Command {
	var req models.ChangePasswordRequest
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			err := a.session.ChangePassword(ctx, &req)
			message := client.PasswordChangeMessage(err)
			if err != nil {
				return errors.New(message)
			}
			fmt.Fprintln(a.out, message)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "Current password")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "New password")
	return cmd
}
