package invoicectl

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/tools/common"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func newUserCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage login accounts and sessions"}
	cmd.AddCommand(
		newUserRegisterCommand(opts),
		newUserLoginCommand(opts),
		newUserWhoamiCommand(opts),
		newUserLogoutCommand(opts),
	)
	return cmd
}

func newUserRegisterCommand(opts *common.Options) *cobra.Command {
	var in validation.RegistrationInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "user register", "user register", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					if errs := validation.ValidateRegistration(in, a.Config.AuthMinPasswordLength); !errs.Empty() {
						return fieldDetails(errs), oops.Code("VALIDATION_FAILED").With("fields", errs.Map()).Wrap(errs)
					}
					id, err := a.Auth.Register(ctx, in.Name, in.Email, in.Password)
					if errors.Is(err, service.ErrDuplicateCredential) {
						return nil, oops.Code("DUPLICATE_CREDENTIAL").Wrap(err)
					}
					if err != nil {
						return nil, oops.Code("REGISTER_FAILED").Wrap(err)
					}
					return []string{fmt.Sprintf("user id: %d", id)}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "login password")
	return cmd
}

func newUserLoginCommand(opts *common.Options) *cobra.Command {
	var email, password, sessionID string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and bind the identity to a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "user login", "user login", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					sess := a.Session(sessionID)
					ok, err := a.Auth.Authenticate(ctx, sess, email, password)
					if err != nil {
						return nil, oops.Code("LOGIN_FAILED").Wrap(err)
					}
					if !ok {
						return nil, oops.Code("INVALID_CREDENTIALS").Errorf("invalid email or password")
					}
					id, err := a.Auth.RequireIdentity(ctx, sess)
					if err != nil {
						return nil, oops.Code("LOGIN_FAILED").Wrap(err)
					}
					return []string{"session: " + sess.ID(), identityDetail(id.UserID, id.Name, id.Email)}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&sessionID, "session", "", "existing session id (a new one is minted when empty)")
	return cmd
}

func newUserWhoamiCommand(opts *common.Options) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity bound to a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "user whoami", "user whoami", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					id, err := a.Auth.RequireIdentity(ctx, a.Session(sessionID))
					if errors.Is(err, service.ErrNotAuthenticated) {
						return nil, oops.Code("NOT_AUTHENTICATED").Wrap(err)
					}
					if err != nil {
						return nil, oops.Code("SESSION_READ_FAILED").Wrap(err)
					}
					return []string{identityDetail(id.UserID, id.Name, id.Email)}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func newUserLogoutCommand(opts *common.Options) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the identity bound to a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd.OutOrStdout(), "user logout", "user logout", func(ctx context.Context) ([]string, error) {
				return opts.WithApp(ctx, func(ctx context.Context, a *app.App) ([]string, error) {
					if err := a.Auth.ClearIdentity(ctx, a.Session(sessionID)); err != nil {
						return nil, oops.Code("LOGOUT_FAILED").Wrap(err)
					}
					return []string{"session cleared: " + sessionID}, nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func identityDetail(id uint, name, email string) string {
	return fmt.Sprintf("user: %d %s <%s>", id, name, email)
}

func fieldDetails(errs validation.FieldErrors) []string {
	out := make([]string, 0, errs.Len())
	for _, fe := range errs.All() {
		out = append(out, fe.Field+": "+fe.Message)
	}
	return out
}
