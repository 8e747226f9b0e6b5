package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/deepinsight/backend/internal/console"
	"github.com/deepinsight/backend/pkg/client"
	"github.com/spf13/cobra"
)

// signedIn is the login result without the token.
type signedIn struct {
	Admin     client.Admin `json:"admin" yaml:"admin"`
	ExpiresAt time.Time    `json:"expiresAt" yaml:"expiresAt"`
}

func newLoginCmd(a *app) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an admin",
		Example: `  insightctl login --email admin@deepinsight.kr
  insightctl login --email admin@deepinsight.kr --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			g := console.NewGuard(c)
			if err := g.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			s := g.Session()
			out := signedIn{Admin: s.Admin, ExpiresAt: s.ExpiresAt}
			return a.render(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintf(w, "Signed in as %s <%s>\n", s.Admin.Name, s.Admin.Email)
				if !s.ExpiresAt.IsZero() {
					fmt.Fprintf(w, "Session expires %s\n", ago(s.ExpiresAt))
				}
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			if err := c.AdminLogout(cmd.Context(), nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), s.Admin, func(w io.Writer) {
				printAdmin(w, s)
			})
		},
	}
}

func printAdmin(w io.Writer, s *client.Session) {
	fmt.Fprintf(w, "%-10s %s\n", "ID", s.Admin.ID)
	fmt.Fprintf(w, "%-10s %s\n", "EMAIL", s.Admin.Email)
	fmt.Fprintf(w, "%-10s %s\n", "NAME", s.Admin.Name)
	fmt.Fprintf(w, "%-10s %s\n", "EXPIRES", ago(s.ExpiresAt))
}
