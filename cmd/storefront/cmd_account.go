package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	accountdomain "github.com/dwikikusuma/storefront/internal/account/domain"
)

func (c *cli) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or change the customer profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile and privacy preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := c.app.Account.Profile(ctx)
			if err != nil {
				return err
			}
			prefs, err := c.app.Account.Preferences(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return writeJSON(out, struct {
					accountdomain.Profile
					Preferences accountdomain.Preferences `json:"preferences"`
				}{p, prefs})
			}
			fmt.Fprintf(out, "Username: %s\n", p.Username)
			fmt.Fprintf(out, "Email:    %s\n", p.Email)
			if p.LoginProvider != "" {
				fmt.Fprintf(out, "Login:    %s\n", p.LoginProvider)
			}
			fmt.Fprintf(out, "\nEmail notifications: %t\n", prefs.EmailNotifications)
			fmt.Fprintf(out, "SMS notifications:   %t\n", prefs.SMSNotifications)
			fmt.Fprintf(out, "Newsletter:          %t\n", prefs.Newsletter)
			fmt.Fprintf(out, "Data sharing:        %t\n", prefs.DataSharing)
			fmt.Fprintf(out, "Profile visibility:  %s\n", prefs.ProfileVisibility)
			return nil
		},
	}

	setUsername := &cobra.Command{
		Use:   "set-username <name>",
		Short: "Change the display name used in confirmation emails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Account.UpdateUsername(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("username %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Username updated.")
			return nil
		},
	}

	setEmail := &cobra.Command{
		Use:   "set-email <address>",
		Short: "Change the address confirmations are recorded for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Account.UpdateEmail(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("email %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Email updated.")
			return nil
		},
	}

	var prefs accountdomain.Preferences
	setPrefs := &cobra.Command{
		Use:   "set-preferences",
		Short: "Save privacy and notification preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Account.SavePreferences(cmd.Context(), prefs); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences saved.")
			return nil
		},
	}
	def := accountdomain.DefaultPreferences()
	pf := setPrefs.Flags()
	pf.BoolVar(&prefs.EmailNotifications, "email-notifications", def.EmailNotifications, "receive order updates by email")
	pf.BoolVar(&prefs.SMSNotifications, "sms-notifications", def.SMSNotifications, "receive order updates by SMS")
	pf.BoolVar(&prefs.Newsletter, "newsletter", def.Newsletter, "receive the newsletter")
	pf.BoolVar(&prefs.DataSharing, "data-sharing", def.DataSharing, "allow data sharing")
	pf.StringVar(&prefs.ProfileVisibility, "visibility", def.ProfileVisibility, "public, friends or private")

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the profile, cart and preferences",
		Long: `Delete the stored profile, cart and preferences. Order history and
recorded confirmation emails are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete account without --yes")
			}
			if err := c.app.Account.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(show, setUsername, setEmail, setPrefs, del)
	return cmd
}
