package cli

import (
	"context"
	"fmt"

	"github.com/pratik-mahalle/threatwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newPreferencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preferences",
		Aliases: []string{"prefs"},
		Short:   "Manage notification preferences",
	}

	cmd.AddCommand(authRequired(newPreferencesGetCmd()))
	cmd.AddCommand(authRequired(newPreferencesSetCmd()))

	return cmd
}

func newPreferencesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show notification preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := apiClient.GetPreferences(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get preferences: %w", err)
			}
			return renderPreferences(p)
		},
	}
}

func newPreferencesSetCmd() *cobra.Command {
	var (
		emailAlerts, smsAlerts, weeklyReports bool
		phone                                 string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update notification preferences",
		Long: `Update notification preferences. Flags that are not given keep their
current value. SMS alerts need a phone number in E.164 form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := apiClient.GetPreferences(ctx)
			if err != nil {
				return fmt.Errorf("failed to get preferences: %w", err)
			}

			f := cmd.Flags()
			if f.Changed("email-alerts") {
				p.EmailAlerts = emailAlerts
			}
			if f.Changed("sms-alerts") {
				p.SMSAlerts = smsAlerts
			}
			if f.Changed("weekly-reports") {
				p.WeeklyReports = weeklyReports
			}
			if f.Changed("phone") {
				p.Phone = phone
			}

			updated, err := apiClient.UpdatePreferences(ctx, *p)
			if err != nil {
				return fmt.Errorf("failed to update preferences: %w", err)
			}
			return renderPreferences(updated)
		},
	}

	cmd.Flags().BoolVar(&emailAlerts, "email-alerts", false, "email on Critical alerts")
	cmd.Flags().BoolVar(&smsAlerts, "sms-alerts", false, "SMS on Critical alerts for your own submissions")
	cmd.Flags().BoolVar(&weeklyReports, "weekly-reports", false, "receive the weekly threat report")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number in E.164 form, e.g. +15551234567")

	return cmd
}

func renderPreferences(p *client.Preferences) error {
	if getOutputFormat() != "table" {
		return printOutput(p)
	}

	t := NewTable("SETTING", "VALUE")
	t.AddRow("email_alerts", fmt.Sprint(p.EmailAlerts))
	t.AddRow("sms_alerts", fmt.Sprint(p.SMSAlerts))
	t.AddRow("weekly_reports", fmt.Sprint(p.WeeklyReports))
	t.AddRow("phone", p.Phone)
	t.Render()
	return nil
}
