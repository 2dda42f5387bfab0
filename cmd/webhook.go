package cmd

import (
	"fmt"
	"strconv"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// webhookCmd groups the webhook management subcommands
var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage Discord webhooks",
}

var webhookAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a Discord webhook",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		username, _ := cmd.Flags().GetString("username")
		avatarURL, _ := cmd.Flags().GetString("avatar-url")

		webhook, err := t.AddWebhook(db.Webhook{
			Name:      args[0],
			URL:       args[1],
			Username:  username,
			AvatarURL: avatarURL,
			Enabled:   true,
		})
		if err != nil {
			logger.Log.Fatalw("Failed to add webhook", zap.Error(err))
		}
		logger.Log.Infof("Added webhook %q (id %d)", webhook.Name, webhook.ID)
	},
}

var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhooks",
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		webhooks, err := t.Webhooks()
		if err != nil {
			logger.Log.Fatalw("Failed to list webhooks", zap.Error(err))
		}

		if len(webhooks) == 0 {
			fmt.Println("No webhooks configured. Use 'webhook add <name> <url>' to add one.")
			return
		}

		fmt.Printf("%-5s %-25s %-8s %-8s %s\n", "ID", "Name", "Enabled", "Custom", "URL")
		for _, webhook := range webhooks {
			fmt.Printf("%-5d %-25s %-8t %-8t %s\n",
				webhook.ID, webhook.Name, webhook.Enabled, webhook.UseCustomTemplate, webhook.URL)
		}
	},
}

var webhookUpdateCmd = &cobra.Command{
	Use:   "update <webhook-id>",
	Short: "Change a webhook's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		webhookID := parseID(args[0])
		_, t, _ := bootstrap(".")

		webhooks, err := t.Webhooks()
		if err != nil {
			logger.Log.Fatalw("Failed to list webhooks", zap.Error(err))
		}
		var webhook *db.Webhook
		for i := range webhooks {
			if webhooks[i].ID == webhookID {
				webhook = &webhooks[i]
				break
			}
		}
		if webhook == nil {
			logger.Log.Fatalw("Webhook not found", zap.Uint("webhook_id", webhookID))
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			webhook.Name, _ = flags.GetString("name")
		}
		if flags.Changed("url") {
			webhook.URL, _ = flags.GetString("url")
		}
		if flags.Changed("username") {
			webhook.Username, _ = flags.GetString("username")
		}
		if flags.Changed("avatar-url") {
			webhook.AvatarURL, _ = flags.GetString("avatar-url")
		}
		if flags.Changed("enabled") {
			webhook.Enabled, _ = flags.GetBool("enabled")
		}

		if err := t.UpdateWebhook(*webhook); err != nil {
			logger.Log.Fatalw("Failed to update webhook", zap.Error(err))
		}
		logger.Log.Infof("Updated webhook %q", webhook.Name)
	},
}

var webhookRemoveCmd = &cobra.Command{
	Use:   "remove <webhook-id>",
	Short: "Remove a webhook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		webhookID := parseID(args[0])
		_, t, _ := bootstrap(".")

		if err := t.DeleteWebhook(webhookID); err != nil {
			logger.Log.Fatalw("Failed to remove webhook", zap.Error(err))
		}
		logger.Log.Info("Webhook removed")
	},
}

var webhookTestCmd = &cobra.Command{
	Use:   "test <webhook-id>",
	Short: "Send a test message to a webhook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		webhookID := parseID(args[0])
		_, t, _ := bootstrap(".")

		webhooks, err := t.Webhooks()
		if err != nil {
			logger.Log.Fatalw("Failed to list webhooks", zap.Error(err))
		}
		for _, webhook := range webhooks {
			if webhook.ID == webhookID {
				if err := t.TestWebhook(webhook); err != nil {
					logger.Log.Fatalw("Test message failed", zap.Error(err))
				}
				logger.Log.Infof("Test message sent to %q", webhook.Name)
				return
			}
		}
		logger.Log.Fatalw("Webhook not found", zap.Uint("webhook_id", webhookID))
	},
}

var webhookAssignCmd = &cobra.Command{
	Use:   "assign <mod-id> <webhook-id>",
	Short: "Assign a webhook to a mod",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modID, webhookID := parseID(args[0]), parseID(args[1])
		_, t, _ := bootstrap(".")

		if err := t.AssignWebhook(modID, webhookID); err != nil {
			logger.Log.Fatalw("Failed to assign webhook", zap.Error(err))
		}
		logger.Log.Info("Webhook assigned")
	},
}

var webhookUnassignCmd = &cobra.Command{
	Use:   "unassign <mod-id> <webhook-id>",
	Short: "Remove a webhook assignment from a mod",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modID, webhookID := parseID(args[0]), parseID(args[1])
		_, t, _ := bootstrap(".")

		if err := t.UnassignWebhook(modID, webhookID); err != nil {
			logger.Log.Fatalw("Failed to remove webhook assignment", zap.Error(err))
		}
		logger.Log.Info("Webhook assignment removed")
	},
}

func parseID(arg string) uint {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		logger.Log.Fatalw("Invalid id", zap.String("arg", arg))
	}
	return uint(id)
}

func init() {
	rootCmd.AddCommand(webhookCmd)
	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookUpdateCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookAssignCmd)
	webhookCmd.AddCommand(webhookUnassignCmd)

	webhookAddCmd.Flags().String("username", "", "Override the display name used for posts")
	webhookAddCmd.Flags().String("avatar-url", "", "Override the avatar used for posts")

	webhookUpdateCmd.Flags().String("name", "", "New webhook name")
	webhookUpdateCmd.Flags().String("url", "", "New webhook URL")
	webhookUpdateCmd.Flags().String("username", "", "Override the display name used for posts")
	webhookUpdateCmd.Flags().String("avatar-url", "", "Override the avatar used for posts")
	webhookUpdateCmd.Flags().Bool("enabled", true, "Enable or disable the webhook")
}
