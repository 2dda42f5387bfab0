package cmd

import (
	"fmt"

	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// templateCmd groups the notification template subcommands
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage notification templates",
	Long: `Notification messages are rendered from templates. Placeholders like
{modName}, {newReleaseDate} or {&roleID} are substituted when an update is
sent. Each webhook uses the default template unless it has a custom one.`,
}

var templateShowCmd = &cobra.Command{
	Use:   "show [webhook-id]",
	Short: "Show the default template, or the one a webhook resolves to",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		tpl, err := t.DefaultTemplate()
		if len(args) == 1 {
			tpl, err = t.TemplateForWebhook(parseID(args[0]))
		}
		if err != nil {
			logger.Log.Fatalw("Failed to load template", zap.Error(err))
		}

		fmt.Printf("Title:             %s\n", tpl.Title)
		fmt.Printf("Color:             %d\n", tpl.Color)
		fmt.Printf("Use embed:         %t\n", tpl.UseEmbed)
		fmt.Printf("Include timestamp: %t\n", tpl.IncludeTimestamp)
		if tpl.AuthorName != "" {
			fmt.Printf("Author:            %s\n", tpl.AuthorName)
		}
		if tpl.FooterText != "" {
			fmt.Printf("Footer:            %s\n", tpl.FooterText)
		}
		if tpl.Content != "" {
			fmt.Printf("Content:           %s\n", tpl.Content)
		}
		fmt.Printf("Embed fields:      %s\n", tpl.EmbedFields)
	},
}

var templateSetCmd = &cobra.Command{
	Use:   "set [webhook-id]",
	Short: "Update the default template, or set a webhook's custom template",
	Long: `Updates template fields from flags. Without a webhook id the default
template is changed; with one, a custom template is stored for that webhook
and the webhook switches to it.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		tpl, err := t.DefaultTemplate()
		if len(args) == 1 {
			tpl, err = t.TemplateForWebhook(parseID(args[0]))
		}
		if err != nil {
			logger.Log.Fatalw("Failed to load template", zap.Error(err))
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			tpl.Title, _ = flags.GetString("title")
		}
		if flags.Changed("color") {
			tpl.Color, _ = flags.GetInt("color")
		}
		if flags.Changed("content") {
			tpl.Content, _ = flags.GetString("content")
		}
		if flags.Changed("embed") {
			tpl.UseEmbed, _ = flags.GetBool("embed")
		}
		if flags.Changed("fields") {
			tpl.EmbedFields, _ = flags.GetString("fields")
		}
		if flags.Changed("author") {
			tpl.AuthorName, _ = flags.GetString("author")
		}
		if flags.Changed("footer") {
			tpl.FooterText, _ = flags.GetString("footer")
		}
		if flags.Changed("timestamp") {
			tpl.IncludeTimestamp, _ = flags.GetBool("timestamp")
		}

		if len(args) == 1 {
			err = t.SetCustomTemplate(parseID(args[0]), *tpl)
		} else {
			err = t.UpdateDefaultTemplate(*tpl)
		}
		if err != nil {
			logger.Log.Fatalw("Failed to save template", zap.Error(err))
		}
		logger.Log.Info("Template saved")
	},
}

var templateResetCmd = &cobra.Command{
	Use:   "reset <webhook-id>",
	Short: "Delete a webhook's custom template and fall back to the default",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		if err := t.DeleteCustomTemplate(parseID(args[0])); err != nil {
			logger.Log.Fatalw("Failed to reset template", zap.Error(err))
		}
		logger.Log.Info("Custom template removed; webhook now uses the default")
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateSetCmd)
	templateCmd.AddCommand(templateResetCmd)

	templateSetCmd.Flags().String("title", "", "Embed title")
	templateSetCmd.Flags().Int("color", 0, "Embed accent color (decimal)")
	templateSetCmd.Flags().String("content", "", "Plain message content (used when --embed=false)")
	templateSetCmd.Flags().Bool("embed", true, "Send an embed instead of plain content")
	templateSetCmd.Flags().String("fields", "", `Embed fields as JSON, e.g. [{"name":"Mod","value":"{modName}","inline":true}]`)
	templateSetCmd.Flags().String("author", "", "Embed author name")
	templateSetCmd.Flags().String("footer", "", "Embed footer text")
	templateSetCmd.Flags().Bool("timestamp", true, "Include a timestamp in the embed")
}
