package cmd

import (
	"fmt"
	"strings"

	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked mods",
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		mods, err := t.Mods()
		if err != nil {
			logger.Log.Fatalw("Failed to list mods", zap.Error(err))
		}

		if len(mods) == 0 {
			fmt.Println("No mods tracked yet. Use 'track <curseforge-mod-id>' to add one.")
			return
		}

		fmt.Printf("%-5s %-12s %-35s %-20s %s\n", "ID", "CF ID", "Name", "Game", "Webhooks")
		for _, mod := range mods {
			webhookIDs := make([]string, len(mod.WebhookIDs))
			for i, id := range mod.WebhookIDs {
				webhookIDs[i] = fmt.Sprintf("%d", id)
			}
			hooks := strings.Join(webhookIDs, ",")
			if hooks == "" {
				hooks = "-"
			}
			fmt.Printf("%-5d %-12d %-35s %-20s %s\n", mod.ID, mod.CurseforgeID, mod.Name, mod.GameName, hooks)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
