package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// episodeCmd represents the episode command
var episodeCmd = &cobra.Command{
	Use:     "episode <id>",
	Short:   "Show a single episode record",
	Long:    `Fetch the full record of one episode by TheTVDB episode id.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runEpisode,
}

func init() {
	rootCmd.AddCommand(episodeCmd)
}

func runEpisode(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	episode, err := client.GetEpisode(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(episode)
	}
	printRecord(episode)
	return nil
}
