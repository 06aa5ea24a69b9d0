package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var seriesFull bool

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:     "series <id>",
	Short:   "Show a series record",
	Long:    `Fetch a single series record by TheTVDB id.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSeries,
}

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:     "summary <series-id>",
	Short:   "Show season and episode counts for a series",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSummary,
}

// imagesCmd represents the images command
var imagesCmd = &cobra.Command{
	Use:     "images <series-id>",
	Short:   "Show available image counts for a series",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runImages,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(imagesCmd)

	seriesCmd.Flags().BoolVar(&seriesFull, "full", false, "also fetch the episode summary and image counts")
}

func runSeries(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()

	// This first call logs in, so the concurrent fetches below only read
	// the session.
	series, err := client.GetSeries(ctx, id)
	if err != nil {
		return err
	}

	if !seriesFull {
		if jsonOutput {
			return printJSON(series)
		}
		printRecord(series)
		return nil
	}

	var summary, images any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = client.GetEpisodesSummary(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = client.GetSeriesImageInfo(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"series":          series,
			"episodesSummary": summary,
			"imageCounts":     images,
		})
	}

	printRecord(series)
	fmt.Println("\nEpisode summary:")
	printRecord(summary)
	fmt.Println("\nImage counts:")
	printRecord(images)
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	summary, err := client.GetEpisodesSummary(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(summary)
	}
	printRecord(summary)
	return nil
}

func runImages(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	images, err := client.GetSeriesImageInfo(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(images)
	}
	printRecord(images)
	return nil
}
