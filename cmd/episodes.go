package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roheim/tvdbctl/filter"
)

var (
	episodesPage int
	filterExpr   string
)

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes <series-id>",
	Short: "List episodes of a series",
	Long: `List the episodes of a series, one service page (100 episodes) at a
time. A filter expression narrows the list client-side, for example:

  tvdbctl episodes 296762 --filter 'airedSeason == 2'
  tvdbctl episodes 296762 --filter 'contains(episodeName, "dream")'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runEpisodes,
}

func init() {
	rootCmd.AddCommand(episodesCmd)

	episodesCmd.Flags().IntVar(&episodesPage, "page", 0, "result page (0 for the first page)")
	episodesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var episodeFilter *filter.Filter
	if filterExpr != "" {
		episodeFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx := context.Background()
	result, err := client.GetEpisodes(ctx, id, episodesPage)
	if err != nil {
		return err
	}

	episodes := recordList(result)
	if episodeFilter != nil {
		episodes = applyFilter(episodes, episodeFilter)
	}

	if jsonOutput {
		return printJSON(episodes)
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes found.")
		return nil
	}

	rows := make([][]string, 0, len(episodes))
	for _, episode := range episodes {
		record, ok := episode.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			stringField(record, "id"),
			stringField(record, "airedSeason"),
			stringField(record, "airedEpisodeNumber"),
			stringField(record, "episodeName"),
			stringField(record, "firstAired"),
		})
	}

	fmt.Println(renderTable(
		[]string{"ID", "Season", "Episode", "Name", "First Aired"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight},
	))
	return nil
}

// applyFilter keeps the records the filter matches. Evaluation errors
// skip the record rather than aborting the listing.
func applyFilter(records []any, f *filter.Filter) []any {
	matches := make([]any, 0, len(records))
	for _, record := range records {
		ok, err := f.Match(record)
		if err != nil {
			logger.Warn().Err(err).Str("filter", f.Expression()).Msg("filter evaluation failed for record")
			continue
		}
		if !ok {
			logger.Debug().Str("filter", f.Expression()).Msg("record filtered out")
			continue
		}
		matches = append(matches, record)
	}
	return matches
}
