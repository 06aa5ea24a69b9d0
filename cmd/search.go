package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roheim/tvdbctl/tvdb"
)

var (
	searchIMDB   string
	searchZap2it string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search for series by name or external id",
	Long: `Search TheTVDB for series. Provide a name argument, an external id
flag, or both. With --first (or select_first in config) only the best
match is returned.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchIMDB, "imdb", "", "search by IMDB id (e.g. tt0475784)")
	searchCmd.Flags().StringVar(&searchZap2it, "zap2it", "", "search by Zap2it id")
}

func runSearch(cmd *cobra.Command, args []string) error {
	req := tvdb.SearchRequest{
		IMDBID:   searchIMDB,
		Zap2itID: searchZap2it,
	}
	if len(args) > 0 {
		req.Name = args[0]
	}

	ctx := context.Background()
	result, err := client.SearchSeries(ctx, req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	matches := recordList(result)
	if len(matches) == 0 {
		fmt.Println("No series found.")
		return nil
	}

	rows := make([][]string, 0, len(matches))
	for _, match := range matches {
		record, ok := match.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			stringField(record, "id"),
			stringField(record, "seriesName"),
			stringField(record, "status"),
			stringField(record, "firstAired"),
			stringField(record, "network"),
		})
	}

	fmt.Println(renderTable(
		[]string{"ID", "Name", "Status", "First Aired", "Network"},
		rows,
		[]columnAlignment{alignRight},
	))
	return nil
}
