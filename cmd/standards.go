package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var (
	standardsKeyword  string
	standardsCategory string
	standardsPage     int
	standardsWatch    bool
)

var (
	standardsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	standardsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	standardsMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Search the ISO standards catalog",
	Long: `Search and browse ISO standards.

Results are paginated ten per page. With --watch, filter lines are read
from stdin and searches are debounced: rapid changes collapse into a
single request for the latest value. In watch mode a line of the form
"category: <name>" changes the category filter; anything else becomes
the search keyword.

Found something interesting? Hand it to the assistant:
  certipro chat --ask "Tell me about ISO 9001"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if _, err := env.requireAccess(cmd.Context(), "/standards"); err != nil {
			return err
		}

		if standardsWatch {
			return watchStandards(env)
		}

		if standardsPage < 1 {
			standardsPage = 1
		}
		page, err := env.client.Standards(cmd.Context(), internal.StandardsQuery{
			Keyword:  standardsKeyword,
			Category: standardsCategory,
			Offset:   (standardsPage - 1) * internal.StandardsPerPage,
			Limit:    internal.StandardsPerPage,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch standards: %w", err)
		}

		displayStandards(page, standardsPage)
		return nil
	},
}

func displayStandards(page *internal.StandardsPage, currentPage int) {
	if len(page.Standards) == 0 {
		fmt.Println(standardsHeaderStyle.Render("▤ No standards found"))
		return
	}

	totalPages := internal.TotalPages(page.Total, internal.StandardsPerPage)
	fmt.Println(standardsHeaderStyle.Render(
		fmt.Sprintf("▤ %d standard(s), page %d/%d", page.Total, currentPage, totalPages)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, standardsTitleStyle.Render("ISO")+"\t"+
		standardsTitleStyle.Render("Category")+"\t"+
		standardsTitleStyle.Render("Stage")+"\t"+
		standardsTitleStyle.Render("Published")+"\t")

	for _, s := range page.Standards {
		category := s.Category
		if s.SubCategory != "" {
			category += " / " + s.SubCategory
		}
		if len(category) > 40 {
			category = category[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			s.Iso, category, s.Stage, standardsMetaStyle.Render(s.PublicationDate))
	}
	_ = w.Flush()
	fmt.Println()
}

// watchStandards reads filter lines from stdin through the debouncer, so a
// burst of edits produces one request for the final value.
func watchStandards(env *appEnv) error {
	query := internal.StandardsQuery{Limit: internal.StandardsPerPage}

	search := internal.NewDebouncedSearch(env.client, internal.DebounceWindow,
		func(q internal.StandardsQuery, page *internal.StandardsPage, err error) {
			if err != nil {
				fmt.Println(errorStyle.Render("✗ Search failed: " + err.Error()))
				return
			}
			displayStandards(page, 1)
			fmt.Print(infoStyle.Render("filter> "))
		})
	defer search.Stop()

	fmt.Println(infoStyle.Render("Type to filter; \"category: <name>\" filters by category; Ctrl-D exits."))
	fmt.Print(infoStyle.Render("filter> "))

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "category:"); ok {
			query.Category = strings.TrimSpace(rest)
		} else {
			query.Keyword = line
		}
		query.Offset = 0
		search.Update(query)
	}
	fmt.Println()
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(standardsCmd)
	standardsCmd.Flags().StringVar(&standardsKeyword, "keyword", "", "Search term")
	standardsCmd.Flags().StringVar(&standardsCategory, "category", "", "Category filter")
	standardsCmd.Flags().IntVar(&standardsPage, "page", 1, "Result page")
	standardsCmd.Flags().BoolVar(&standardsWatch, "watch", false, "Interactive debounced filtering from stdin")
}
