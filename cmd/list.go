package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"backoffice/internal/entities"
	"backoffice/internal/ui/views"
)

// listQuery mirrors the page and search parameters of the list screens
type listQuery struct {
	tab    string
	search string
	page   int
}

var listFlags listQuery

var listCmd = &cobra.Command{
	Use:       "list <entity>",
	Short:     "Print one page of a list",
	Long:      "Print one page of a list as a plain table. Entities: " + strings.Join(entities.Names, ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: entities.Names,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()
		return printList(cmd.Context(), cmd.OutOrStdout(), a.registry, args[0], listFlags)
	},
}

func init() {
	listCmd.Flags().StringVar(&listFlags.tab, "tab", "", "tab filter, e.g. 블럭회원 or VIP")
	listCmd.Flags().StringVar(&listFlags.search, "search", "", "search term")
	listCmd.Flags().IntVar(&listFlags.page, "page", 1, "page number")
}

// printList loads the requested page of one list and writes it to w
func printList(ctx context.Context, w io.Writer, reg *entities.Registry, name string, q listQuery) error {
	list, ok := reg.Get(name)
	if !ok {
		return fmt.Errorf("unknown entity %q (one of %s)", name, strings.Join(entities.Names, ", "))
	}

	if q.tab != "" {
		tabs := list.Table().Tabs
		if !slices.Contains(tabs, q.tab) {
			return fmt.Errorf("%s has no tab %q (one of %s)", name, q.tab, strings.Join(tabs, ", "))
		}
		list.SetActiveFilter(q.tab)
	}
	if q.search != "" {
		list.SetSearchTerm(q.search)
		list.SubmitSearch()
	}

	// the first load tells how many pages there are
	if _, err := list.StartLoad().Run(ctx); err != nil {
		return err
	}
	if q.page > 1 && list.SetPage(q.page) {
		if _, err := list.StartLoad().Run(ctx); err != nil {
			return err
		}
	}

	t := list.Table()
	styles := views.NewStyles()
	fmt.Fprintln(w, list.Title())
	header := views.StripANSI(views.RenderTableHeader(t.Columns, false, 0, styles))
	fmt.Fprintln(w, strings.TrimRight(header[len("[ ] "):], " "))

	lines := views.RenderTable(t.Columns, t.Rows, -1, 0, styles)
	for i, line := range lines {
		if t.Rows[i].Filler {
			continue
		}
		fmt.Fprintln(w, strings.TrimRight(views.StripANSI(line)[len("[ ] "):], " "))
	}
	fmt.Fprintf(w, "\n%d / %d 페이지 · 전체 %d건\n", t.State.Page, t.TotalPages, t.Total)
	return nil
}
