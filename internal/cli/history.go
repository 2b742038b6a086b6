package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/treegrid/treegrid/pkg/history"
)

// newHistoryCmd creates the history command for inspecting the journal.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the conversion journal",
		Long: `Inspect the journal of past conversions.

Every flatten, nest, verify, and graph run is recorded in
~/.config/treegrid/history.jsonl unless --no-history is set.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryClearCmd())
	cmd.AddCommand(newHistoryPathCmd())

	return cmd
}

// newHistoryListCmd creates the "history list" subcommand.
func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := history.Open(historyPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}

			records, err := hist.Tail(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(records) == 0 {
				printInfo("History is empty")
				return nil
			}

			printHistoryTable(records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")

	return cmd
}

// newHistoryClearCmd creates the "history clear" subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the conversion journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := history.Open(historyPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if err := hist.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}

			printSuccess("History cleared")
			printDetail("File: %s", hist.Path())
			return nil
		},
	}
}

// newHistoryPathCmd creates the "history path" subcommand.
func newHistoryPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the journal file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := history.Open(historyPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			fmt.Println(hist.Path())
			return nil
		},
	}
}

// printHistoryTable renders journal records newest-first.
func printHistoryTable(records []history.Record) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(colorGreen)
	errStyle := lipgloss.NewStyle().Foreground(colorRed)

	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		dest := r.Dest
		if dest == "" {
			dest = "—"
		}
		rows = append(rows, []string{
			formatRelativeTime(r.Time),
			r.Op,
			r.Source,
			dest,
			formatCount(r.Rows),
			string(r.Status),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("When", "Op", "Source", "Dest", "Rows", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if col == 5 {
				if rows[row][5] == string(history.StatusOK) {
					return okStyle
				}
				return errStyle
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
}

func formatCount(n int) string {
	if n == 0 {
		return "—"
	}
	return fmt.Sprintf("%d", n)
}

// formatRelativeTime renders a timestamp relative to now for recent times
// and as a date beyond a week.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
