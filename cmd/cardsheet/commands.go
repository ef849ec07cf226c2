package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/cardsheet"
	"github.com/tsawler/cardsheet/roster"
	"github.com/tsawler/cardsheet/stats"
	"github.com/tsawler/cardsheet/xlsx"
)

func newGenerateCommand(g *globals) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "generate <roster>",
		Short: "Render a roster into a PDF of identity cards",
		Example: `  cardsheet generate students.xlsx
  cardsheet generate students.csv --dept CSE -o cse-cards.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.sheet(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := s.Generate(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cards on %d pages to %s\n", doc.CardCount(), doc.PageCount(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", cardsheet.DefaultFilename, "output PDF path")
	return cmd
}

func newPreviewCommand(g *globals) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "preview <roster>",
		Short: "Write an HTML preview of the card pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.sheet(cmd, args[0])
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return s.Preview(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(f)
			if err := s.Preview(w); err != nil {
				f.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output HTML path, - for stdout")
	return cmd
}

func newStatsCommand(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats <roster>",
		Short: "Print roster counts by department, quota and community",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.sheet(cmd, args[0])
			if err != nil {
				return err
			}
			summary, err := s.Stats()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return printSummary(cmd, summary)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printSummary(cmd *cobra.Command, s stats.Summary) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%d\n", s.Total)
	fmt.Fprintf(tw, "Pages\t%d\n", s.Pages)
	sections := []struct {
		title  string
		counts []stats.Count
	}{
		{"Department", s.Departments},
		{"Quota", s.Quotas},
		{"Community", s.Communities},
	}
	for _, sec := range sections {
		fmt.Fprintf(tw, "\n%s\t\n", sec.title)
		for _, c := range sec.counts {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Value, c.Count)
		}
	}
	return tw.Flush()
}

func newTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template <path>",
		Short: "Write an empty roster workbook with the expected headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := xlsx.Write(f, "Students", [][]string{roster.Headers()}); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}
