package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filesorter/internal/category"
	"filesorter/internal/scanner"
)

func newCategoriesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "categories",
		Short:       "List categories and the extensions they claim",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier := category.Default()
			table := classifier.Categories()
			if jsonOutput {
				return writeJSON(cmd, newCategoriesView(classifier))
			}

			rows := make([][]string, 0, len(table)+1)
			for i, c := range table {
				rows = append(rows, []string{fmt.Sprintf("%d", i+1), c.Name, strings.Join(c.Extensions, " ")})
			}
			rows = append(rows, []string{"", classifier.Fallback(), "(anything else)"})
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(categoryColumns, rows, nil))
			fmt.Fprintln(out, "Extensions listed under several categories go to the first one shown.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print categories as JSON")
	return cmd
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify EXT|FILENAME...",
		Short: "Show which category an extension or file name maps to",
		Example: "  filesorter classify .jpg PDF report.xlsx\n" +
			"  filesorter classify archive.tar.gz",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier := category.Default()
			out := cmd.OutOrStdout()
			for _, arg := range args {
				ext := normalizeExtension(arg)
				if ext == "" {
					fmt.Fprintf(out, "%s: no extension (skipped)\n", arg)
					continue
				}
				line := fmt.Sprintf("%s: %s", ext, classifier.Classify(ext))
				if owners := classifier.Owners(ext); len(owners) > 1 {
					line += fmt.Sprintf(" (also listed under %s)", strings.Join(owners[1:], ", "))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// normalizeExtension accepts ".jpg", "jpg", or a file name and returns the
// lower-cased extension with its leading dot.
func normalizeExtension(arg string) string {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" || arg == ".":
		return ""
	case strings.HasPrefix(arg, ".") && !strings.Contains(arg[1:], "."):
		return strings.ToLower(arg)
	case !strings.Contains(arg, "."):
		return "." + strings.ToLower(arg)
	default:
		return scanner.Extension(arg)
	}
}
