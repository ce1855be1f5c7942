package main

import (
	"fmt"

	"github.com/kartika/bujet/internal/cli"
	"github.com/kartika/bujet/internal/template"
	"github.com/spf13/cobra"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates [name]",
		Short: "List available budget templates",
		Long: `List the built-in budget templates, or show the suggested entries of a
single template.

Examples:
  bujet templates            # list all templates
  bujet templates personal   # show the personal template entries`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTemplates,
	}
	return cmd
}

func runTemplates(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		tmpl, err := template.Get(args[0])
		if err != nil {
			return err
		}
		printTemplate(tmpl)
		return nil
	}

	fmt.Printf("%s\n\n", cli.FormatTitle("Budget Templates"))
	for _, tmpl := range template.All() {
		fmt.Printf("  %s %s (%d suggested items)\n", cli.LedgerIcon, tmpl.Name, len(tmpl.Entries))
	}
	fmt.Println()
	fmt.Println(cli.FormatInfo("Use 'bujet templates <name>' to inspect one, or 'bujet create --template <name>' to start from it."))
	return nil
}

func printTemplate(tmpl template.Template) {
	fmt.Printf("%s\n\n", cli.FormatTitle(fmt.Sprintf("Template: %s", tmpl.Name)))
	fmt.Printf("%-20s %-25s %s\n", "Category", "Name", "Priority")
	for _, entry := range tmpl.Entries {
		fmt.Printf("%-20s %-25s %s\n", entry.Category, entry.Name, entry.Priority)
	}
}
