package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benvon/diary-bot/internal/catalog"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tagctl",
		Short: "Tag catalog tool for the diary bot",
		Long:  "CLI tool for inspecting and validating the diary bot's tag catalog",
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var tagsFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective tag catalog",
		Long:  "List the tags the bot will offer, from a catalog file or the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if tagsFile != "" {
				var err error
				cat, err = catalog.Load(tagsFile)
				if err != nil {
					return fmt.Errorf("failed to load tag catalog: %w", err)
				}
			}

			for _, tag := range cat.Tags() {
				fmt.Printf("%-20s %s\n", tag.ID, tag.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tagsFile, "file", "f", "", "path to a tag catalog YAML file")
	return cmd
}

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	var tagsFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a tag catalog file",
		Long:  "Validate that a tag catalog YAML file parses and that every tag has a unique id and a description",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(tagsFile)
			if err != nil {
				return err
			}

			fmt.Printf("Catalog OK: %d tags\n", cat.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&tagsFile, "file", "f", "", "path to a tag catalog YAML file")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	return cmd
}
