// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-tools/pkg/types"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category vocabulary and its metadata keys",
	Long: `Categories prints every entry of the controlled category vocabulary with
the normalized key used as its metadata field. Category names in the
reference data are matched against these keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keysOnly, _ := cmd.Flags().GetBool("keys")
		for _, c := range types.Categories() {
			if keysOnly {
				fmt.Println(c.Key())
				continue
			}
			fmt.Printf("%-28s  %s\n", c.Key(), c.String())
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().Bool("keys", false, "print only the metadata keys")

	rootCmd.AddCommand(categoriesCmd)
}
