// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-tools/internal/textnorm"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [text...]",
	Short: "Normalize labels into metadata keys",
	Long: `Normalize prints the metadata key for each argument: lower-cased,
punctuation removed, words joined with underscores. Without arguments it
reads one label per line from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			for _, a := range args {
				fmt.Println(textnorm.Normalize(a))
			}
			return nil
		}

		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			fmt.Println(textnorm.Normalize(sc.Text()))
		}
		return sc.Err()
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
