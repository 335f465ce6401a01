// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rag-tools/internal/bucket"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Resolve the provenance metadata of documents",
	Long: `Resolve looks up each document path of the form
<country>/<year>/<file_id>.pdf in the reference tables and prints the flat
metadata record: storage URL, original URL, publication dates and one 0/1
flag per category. Documents missing from the primary table are resolved
through the link table.

The files themselves are not read; only their paths matter. With --check each
storage URL is also probed with a HEAD request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	_, r, err := loadResolver(cmd.Context())
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var ch *bucket.Checker
	if check, _ := cmd.Flags().GetBool("check"); check {
		ch = newChecker()
	}

	var failed, absent int
	for _, path := range args {
		md, err := r.Resolve(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %v\n", errColor("failed:"), err)
			continue
		}

		fields := md.Fields()
		if ch != nil {
			stored, err := ch.Exists(cmd.Context(), md.S3URL)
			if err != nil {
				return err
			}
			if !stored {
				absent++
				fmt.Fprintf(os.Stderr, "%s %s\n", warnColor("not in bucket:"), md.S3URL)
			}
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(fields); err != nil {
				return err
			}
			continue
		}

		data, err := yaml.Marshal(fields)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", keyColor("# "+path), okColor(source(md.FromLinks)))
		fmt.Print(string(data))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) could not be resolved", failed, len(args))
	}
	if absent > 0 {
		return fmt.Errorf("%d of %d document(s) missing from the bucket", absent, len(args))
	}
	return nil
}

func source(fromLinks bool) string {
	if fromLinks {
		return "(via link table)"
	}
	return "(primary)"
}

func init() {
	resolveCmd.Flags().Bool("json", false, "print JSON instead of YAML")
	resolveCmd.Flags().Bool("check", false, "verify that each s3_url exists in the bucket")

	rootCmd.AddCommand(resolveCmd)
}
