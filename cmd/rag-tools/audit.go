// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-tools/internal/enrich"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List documents missing from both reference tables",
	Long: `Audit walks the documents directory and prints every PDF whose file id
appears in neither the primary nor the link table. These documents would fail
enrichment; the reference data has to be fixed before they can be resolved.

With --storage the storage URL of every resolvable document is probed with a
HEAD request and the URLs missing from the bucket are listed.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("documents-dir") {
		cfg.Enrich.DocumentsDir, _ = cmd.Flags().GetString("documents-dir")
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Enrich.Pattern, _ = cmd.Flags().GetString("pattern")
	}

	paths, err := enrich.FindDocuments(cfg.Enrich.DocumentsDir, cfg.Enrich.Pattern)
	if err != nil {
		return err
	}
	tables, r, err := loadResolver(cmd.Context())
	if err != nil {
		return err
	}

	missing := enrich.Audit(tables, paths)
	for _, p := range missing {
		fmt.Println(p)
	}
	report(fmt.Sprintf("%d of %d document(s) not in either table", len(missing), len(paths)), len(missing))

	absent := 0
	if storage, _ := cmd.Flags().GetBool("storage"); storage {
		var urls []string
		for _, p := range paths {
			if md, err := r.Resolve(p); err == nil {
				urls = append(urls, md.S3URL)
			}
		}
		results, err := newChecker().CheckAll(cmd.Context(), urls, cfg.Storage.CheckWorkers)
		if err != nil {
			return err
		}
		for _, res := range results {
			switch {
			case res.Err != nil:
				absent++
				fmt.Printf("%s %s (%v)\n", errColor("error"), res.URL, res.Err)
			case !res.Exists:
				absent++
				fmt.Println(res.URL)
			}
		}
		report(fmt.Sprintf("%d of %d resolved document(s) not in the bucket", absent, len(urls)), absent)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(missing)+absent > 0 {
		return fmt.Errorf("%d unknown and %d unstored document(s)", len(missing), absent)
	}
	return nil
}

func report(summary string, problems int) {
	if problems == 0 {
		fmt.Println(okColor(summary))
		return
	}
	fmt.Println(warnColor(summary))
}

func init() {
	auditCmd.Flags().String("documents-dir", "", "root of the <country>/<year>/<file_id>.pdf tree")
	auditCmd.Flags().String("pattern", "", "glob selecting documents under documents-dir (default **/*.pdf)")
	auditCmd.Flags().Bool("storage", false, "also check that every resolved s3_url exists in the bucket")
	auditCmd.Flags().Bool("strict", false, "exit with an error when any document is unknown or unstored")

	rootCmd.AddCommand(auditCmd)
}
