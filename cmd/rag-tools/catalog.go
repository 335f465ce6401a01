// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-tools/internal/catalog"
	"github.com/pdiddy/rag-tools/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query and export the catalog of enriched documents",
	Long: `Catalog reads the SQLite database that enrich fills with every enriched
document, its metadata and its categories. Use subcommands to query it or to
export the metadata records.`,
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Find enriched documents by file id, year, category or text",
	Long: `Query filters the catalog by file id, year, category (display name or
key, see "rag-tools categories") and a case-insensitive substring of the body
or original URL. Positional arguments are joined into the text filter.`,
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.Query(cmd.Context(), catalogQueryFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(docs, jsonOutput)
}

func formatCatalogOutput(docs []types.Document, jsonOutput bool) error {
	if jsonOutput {
		records := make([]map[string]any, len(docs))
		for i, d := range docs {
			records[i] = d.Metadata.Fields()
			records[i][catalog.KeyPath] = d.Path
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-4s  %-12s  %-40s  %s\n",
		"File ID", "Year", "Published", "Original URL", "Categories")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, d := range docs {
		md := d.Metadata
		published := md.DatePublished
		if md.FromLinks {
			published = "via link"
		}
		url := md.OriginalURL
		if len(url) > 40 {
			url = url[:37] + "..."
		}
		var cats []string
		for _, c := range md.Categories.Members() {
			cats = append(cats, c.String())
		}
		fmt.Fprintf(os.Stdout, "%-24s  %-4s  %-12s  %-40s  %s\n",
			md.FileID, md.Year, published, url, strings.Join(cats, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export catalog metadata records to YAML or JSON",
	Long: `Export writes the flat metadata record of every catalogued document (or a
filtered subset) to export.yaml or export.json in the catalog directory.
Supports the same filter flags as query.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalogQueryFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println(okColor("Exported to " + path))
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	c := cfg.Catalog
	if cmd.Flags().Changed("catalog-dir") {
		c.Dir, _ = cmd.Flags().GetString("catalog-dir")
	}
	return catalog.NewStore(c)
}

func catalogQueryFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	fileID, _ := cmd.Flags().GetString("file-id")
	year, _ := cmd.Flags().GetString("year")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		FileID:     fileID,
		Year:       year,
		Category:   category,
		Text:       text,
		MaxResults: limit,
	}
}

func addCatalogFilterFlags(c *cobra.Command) {
	c.Flags().String("text", "", "substring of the body or original URL")
	c.Flags().String("file-id", "", "filter by file id")
	c.Flags().String("year", "", "filter by year")
	c.Flags().String("category", "", "filter by category name or key")
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "directory containing catalog.db")

	addCatalogFilterFlags(catalogQueryCmd)
	catalogQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	addCatalogFilterFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
