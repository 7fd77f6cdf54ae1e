package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chemalert/chemalert/config"
	"github.com/chemalert/chemalert/internal/app"
	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/catalogapi"
	"github.com/chemalert/chemalert/internal/chemical"
	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/loader"
	"github.com/chemalert/chemalert/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return err
			}
			application := app.NewApplication(cfg)
			if err := application.Init(cfg); err != nil {
				zap.L().Error("startup failed", zap.Error(err))
				return err
			}
			defer application.Release()

			server := webserver.Init(cfg, application, application.Metrics())
			catalogapi.Init()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
}

func newInitdbCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the catalog tables and seed them when empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return err
			}
			app.InitLogger(cfg)
			application := app.NewApplication(cfg)
			defer application.Release()
			if err := application.OpenDB(); err != nil {
				return err
			}
			n, err := application.InitDb()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
			return nil
		},
	}
}

// loadCatalog builds the catalog for the one-shot commands without starting jobs
func loadCatalog(opts *options) (*catalog.Catalog, *config.AppConfig, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, nil, err
	}
	application := app.NewApplication(cfg)
	defer application.Release()
	if cfg.Catalog.Source == loader.SourceDatabase {
		if err := application.OpenDB(); err != nil {
			return nil, nil, err
		}
	}
	c, err := loader.Load(cfg, application.DB())
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeProducts(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tRISK\tCHEMICALS")
	for _, p := range products {
		top, more := p.TopChemicals(2)
		chems := strings.Join(top, ", ")
		if more > 0 {
			chems += fmt.Sprintf(" +%d more", more)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Brand, p.Category, p.RiskLevel, chems)
	}
	return tw.Flush()
}

func newSearchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name, brand or chemical",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query is empty")
			}
			limit := opts.limit
			if limit == 0 {
				limit = cfg.Web.SearchLimit
			}
			matches := c.Search(query)
			shown, truncated := catalog.Truncate(matches, limit)

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, map[string]interface{}{
					"query": query, "results": shown, "total": len(matches), "truncated": truncated,
				})
			}
			if len(matches) == 0 {
				fmt.Fprintf(w, "No products found for %q\n", query)
				return nil
			}
			if err := writeProducts(w, shown); err != nil {
				return err
			}
			if truncated {
				fmt.Fprintf(w, "showing %d of %d\n", len(shown), len(matches))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "results shown, 0 uses web.search_limit")
	return cmd
}

func newProductCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product and what its chemicals do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			p, err := c.GetByID(args[0])
			if err != nil {
				return fmt.Errorf("product %s: %w", args[0], err)
			}
			infos := chemical.Annotate(p)

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, map[string]interface{}{"product": p, "chemicals": infos})
			}
			info, _ := domain.LookupCategory(p.Category)
			fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
			fmt.Fprintf(w, "Brand:     %s\n", p.Brand)
			fmt.Fprintf(w, "Category:  %s\n", info.Name)
			fmt.Fprintf(w, "Risk:      %s\n", chemical.RiskLabel(p.RiskLevel))
			if p.Description != "" {
				fmt.Fprintf(w, "\n%s\n", p.Description)
			}
			if len(infos) == 0 {
				fmt.Fprintln(w, "\nNo harmful chemicals listed")
				return nil
			}
			fmt.Fprintln(w, "\nHarmful chemicals:")
			for _, ci := range infos {
				fmt.Fprintf(w, "  - %s [%s] %s: %s\n", ci.Name, ci.Risk, ci.Category, ci.Description)
			}
			return nil
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print catalog counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			stats := c.Aggregate()

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, stats)
			}
			fmt.Fprintf(w, "Products:   %d\n", stats.Total)
			fmt.Fprintf(w, "Brands:     %d\n", stats.DistinctBrands)
			fmt.Fprintf(w, "Chemicals:  %d\n", stats.DistinctChemicals)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\nCATEGORY\tPRODUCTS\tHIGH RISK")
			for _, s := range c.CategorySummaries() {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Name, s.ProductCount, s.HighRiskCount)
			}
			fmt.Fprintln(tw, "\nRISK\tPRODUCTS\t")
			for _, level := range domain.RiskLevels {
				fmt.Fprintf(tw, "%s\t%d\t\n", level, stats.ByRisk[level])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if !list {
				return nil
			}
			all := c.ListAll()
			fmt.Fprintf(w, "\nBrands:\n  %s\n", strings.Join(catalog.SortedKeys(catalog.DistinctBrands(all)), "\n  "))
			fmt.Fprintf(w, "\nChemicals:\n  %s\n", strings.Join(catalog.SortedKeys(catalog.DistinctChemicals(all)), "\n  "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "also list every brand and chemical name")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded catalog as csv, json or yaml",
		Long: `Writes the catalog in a layout the file catalog source reads back,
e.g. to move the embedded seed into an editable file:

  chemalert export --format csv -o products.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			products := c.ListAll()

			var data []byte
			switch strings.ToLower(format) {
			case "csv":
				data, err = loader.EncodeCSV(products)
			case "json":
				data, err = json.MarshalIndent(products, "", "  ")
			case "yaml", "yml":
				data, err = yaml.Marshal(products)
			default:
				return fmt.Errorf("unknown export format %q, want csv, json or yaml", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d products to %s\n", len(products), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	return cmd
}

func newChemicalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chemical <name>",
		Short: "Describe a chemical and list the products containing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			info := chemical.Lookup(name)
			products := c.WithChemical(name)

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, map[string]interface{}{"chemical": info, "products": products})
			}
			fmt.Fprintf(w, "%s\n", info.Name)
			fmt.Fprintf(w, "Category:  %s\n", info.Category)
			fmt.Fprintf(w, "Risk:      %s\n", chemical.RiskLabel(info.Risk))
			fmt.Fprintf(w, "Tags:      %s\n", strings.Join(info.Tags, ", "))
			fmt.Fprintf(w, "\n%s\n", info.Description)
			if len(products) == 0 {
				return nil
			}
			fmt.Fprintln(w)
			return writeProducts(w, products)
		},
	}
}
