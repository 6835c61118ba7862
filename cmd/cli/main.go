package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"racidash/adapters/memory"
	"racidash/app"
	"racidash/domain/raci"
	"racidash/export"
	"racidash/internal/config"
	"racidash/ui"
)

func main() {
	var (
		sheet      string
		jsonOut    bool
		exportPath string
		powerbiDir string
		host       string
		port       string
	)

	rootCmd := &cobra.Command{
		Use:   "racidash [file]",
		Short: "Parse a RACI spreadsheet and serve or export the dashboard",
		Long: `Parse a RACI spreadsheet (.xlsx or .csv) into a structured model.

Without --json, --export or --powerbi the parsed dashboard is served
on http://HOST:PORT.

Example: racidash matrix.xlsx --sheet "RACI" --export dashboard.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewDatasetService(memory.NewSnapshotRepository())
			ds, err := service.LoadFile(cmd.Context(), args[0], sheet)
			if err != nil {
				return err
			}

			if jsonOut {
				data, err := json.MarshalIndent(ds, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printReport(ds)

			exported := false
			if exportPath != "" {
				page, err := export.HTML(ds)
				if err != nil {
					return err
				}
				if err := os.WriteFile(exportPath, page, 0o644); err != nil {
					return err
				}
				fmt.Printf("\nDashboard exported to %s\n", exportPath)
				exported = true
			}
			if powerbiDir != "" {
				if err := export.Kit(ds, powerbiDir); err != nil {
					return err
				}
				fmt.Printf("\nPower BI kit written to %s\n", filepath.Clean(powerbiDir))
				exported = true
			}
			if exported {
				return nil
			}

			cfg := config.Load()
			cfg.Server.Host = host
			cfg.Server.Port = port
			server := ui.NewServer(service, cfg)
			return server.Start(host + ":" + port)
		},
	}

	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to parse (default: best scoring sheet)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the parsed dataset as JSON and exit")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "Write a standalone HTML dashboard to this path and exit")
	rootCmd.Flags().StringVar(&powerbiDir, "powerbi", "", "Write the Power BI starter kit to this directory and exit")
	rootCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Dashboard host")
	rootCmd.Flags().StringVar(&port, "port", "8080", "Dashboard port")

	rootCmd.SetContext(context.Background())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printReport(ds *raci.Dataset) {
	fmt.Printf("=== RACI PARSE REPORT ===\n")
	fmt.Printf("File: %s", ds.Meta.Filename)
	if ds.Meta.Sheet != "" {
		fmt.Printf(" (sheet %q)", ds.Meta.Sheet)
	}
	fmt.Println()
	fmt.Printf("Roles: %d | Categories: %d | Capabilities: %d\n",
		ds.Meta.RoleCount, ds.Meta.CategoryCount, ds.Meta.CapabilityCount)
	if ds.Meta.HasMaturity {
		fmt.Printf("Maturity: avg now %.2f, avg target %.2f (source scale 0-%d)\n",
			ds.Meta.AvgMaturityNow, ds.Meta.AvgMaturityTarget, ds.Meta.MaturityScale)
	}

	fmt.Printf("\nRoles:\n")
	for _, role := range ds.Roles {
		marker := ""
		if role.Status == raci.StatusUnfilled {
			marker = " [unfilled]"
		}
		fmt.Printf("  %-6s %s%s\n", role.Short, role.Label, marker)
	}

	if len(ds.Meta.OrphanedCapabilities) > 0 {
		fmt.Printf("\nCapabilities without a Responsible:\n")
		for _, name := range ds.Meta.OrphanedCapabilities {
			fmt.Printf("  ! %s\n", name)
		}
	}
	if len(ds.Meta.ZeroRRoles) > 0 {
		fmt.Printf("\nRoles with zero R assignments:\n")
		for _, label := range ds.Meta.ZeroRRoles {
			fmt.Printf("  ! %s\n", label)
		}
	}
	if ds.Meta.LowConfidenceHeader {
		fmt.Printf("\nWarning: header row detection was low-confidence.\n")
	}

	fmt.Printf("\nColumn classification:\n")
	cols := make([]int, 0, len(ds.Meta.ColumnClassifications))
	for ci := range ds.Meta.ColumnClassifications {
		cols = append(cols, ci)
	}
	sort.Ints(cols)
	for _, ci := range cols {
		report := ds.Meta.ColumnClassifications[ci]
		header := report.Header
		if header == "" {
			header = "(blank)"
		}
		fmt.Printf("  col %-3d %-30s %s\n", ci, truncate(header, 30), report.Classification)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "…"
}
