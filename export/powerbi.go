package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/sync/errgroup"

	apperrors "racidash/internal/errors"

	"racidash/domain/raci"
)

// raciWeights drive the workload measures in the DAX pack.
var raciWeights = map[string]int{"R": 4, "A": 3, "C": 2, "I": 1}

// utf8BOM makes Excel and Power BI recognize the CSVs as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Kit writes the Power BI starter kit files into dir.
func Kit(ds *raci.Dataset, dir string) error {
	files, err := kitFiles(ds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.InternalError("create kit directory", err)
	}

	var g errgroup.Group
	for name, content := range files {
		g.Go(func() error {
			if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
				return apperrors.InternalError("write "+name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// KitZip returns the kit as a single zip archive for HTTP download.
func KitZip(ds *raci.Dataset) ([]byte, error) {
	files, err := kitFiles(ds)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, apperrors.InternalError("zip "+name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, apperrors.InternalError("zip "+name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, apperrors.InternalError("close zip", err)
	}
	return buf.Bytes(), nil
}

func kitFiles(ds *raci.Dataset) (map[string][]byte, error) {
	if ds == nil {
		return nil, apperrors.InvalidInput("no dataset loaded")
	}

	files := map[string][]byte{
		"Roles.csv":            rolesCSV(ds),
		"Capabilities.csv":     capabilitiesCSV(ds),
		"RACI_Assignments.csv": assignmentsCSV(ds),
		"PowerQuery_Import.m":  []byte(powerQueryScript()),
		"DAX_Measures.dax":     []byte(daxMeasures(ds)),
	}
	md := quickStartMarkdown(ds)
	files["QuickStart.md"] = []byte(md)
	files["QuickStart.html"] = renderMarkdown(md)
	return files, nil
}

func writeCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Write(header)
	w.WriteAll(rows)
	return buf.Bytes()
}

func rolesCSV(ds *raci.Dataset) []byte {
	rows := make([][]string, 0, len(ds.Roles))
	for _, role := range ds.Roles {
		rows = append(rows, []string{role.ID, role.Label, role.Short, role.Color, role.Status})
	}
	return writeCSV([]string{"RoleID", "RoleLabel", "ShortCode", "Color", "Status"}, rows)
}

func capabilitiesCSV(ds *raci.Dataset) []byte {
	var rows [][]string
	for _, cat := range ds.Categories {
		for _, item := range cat.Items {
			now, tgt := "", ""
			if item.Now != nil {
				now = fmt.Sprintf("%d", *item.Now)
			}
			if item.Target != nil {
				tgt = fmt.Sprintf("%d", *item.Target)
			}
			rows = append(rows, []string{cat.Name, item.Name, item.Description, now, tgt})
		}
	}
	return writeCSV([]string{"Category", "Capability", "Description", "MaturityNow", "MaturityTarget"}, rows)
}

func assignmentsCSV(ds *raci.Dataset) []byte {
	var rows [][]string
	for _, cat := range ds.Categories {
		for _, item := range cat.Items {
			for _, role := range ds.Roles {
				letter, ok := item.Assignments[role.ID]
				if !ok {
					continue
				}
				rows = append(rows, []string{
					cat.Name, item.Name, role.Label, letter,
					fmt.Sprintf("%d", raciWeights[letter]),
				})
			}
		}
	}
	return writeCSV([]string{"Category", "Capability", "Role", "Assignment", "Weight"}, rows)
}

func powerQueryScript() string {
	var b strings.Builder
	b.WriteString("// Paste into Power BI: Home > Get Data > Blank Query > Advanced Editor.\n")
	b.WriteString("// Set FolderPath to the directory holding the exported CSVs.\n\n")
	b.WriteString("let\n")
	b.WriteString("    FolderPath = \"C:\\RACI_Export\\\",\n")
	b.WriteString("    Assignments = Csv.Document(File.Contents(FolderPath & \"RACI_Assignments.csv\"), [Delimiter=\",\", Encoding=65001, QuoteStyle=QuoteStyle.Csv]),\n")
	b.WriteString("    Promoted = Table.PromoteHeaders(Assignments, [PromoteAllScalars=true]),\n")
	b.WriteString("    Typed = Table.TransformColumnTypes(Promoted, {{\"Category\", type text}, {\"Capability\", type text}, {\"Role\", type text}, {\"Assignment\", type text}, {\"Weight\", Int64.Type}})\n")
	b.WriteString("in\n")
	b.WriteString("    Typed\n")
	return b.String()
}

func daxMeasures(ds *raci.Dataset) string {
	var b strings.Builder
	b.WriteString("-- Workload and coverage measures for the RACI model.\n\n")
	b.WriteString("Total Assignments = COUNTROWS(RACI_Assignments)\n\n")
	b.WriteString("Total Weight = SUM(RACI_Assignments[Weight])\n\n")
	b.WriteString("Responsible Count = CALCULATE(COUNTROWS(RACI_Assignments), RACI_Assignments[Assignment] = \"R\")\n\n")
	b.WriteString("Accountable Count = CALCULATE(COUNTROWS(RACI_Assignments), RACI_Assignments[Assignment] = \"A\")\n\n")
	b.WriteString("Capabilities Without R = COUNTROWS(FILTER(VALUES(RACI_Assignments[Capability]), CALCULATE(COUNTROWS(FILTER(RACI_Assignments, RACI_Assignments[Assignment] = \"R\"))) = 0))\n\n")
	for _, role := range ds.Roles {
		name := strings.ReplaceAll(role.Label, `"`, "")
		fmt.Fprintf(&b, "%s Workload = CALCULATE(SUM(RACI_Assignments[Weight]), RACI_Assignments[Role] = \"%s\")\n\n", name, name)
	}
	return b.String()
}

func quickStartMarkdown(ds *raci.Dataset) string {
	var b strings.Builder
	b.WriteString("# Power BI Quick Start\n\n")
	fmt.Fprintf(&b, "Exported from **%s**: %d roles, %d categories, %d capabilities.\n\n",
		ds.Meta.Filename, ds.Meta.RoleCount, ds.Meta.CategoryCount, ds.Meta.CapabilityCount)
	b.WriteString("## Files\n\n")
	b.WriteString("- `Roles.csv` — one row per role with display color and fill status\n")
	b.WriteString("- `Capabilities.csv` — one row per capability with maturity scores\n")
	b.WriteString("- `RACI_Assignments.csv` — the fact table, one row per role/capability assignment\n")
	b.WriteString("- `PowerQuery_Import.m` — import script for the fact table\n")
	b.WriteString("- `DAX_Measures.dax` — ready-made workload and coverage measures\n\n")
	b.WriteString("## Steps\n\n")
	b.WriteString("1. Open Power BI Desktop and import the three CSV files (Get Data > Text/CSV).\n")
	b.WriteString("2. Relate `RACI_Assignments[Role]` to `Roles[RoleLabel]` and `RACI_Assignments[Capability]` to `Capabilities[Capability]`.\n")
	b.WriteString("3. Create the measures from `DAX_Measures.dax` (Modeling > New Measure, one per block).\n")
	b.WriteString("4. Build a matrix visual: Capability on rows, Role on columns, first Assignment as values.\n")
	b.WriteString("\nAssignment weights: R=4, A=3, C=2, I=1.\n")
	return b.String()
}

func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}
