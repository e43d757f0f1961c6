package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// SupportDirName is the auxiliary directory written next to ordination
// summaries, holding the viewer resources referenced by index.html
const SupportDirName = "emperor_support_files"

const ordinationCSS = `body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
`

// OrdinationResultsRenderer renders an ordination summary: the proportion
// of variance explained per axis and the sample coordinates joined with
// the sample metadata
type OrdinationResultsRenderer struct{}

// NewOrdinationResultsRenderer creates a new OrdinationResultsRenderer
func NewOrdinationResultsRenderer() *OrdinationResultsRenderer {
	return &OrdinationResultsRenderer{}
}

// Render writes index.html plus a support directory under outDir and
// returns both locations
func (r *OrdinationResultsRenderer) Render(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*Result, error) {
	ord, err := parser.ReadOrdination(files.First(types.RolePlainText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	supportDir := filepath.Join(outDir, SupportDirName)
	if err := os.MkdirAll(supportDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if err := os.WriteFile(filepath.Join(supportDir, "emperor.css"), []byte(ordinationCSS), 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	axes := table.NewWriter()
	axes.AppendHeader(table.Row{"Axis", "Proportion explained"})
	for i, p := range ord.ProportionExplained {
		axes.AppendRow(table.Row{fmt.Sprintf("PC%d", i+1), fmt.Sprintf("%.4f", p)})
	}

	// Stable metadata column order across runs
	var mdCols []string
	for _, id := range ord.SampleIDs {
		for col := range metadata[id] {
			if !containsString(mdCols, col) {
				mdCols = append(mdCols, col)
			}
		}
	}
	sort.Strings(mdCols)

	coords := table.NewWriter()
	coordHeader := table.Row{"Sample"}
	for i := 0; i < axisCount(ord); i++ {
		coordHeader = append(coordHeader, fmt.Sprintf("PC%d", i+1))
	}
	for _, col := range mdCols {
		coordHeader = append(coordHeader, col)
	}
	coords.AppendHeader(coordHeader)
	for i, id := range ord.SampleIDs {
		row := table.Row{id}
		for _, v := range ord.Coordinates[i] {
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		for _, col := range mdCols {
			row = append(row, fmt.Sprintf("%v", metadata[id][col]))
		}
		coords.AppendRow(row)
	}

	htmlPath := filepath.Join(outDir, "index.html")
	content := fmt.Sprintf(`<link rel="stylesheet" href="%s/emperor.css"/>
<b>Number of samples:</b> %d<br/>
<br/><hr/><br/>
%s
<br/><hr/><br/>
%s`, SupportDirName, len(ord.SampleIDs), axes.RenderHTML(), coords.RenderHTML())
	if err := os.WriteFile(htmlPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return &Result{HTMLPath: htmlPath, SupportDir: supportDir}, nil
}

// axisCount returns the number of coordinate axes in the ordination
func axisCount(ord *parser.Ordination) int {
	if len(ord.Coordinates) == 0 {
		return 0
	}
	return len(ord.Coordinates[0])
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
