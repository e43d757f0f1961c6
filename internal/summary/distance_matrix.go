package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// dmPreviewLimit caps the size of the inline matrix preview table
const dmPreviewLimit = 20

const dmHTMLHeader = `<b>Number of samples:</b> %d<br/>
<b>Minimum distance:</b> %.4f<br/>
<b>Maximum distance:</b> %.4f<br/>
<b>Mean distance:</b> %.4f<br/>
<b>Median distance:</b> %.4f<br/>
<br/><hr/><br/>
`

// DistanceMatrixRenderer renders a distance matrix summary: descriptive
// statistics of the pairwise distances plus a matrix preview table
type DistanceMatrixRenderer struct{}

// NewDistanceMatrixRenderer creates a new DistanceMatrixRenderer
func NewDistanceMatrixRenderer() *DistanceMatrixRenderer {
	return &DistanceMatrixRenderer{}
}

// Render writes index.html under outDir. The summary is self-contained,
// so no support directory is returned.
func (r *DistanceMatrixRenderer) Render(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*Result, error) {
	dm, err := parser.ReadDistanceMatrix(files.First(types.RolePlainText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	stats := describe(dm.CondensedValues())

	n := len(dm.IDs)
	if n > dmPreviewLimit {
		n = dmPreviewLimit
	}
	tw := table.NewWriter()
	header := table.Row{""}
	for _, id := range dm.IDs[:n] {
		header = append(header, id)
	}
	tw.AppendHeader(header)
	for i := 0; i < n; i++ {
		row := table.Row{dm.IDs[i]}
		for j := 0; j < n; j++ {
			row = append(row, fmt.Sprintf("%.4f", dm.Data[i][j]))
		}
		tw.AppendRow(row)
	}

	htmlPath := filepath.Join(outDir, "index.html")
	content := fmt.Sprintf(dmHTMLHeader, len(dm.IDs), stats.Min, stats.Max, stats.Mean, stats.Median)
	content += tw.RenderHTML()
	if err := os.WriteFile(htmlPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return &Result{HTMLPath: htmlPath}, nil
}
