package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// AlphaVectorRenderer renders an alpha diversity summary: descriptive
// statistics of the scores plus the per-sample score table
type AlphaVectorRenderer struct{}

// NewAlphaVectorRenderer creates a new AlphaVectorRenderer
func NewAlphaVectorRenderer() *AlphaVectorRenderer {
	return &AlphaVectorRenderer{}
}

// Render writes index.html under outDir. The summary is self-contained.
func (r *AlphaVectorRenderer) Render(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*Result, error) {
	av, err := parser.ReadAlphaVector(files.First(types.RolePlainText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	metric := av.Metric
	if metric == "" {
		metric = "alpha diversity"
	}

	var values []float64
	for _, s := range av.Samples {
		if v, err := strconv.ParseFloat(s.Value, 64); err == nil {
			values = append(values, v)
		}
	}
	stats := describe(values)

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Sample", metric})
	for _, s := range av.Samples {
		tw.AppendRow(table.Row{s.ID, s.Value})
	}

	htmlPath := filepath.Join(outDir, "index.html")
	content := fmt.Sprintf(`<b>Metric:</b> %s<br/>
<b>Number of samples:</b> %d<br/>
<b>Minimum value:</b> %.4f<br/>
<b>Maximum value:</b> %.4f<br/>
<b>Mean value:</b> %.4f<br/>
<b>Median value:</b> %.4f<br/>
<br/><hr/><br/>
%s`, metric, len(av.Samples), stats.Min, stats.Max, stats.Mean, stats.Median, tw.RenderHTML())
	if err := os.WriteFile(htmlPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return &Result{HTMLPath: htmlPath}, nil
}
