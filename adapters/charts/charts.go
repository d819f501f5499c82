// Package charts builds the echarts visualizations for both applications.
// Every chart renders two ways: as a fragment (div plus script) embedded
// into an application page, or as a full self-contained HTML document for
// download.
package charts

import (
	"bytes"
	"io"
	"strings"

	"penguinlab/internal/errors"

	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "540px"
)

// Renderable is the piece of the echarts API the package needs.
type Renderable interface {
	Render(w io.Writer) error
}

// RenderPage writes the chart as a complete standalone HTML document.
func RenderPage(chart Renderable, w io.Writer) error {
	if err := chart.Render(w); err != nil {
		return errors.RenderError("failed to render chart page", err)
	}
	return nil
}

// RenderFragment writes only the chart div and its script, for embedding
// into a page that already loads the echarts assets.
func RenderFragment(chart Renderable, w io.Writer) error {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return errors.RenderError("failed to render chart", err)
	}
	if _, err := w.Write([]byte(extractChartContent(buf.String()))); err != nil {
		return errors.RenderError("failed to write chart fragment", err)
	}
	return nil
}

// extractChartContent pulls the chart container and script out of the full
// HTML page echarts emits. Content that is already a fragment passes through.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}
	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}
	return html[start:end]
}

func initOpts(pageTitle string) opts.Initialization {
	return opts.Initialization{
		PageTitle: pageTitle,
		Width:     chartWidth,
		Height:    chartHeight,
	}
}
