package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/university-towns/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult wraps a pipeline run for JSON output
type OutputResult struct {
	CheckedAt time.Time `json:"checked_at"`
	*pipeline.Result
}

// WriteOutput writes the result in the specified format. Text output is the
// raw state/town line stream consumed downstream; JSON adds run metadata.
func WriteOutput(w io.Writer, result *pipeline.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(&OutputResult{
			CheckedAt: time.Now().UTC(),
			Result:    result,
		})
	case FormatText:
		return result.Render(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
