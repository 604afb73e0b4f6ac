package scan

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dendrascience/fscan/version"
)

// Report is the JSON summary written by --report.
type Report struct {
	RunID     string    `json:"run_id"`
	Version   string    `json:"fscan_version"`
	Command   string    `json:"command"`
	Roots     []string  `json:"roots"`
	Workers   int       `json:"workers"`
	Files     int64     `json:"files"`
	Processed int64     `json:"processed"`
	Failed    int64     `json:"failed"`
	Dropped   int64     `json:"dropped"`
	Started   time.Time `json:"started"`
	Elapsed   string    `json:"elapsed"`
	Result    any       `json:"result,omitempty"`
}

// NewReport combines run statistics with a handler's result.
func NewReport(command string, roots []string, started time.Time, stats Stats, result any) Report {
	return Report{
		RunID:     stats.RunID,
		Version:   version.GetVersion(),
		Command:   command,
		Roots:     roots,
		Workers:   stats.Workers,
		Files:     stats.Files,
		Processed: stats.Processed,
		Failed:    stats.Failed,
		Dropped:   stats.Dropped,
		Started:   started,
		Elapsed:   stats.Elapsed.String(),
		Result:    result,
	}
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
