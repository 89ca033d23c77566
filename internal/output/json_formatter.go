package output

import (
	"encoding/json"
)

// JSONFormatter renders the report as a JSON object with "results" and
// optional "enhancedResults" keys, the shape batch collaborators consume.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output for the report.
func (jf *JSONFormatter) Format(report *Report) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
