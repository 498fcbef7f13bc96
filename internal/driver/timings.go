package driver

import (
	"encoding/json"
	"fmt"

	"trylint/internal/diag"
	"trylint/internal/observ"
	"trylint/internal/source"
)

type timingPayload struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	observ.Report
}

// appendTimingDiagnostic records the run's phase timings as an info
// diagnostic so every output format carries them. The machine-readable
// payload rides in a note.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg)
	entry.Notes = append(entry.Notes, diag.Note{Span: source.Span{}, Msg: string(data)})
	bag.Add(entry)
}
