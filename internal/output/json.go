package output

import (
	"encoding/json"

	"doccount/internal/count"
)

type jsonEntry struct {
	File       string `json:"file,omitempty"`
	Words      *int   `json:"words,omitempty"`
	Characters *int   `json:"characters,omitempty"`
}

func jsonFields(r count.Result, mode Mode) (words, chars *int) {
	w, c := r.Words, r.Characters
	switch mode {
	case ModeWords:
		return &w, nil
	case ModeCharacters:
		return nil, &c
	default:
		return &w, &c
	}
}

// formatJSON emits a single object for one file (or total display) and an
// array of per-file objects otherwise.
func formatJSON(entries []Entry, display Display, mode Mode) string {
	if len(entries) == 1 || display == DisplayTotal {
		w, c := jsonFields(Total(entries), mode)
		data, _ := json.Marshal(jsonEntry{Words: w, Characters: c})
		return string(data) + "\n"
	}

	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		w, c := jsonFields(e.Result, mode)
		out = append(out, jsonEntry{File: e.File, Words: w, Characters: c})
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data) + "\n"
}
