package pipeline

import "github.com/seichi-tools/panotabi/internal/model"

// dedupeRecords drops records whose panorama ID was already seen, keeping
// the first occurrence. Input order is preserved and a second pass over
// already-deduped records changes nothing.
func dedupeRecords(records []model.Record) []model.Record {
	seen := make(map[string]bool, len(records))
	out := make([]model.Record, 0, len(records))

	for _, r := range records {
		if seen[r.Panorama.PanoID] {
			continue
		}
		seen[r.Panorama.PanoID] = true
		out = append(out, r)
	}

	return out
}
