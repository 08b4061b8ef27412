package output

import (
	"bufio"
	"context"
	"encoding/json"

	"github.com/chrisdamba/foodvenues/internal/models"
)

const jsonFile = "venues.jsonl"

// JSONOutput writes one JSON object per line.
type JSONOutput struct {
	target fileTarget
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{target: localTarget(basePath, folder)}
}

func (j *JSONOutput) Path() string {
	return j.target.path(jsonFile)
}

func (j *JSONOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	f, err := j.target.create(ctx, jsonFile)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i := range venues {
		if err := enc.Encode(&venues[i]); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (j *JSONOutput) Close() error {
	return nil
}
