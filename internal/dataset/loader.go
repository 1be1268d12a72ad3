package dataset

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Load reads a dataset from a JSON file, backfills missing IDs and validates
// the result. Records without an ID get a fresh UUID so hand-written fixture
// files stay minimal.
func Load(path string) (models.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Dataset{}, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, "cannot read dataset file")
	}
	return Parse(raw)
}

// Parse decodes and validates a JSON dataset.
func Parse(raw []byte) (models.Dataset, error) {
	var data models.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Dataset{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "dataset is not valid JSON")
	}

	for i := range data.Sections {
		if data.Sections[i].ID == "" {
			data.Sections[i].ID = uuid.New().String()
		}
	}
	for i := range data.Teachers {
		if data.Teachers[i].ID == "" {
			data.Teachers[i].ID = uuid.New().String()
		}
	}
	for i := range data.Rooms {
		if data.Rooms[i].ID == "" {
			data.Rooms[i].ID = uuid.New().String()
		}
	}
	for i := range data.Subjects {
		if data.Subjects[i].ID == "" {
			data.Subjects[i].ID = uuid.New().String()
		}
	}

	if err := validator.New().Struct(data); err != nil {
		return models.Dataset{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "dataset validation failed")
	}
	return data, nil
}
