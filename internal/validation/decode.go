package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/users-generator-api/internal/models"
)

// ParseBatch decodes an import payload. The payload must be a JSON array
// whose elements are all objects; anything else is models.ErrMalformedInput.
func ParseBatch(data []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", models.ErrMalformedInput)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedInput, err)
	}

	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", models.ErrMalformedInput, i)
		}
	}

	return records, nil
}

// DecodeCandidate copies the known string fields of a loosely typed record
// into a CandidateRecord. Missing or null keys are left empty for the
// required rule to catch; values of any other JSON type are reported.
func DecodeCandidate(raw map[string]interface{}) (*models.CandidateRecord, []ValidationError) {
	rec := &models.CandidateRecord{}

	fields := []struct {
		name string
		dst  *string
	}{
		{"firstName", &rec.FirstName},
		{"lastName", &rec.LastName},
		{"birthDate", &rec.BirthDate},
		{"city", &rec.City},
		{"country", &rec.Country},
		{"avatar", &rec.Avatar},
		{"company", &rec.Company},
		{"jobPosition", &rec.JobPosition},
		{"mobile", &rec.Mobile},
		{"username", &rec.Username},
		{"email", &rec.Email},
		{"password", &rec.Password},
		{"role", &rec.Role},
	}

	var errs []ValidationError
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   f.name,
				Rule:    "string",
				Message: "must be a string",
				Value:   v,
			})
			continue
		}
		*f.dst = s
	}

	return rec, errs
}
