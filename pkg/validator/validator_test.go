package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// schoolPayload mirrors the shape and tags of the index request DTO.
type schoolPayload struct {
	ID          string   `validate:"required"`
	Name        string   `validate:"required,min=1"`
	Rating      float64  `validate:"gte=0,lte=5"`
	ReviewCount int      `validate:"gte=0"`
	SourceURL   string   `validate:"omitempty,url"`
	Specialties []string `validate:"max=20"`
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_CompleteSchoolPasses(t *testing.T) {
	p := schoolPayload{
		ID:        "school-1",
		Name:      "Alpha Aviation",
		Rating:    4.5,
		SourceURL: "https://alpha-aviation.example.com",
	}

	assert.NoError(t, Validate(p))
}

func TestValidate_MissingID(t *testing.T) {
	p := schoolPayload{Name: "Alpha Aviation"}
	err := Validate(p)
	require.Error(t, err)

	f := fields(t, err)
	assert.Equal(t, "is required", f["ID"])
	assert.NotContains(t, f, "Name")
}

func TestValidate_RatingAboveScale(t *testing.T) {
	p := schoolPayload{ID: "school-1", Name: "Alpha", Rating: 7.2}
	err := Validate(p)
	require.Error(t, err)

	f := fields(t, err)
	assert.Equal(t, "must be less than or equal to 5", f["Rating"])
}

func TestValidate_NegativeReviewCount(t *testing.T) {
	p := schoolPayload{ID: "school-1", Name: "Alpha", ReviewCount: -3}
	err := Validate(p)
	require.Error(t, err)

	f := fields(t, err)
	assert.Contains(t, f["ReviewCount"], "greater than or equal to 0")
}

func TestValidate_MalformedSourceURL(t *testing.T) {
	p := schoolPayload{ID: "school-1", Name: "Alpha", SourceURL: "not a url"}
	err := Validate(p)
	require.Error(t, err)

	f := fields(t, err)
	assert.Equal(t, "must be a valid URL", f["SourceURL"])
}

func TestValidate_EmptySourceURLAllowed(t *testing.T) {
	p := schoolPayload{ID: "school-1", Name: "Alpha"}
	assert.NoError(t, Validate(p))
}

func TestValidate_CollectsEveryFailingField(t *testing.T) {
	p := schoolPayload{Rating: -1}
	err := Validate(p)
	require.Error(t, err)

	f := fields(t, err)
	assert.Contains(t, f, "ID")
	assert.Contains(t, f, "Name")
	assert.Contains(t, f, "Rating")
}

func TestValidationError_ErrorNamesFields(t *testing.T) {
	err := Validate(schoolPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'ID' is required")
	assert.Contains(t, err.Error(), "field 'Name' is required")
}

func TestValidate_UnknownTagFallsBack(t *testing.T) {
	type odd struct {
		Code string `validate:"alphanum"`
	}
	err := Validate(odd{Code: "no spaces!"})
	require.Error(t, err)

	f := fields(t, err)
	assert.Contains(t, f["Code"], "alphanum")
}
