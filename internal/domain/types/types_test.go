package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaValidationError(t *testing.T) {
	err := fmt.Errorf("load: %w", &SchemaValidationError{Missing: []string{"fare", "completed"}})

	assert.ErrorIs(t, err, ErrSchemaValidation)
	assert.Contains(t, err.Error(), "fare, completed")

	var sve *SchemaValidationError
	assert.True(t, errors.As(err, &sve))
	assert.Equal(t, []string{"fare", "completed"}, sve.Missing)
}

func TestSourceNotFoundError(t *testing.T) {
	err := fmt.Errorf("load: %w", &SourceNotFoundError{Path: "rides.csv"})

	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.NotErrorIs(t, err, ErrSchemaValidation)
	assert.Contains(t, err.Error(), "rides.csv")
}

func TestParseArtifact(t *testing.T) {
	for _, a := range Artifacts() {
		got, ok := ParseArtifact(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, got)
	}

	_, ok := ParseArtifact("daily_metrics")
	assert.False(t, ok)
}

func TestServiceModeValid(t *testing.T) {
	assert.True(t, ProcessMode.Valid())
	assert.True(t, ServeMode.Valid())
	assert.True(t, TokenMode.Valid())
	assert.False(t, ServiceMode("ride-service").Valid())
}
