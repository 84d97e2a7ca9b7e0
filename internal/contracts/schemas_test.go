package contracts

import (
	"encoding/json"
	"listing-bff/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidateDraft(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.ValidateDraft(domain.Listing{ID: "7", Title: "Sea view", Price: 500}))
	assert.ErrorIs(t, v.ValidateDraft(domain.Listing{ID: "7", Title: "", Price: 500}), domain.ErrValidation)
	assert.ErrorIs(t, v.ValidateDraft(domain.Listing{ID: "7", Title: "x", Price: -1}), domain.ErrValidation)
	assert.ErrorIs(t, v.ValidateDraft(domain.Listing{Title: "x"}), domain.ErrValidation)
}

func TestValidateEvent(t *testing.T) {
	v := newValidator(t)

	body, err := json.Marshal(domain.NewEvent(domain.EventDraftUpdated, map[string]any{"draft_id": "7"}))
	require.NoError(t, err)
	assert.NoError(t, v.ValidateEvent(body))

	assert.Error(t, v.ValidateEvent([]byte(`{"id":"not-a-uuid","type":"drafts.updated","occurred_at":"2024-01-01T00:00:00Z"}`)))
	assert.Error(t, v.ValidateEvent([]byte(`{"id":"5b1e3c1a-7a2b-4c7e-9f00-000000000001","type":"unknown","occurred_at":"2024-01-01T00:00:00Z"}`)))
	assert.Error(t, v.ValidateEvent([]byte(`not json`)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := newValidator(t)

	assert.Error(t, v.Validate("Missing/1.0.0", []byte(`{}`)))
}
