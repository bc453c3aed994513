package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone_number,omitempty" validate:"omitempty,e164"`
}

func TestValidateReturnsNilForValidValue(t *testing.T) {
	assert.Nil(t, Validate(payload{Email: "a@b.com", Phone: "+15550100001"}))
}

func TestValidateKeysViolationsByJSONName(t *testing.T) {
	violations := Validate(payload{Email: "not-an-email", Phone: "bogus"})
	require.Len(t, violations, 2)
	assert.Equal(t, "must be a valid email address", violations["email"])
	assert.Equal(t, "must be an E.164 phone number", violations["phone_number"])
}
