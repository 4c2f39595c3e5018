package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContactRequest(t *testing.T) {
	valid := func() contactRequest {
		return contactRequest{
			Name:    "Lan Pham",
			Email:   "lan@example.com",
			Phone:   "+84 90 123 4567",
			Message: "We would like a quote for a two-story house.",
		}
	}

	req := valid()
	require.NoError(t, validateContactRequest(&req))

	req = valid()
	req.Name = "   "
	assert.Error(t, validateContactRequest(&req))

	req = valid()
	req.Email = "not-an-address"
	assert.Error(t, validateContactRequest(&req))

	req = valid()
	req.Message = ""
	assert.Error(t, validateContactRequest(&req))

	req = valid()
	req.Message = strings.Repeat("a", maxMessageLength+1)
	assert.Error(t, validateContactRequest(&req))

	req = valid()
	req.Phone = strings.Repeat("1", 33)
	assert.Error(t, validateContactRequest(&req))

	// phone is optional
	req = valid()
	req.Phone = ""
	assert.NoError(t, validateContactRequest(&req))

	// surrounding whitespace is trimmed before checks
	req = valid()
	req.Email = "  lan@example.com  "
	require.NoError(t, validateContactRequest(&req))
	assert.Equal(t, "lan@example.com", req.Email)
}
