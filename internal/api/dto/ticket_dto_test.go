package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateTicketRequest() CreateTicketRequest {
	return CreateTicketRequest{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "VPN drops every few minutes",
		Impact:      "Medium",
		Urgency:     "High",
	}
}

func TestCreateTicketRequestPhoneIsOptional(t *testing.T) {
	req := validCreateTicketRequest()
	require.NoError(t, Validate(req))

	req.Phone = "9495551234"
	require.NoError(t, Validate(req))

	req.Phone = "555"
	err := Validate(req)
	require.Error(t, err)
}

func TestCreateTicketRequestRequiredFields(t *testing.T) {
	req := validCreateTicketRequest()
	req.Email = ""
	assert.Error(t, Validate(req))

	req = validCreateTicketRequest()
	req.Impact = "Severe"
	assert.Error(t, Validate(req))

	// Subject and company stay optional; intake backfills the subject.
	req = validCreateTicketRequest()
	req.Subject = ""
	req.Company = ""
	assert.NoError(t, Validate(req))
}
