package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	SrcIP   string `json:"srcip" validate:"required,ip"`
	SrcPort int    `json:"srcport" validate:"gte=0,lte=65535"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.Nil(t, v.Validate(sample{SrcIP: "10.0.0.9", SrcPort: 443}))

	errs := v.Validate(sample{SrcIP: "not-an-ip", SrcPort: 70000, Email: "x"})
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "ip", byField["srcip"].Tag)
	assert.Equal(t, "srcip must be a valid IP address", byField["srcip"].Message)
	assert.Equal(t, "lte", byField["srcport"].Tag)
	assert.Equal(t, "email", byField["email"].Tag)
}

func TestValidate_NonStruct(t *testing.T) {
	errs := New().Validate("plain string")
	require.Len(t, errs, 1)
	assert.Equal(t, "struct", errs[0].Tag)
}
