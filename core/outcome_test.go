package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_Terminates(t *testing.T) {
	assert.False(t, Continue(127).Terminates())
	assert.True(t, Exit(0).Terminates())

	fail := Fail(errors.New("fork"))
	assert.True(t, fail.Terminates())
	assert.Equal(t, StatusFailure, fail.Status)
	assert.EqualError(t, fail.Err, "fork")
}
