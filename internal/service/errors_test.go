package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("start_date", "bad")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))

	// kinds survive wrapping
	wrapped := fmt.Errorf("outer: %w", NotFound("user"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "password: too short", Validation("password", "too short").Error())
	assert.Equal(t, "user not found", NotFound("user").Error())

	cause := errors.New("disk gone")
	err := PartialFailure("bytes left behind", cause)
	assert.Equal(t, KindPartialFailure, KindOf(err))
	assert.ErrorIs(t, err, cause)
}
