package errdef_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
)

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("event %q", "e1")))
}

func TestIsDuplicated(t *testing.T) {
	assert.False(t, errdef.IsDuplicated(errors.New("some error")))
	assert.True(t, errdef.IsDuplicated(errdef.NewDuplicated("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsConflict(t *testing.T) {
	assert.False(t, errdef.IsConflict(errors.New("some error")))
	assert.True(t, errdef.IsConflict(errdef.NewConflict("some error")))
}

func TestKind_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("add feedback: %w", errdef.NewBadRequest("rating %d out of range", 9))

	assert.True(t, errdef.IsBadRequest(err))
	assert.Equal(t, "bad_request", errdef.Kind(err))
	assert.Equal(t, "add feedback: rating 9 out of range", err.Error())
	assert.Equal(t, "internal", errdef.Kind(errors.New("boom")))
}
