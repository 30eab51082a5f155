package errors_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	derrors "github.com/stephanfeb/dactor/errors"
)

func TestNewTimeoutError(t *testing.T) {
	err := derrors.NewTimeoutError("target-1", 50*time.Millisecond, 2)
	kind, ok := derrors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, derrors.KindTimeout, kind)
	assert.ErrorIs(t, err, derrors.ErrRequestTimeout)
}

func TestNewResponseTypeMismatchError(t *testing.T) {
	err := derrors.NewResponseTypeMismatchError(reflect.TypeOf(0), reflect.TypeOf(""))
	kind, ok := derrors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, derrors.KindResponseTypeMismatch, kind)
	assert.ErrorIs(t, err, derrors.ErrResponseTypeMismatch)
	assert.Contains(t, err.Error(), "int")
	assert.Contains(t, err.Error(), "string")
}

func TestIDCollisionError(t *testing.T) {
	err := derrors.NewIDCollisionError("dup")
	kind, ok := derrors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, derrors.KindIDCollision, kind)
	assert.ErrorIs(t, err, derrors.ErrActorAlreadyExists)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "timeout", derrors.KindTimeout.String())
	assert.Equal(t, "unknown", derrors.Kind(99).String())
}
