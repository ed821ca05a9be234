package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))
	assert.True(t, IsNil(Wrap(nil)))
}

func TestJoin(t *testing.T) {
	assert.True(t, IsNil(Join(NilError, NilError)))

	a := Errorf("first %v", 1)
	b := Wrap(errors.New("second"))
	joined := Join(a, NilError, b)

	assert.Equal(t, 2, joined.NumErrors())
	assert.Contains(t, joined.Error(), "first 1")
	assert.Contains(t, joined.Error(), "second")
	assert.Equal(t, a, Join(NilError, a))
}
