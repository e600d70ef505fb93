package errs

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		kind, ok := KindOf(errors.Wrap(errors.Wrap(NothingToClaim, "claim"), "usecase"))
		assert.True(t, ok)
		assert.Equal(t, NothingToClaim, kind)
	})
	t.Run("zero_address_before_invalid_argument", func(t *testing.T) {
		err := errors.Mark(errors.Wrapf(ZeroAddress, "owner"), InvalidArgument)
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, ZeroAddress, kind)
	})
	t.Run("unknown", func(t *testing.T) {
		_, ok := KindOf(errors.New("boom"))
		assert.False(t, ok)
	})
	t.Run("nil", func(t *testing.T) {
		_, ok := KindOf(nil)
		assert.False(t, ok)
	})
}
