package nezamdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rashidq/nezamdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := nezamdoc.Errorf(nezamdoc.ENOTFOUND, "site %q not found", "test")

	assert.Equal(t, nezamdoc.ENOTFOUND, nezamdoc.ErrorCode(err))
	assert.Equal(t, "site \"test\" not found", nezamdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nezamdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nezamdoc.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, nezamdoc.EINTERNAL, nezamdoc.ErrorCode(errors.New("boom")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("harvest: %w", nezamdoc.Errorf(nezamdoc.ETIMEOUT, "content did not render"))

	assert.Equal(t, nezamdoc.ETIMEOUT, nezamdoc.ErrorCode(err))
	assert.Equal(t, "content did not render", nezamdoc.ErrorMessage(err))
}
