package jobscout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/jobscout"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := jobscout.Errorf(jobscout.ENOTFOUND, "blueprint %q not found", "acme")

	assert.Equal(t, jobscout.ENOTFOUND, jobscout.ErrorCode(err))
	assert.Equal(t, "blueprint \"acme\" not found", jobscout.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty for nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, jobscout.ErrorCode(nil))
	})

	t.Run("returns internal for foreign errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, jobscout.EINTERNAL, jobscout.ErrorCode(errors.New("boom")))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("infer: %w", jobscout.Errorf(jobscout.ECHALLENGE, "challenge page"))

		assert.Equal(t, jobscout.ECHALLENGE, jobscout.ErrorCode(err))
	})
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jobscout.ErrorMessage(nil))
}

func TestErrorReasons(t *testing.T) {
	t.Parallel()

	err := jobscout.Errorf(jobscout.ENOCANDIDATE, "no candidate validated")
	err.Reasons = []string{"ul > li: no title"}

	assert.Equal(t, []string{"ul > li: no title"}, jobscout.ErrorReasons(err))
	assert.Nil(t, jobscout.ErrorReasons(errors.New("boom")))
}
