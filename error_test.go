package siteqa_test

import (
	"errors"
	"testing"

	"github.com/mstolarski/siteqa"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := siteqa.Errorf(siteqa.ENOTFOUND, "session %q not found", "test")

	assert.Equal(t, siteqa.ENOTFOUND, siteqa.ErrorCode(err))
	assert.Equal(t, "session \"test\" not found", siteqa.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteqa.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, siteqa.EINTERNAL, siteqa.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteqa.ErrorMessage(nil))
}
