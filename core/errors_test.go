package core

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorCode(t *testing.T) {
	err := WrapError(ErrNoMoreFallbacks, ENOFALLBACK, "while shaping %x", []rune("☺"))
	assert.Equal(t, ENOFALLBACK, Code(err))
	assert.True(t, errors.Is(err, ErrNoMoreFallbacks))
	assert.Contains(t, err.Error(), "no more fallbacks")
	assert.Contains(t, UserMessage(err), "263a")
}

func TestCodeThroughWrapping(t *testing.T) {
	inner := WrapError(ErrFontLoad, EFONTLOAD, "font %d", 3)
	outer := fmt.Errorf("shaper: %w", inner)
	assert.Equal(t, EFONTLOAD, Code(outer))
	assert.True(t, errors.Is(outer, ErrFontLoad))
	assert.Equal(t, "font 3", UserMessage(outer))
}

func TestNilAndPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	plain := errors.New("plain")
	assert.Equal(t, EINTERNAL, Code(plain))
	assert.Equal(t, "internal error", UserMessage(plain))
}

func TestErrorWithoutCause(t *testing.T) {
	err := Error(EINVALID, "%s is not valid", "xyz")
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "[123] invalid: xyz is not valid", err.Error())
	err = ErrorWithCode(nil, ESPAN)
	assert.Equal(t, "[128] malformed span", err.Error())
}

func TestUserError(t *testing.T) {
	var buf bytes.Buffer
	UserError(&buf, nil)
	assert.Empty(t, buf.String())
	UserError(&buf, WrapError(ErrNoMoreFallbacks, ENOFALLBACK, "no glyphs for %q", "?"))
	assert.Equal(t, "[126] no glyphs for \"?\"\n", buf.String())
	buf.Reset()
	UserError(&buf, fmt.Errorf("shaper: %w", Error(EFONTLOAD, "font %d", 2)))
	assert.Equal(t, "[127] font 2\n", buf.String())
	buf.Reset()
	UserError(&buf, errors.New("plain"))
	assert.Equal(t, "Error: plain\n", buf.String())
}
