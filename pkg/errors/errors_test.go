package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(CodeUpstreamTimeout, cause, "products fetch")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUpstreamTimeout, err.Code())
	assert.Equal(t, "UPSTREAM_TIMEOUT: products fetch", err.Error())
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := New(CodeUpstreamParse, "empty body")
	outer := fmt.Errorf("get products: %w", inner)

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, CodeUpstreamParse, typed.Code())

	assert.Nil(t, As(fmt.Errorf("plain")))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeConfiguration, "missing api key"))
	assert.True(t, HasCode(err, CodeConfiguration))
	assert.False(t, HasCode(err, CodeUpstreamStatus))
	assert.False(t, HasCode(nil, CodeConfiguration))
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NO_SUCH_CODE"))
	assert.Equal(t, MetadataFor(CodeInternal), meta)
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("boundary: %w", Wrap(CodeUpstreamStatus, fmt.Errorf("status 500"), "products fetch"))
	d := Dump(err)
	assert.Equal(t, CodeUpstreamStatus, d.Code)
	assert.Len(t, d.Chain, 3)
}
