package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit}, Normalize(Params{}))
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit}, Normalize(Params{Page: -3, Limit: 0}))
	assert.Equal(t, Params{Page: 4, Limit: MaxLimit}, Normalize(Params{Page: 4, Limit: 500}))
	assert.Equal(t, Params{Page: 2, Limit: 24}, Normalize(Params{Page: 2, Limit: 24}))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 5, TotalPages(60, 12))
	assert.Equal(t, 1, TotalPages(5, 0))
}
