package util_test

import (
	"testing"

	"mediavault/media-api/util"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	// Case folds, so the differently-cased duplicate collapses
	assert.Equal(t, []string{"cat", "dog"}, util.ParseTags("Cat, dog, cat"))

	assert.Equal(t, []string{"sunset", "beach"}, util.ParseTags(" sunset ,, beach ,"))
	assert.Empty(t, util.ParseTags(""))
	assert.Empty(t, util.ParseTags("  ,  , "))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"vacation"}, util.NormalizeTags([]string{"Vacation", "VACATION", "vacation"}))
	assert.Equal(t, []string{"a", "b"}, util.NormalizeTags([]string{" a", "b ", "", "A"}))

	got := util.NormalizeTags(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeTagsKeepsFirstSeenOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"zebra", "apple", "mango"},
		util.NormalizeTags([]string{"zebra", "Apple", "mango", "ZEBRA"}),
	)
}
