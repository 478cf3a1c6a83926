package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockFromPreset(t *testing.T) {
	block, ok := NewBlock(BlockTitle)
	require.True(t, ok)
	assert.NotEmpty(t, block.ID)
	assert.Equal(t, BlockTitle, block.Type)
	assert.Equal(t, 320, block.Frame.W)
	assert.Equal(t, 60, block.Frame.H)
	assert.Equal(t, "Title", block.Props.Text)
}

func TestNewBlockUnknownType(t *testing.T) {
	_, ok := NewBlock(BlockType("carousel"))
	assert.False(t, ok)
}

func TestNewBlockCopiesOptions(t *testing.T) {
	a, ok := NewBlock(BlockOptions4)
	require.True(t, ok)
	b, ok := NewBlock(BlockOptions4)
	require.True(t, ok)

	a.Props.Options[0] = "changed"
	assert.Equal(t, "Option 1", b.Props.Options[0])
}

func TestNewBlockUniqueIDs(t *testing.T) {
	a, _ := NewBlock(BlockImage)
	b, _ := NewBlock(BlockImage)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestEveryBlockTypeHasPreset(t *testing.T) {
	for _, bt := range AllBlockTypes() {
		block, ok := NewBlock(bt)
		require.True(t, ok, "no preset for %s", bt)
		assert.GreaterOrEqual(t, block.Frame.W, MinBlockWidth)
		assert.GreaterOrEqual(t, block.Frame.H, MinBlockHeight)
	}
}

func TestBindableProps(t *testing.T) {
	cases := []struct {
		bt   BlockType
		prop string
	}{
		{BlockTitle, "text"},
		{BlockImage, "src"},
		{BlockAudio, "src"},
		{BlockOptions4, "options"},
		{BlockOptions5, "options"},
		{BlockRadioButtons, "options"},
		{BlockCheckbox, "options"},
		{BlockTimer, "duration"},
		{BlockWorkingTimer, "duration"},
		{BlockSubmit, "label"},
		{BlockDiscard, "label"},
		{BlockText, "content"},
		{BlockQuestions, "question"},
		{BlockComments, "placeholder"},
	}
	for _, c := range cases {
		assert.True(t, IsBindableProp(c.bt, c.prop), "%s should bind %s", c.bt, c.prop)
	}

	assert.False(t, IsBindableProp(BlockTitle, "src"))
	assert.False(t, IsBindableProp(BlockImage, "text"))
}

func TestInteractiveBlocks(t *testing.T) {
	for _, bt := range []BlockType{BlockOptions4, BlockOptions5, BlockRadioButtons, BlockCheckbox, BlockComments, BlockQuestions} {
		assert.True(t, IsInteractiveBlock(bt), "%s should be interactive", bt)
	}
	for _, bt := range []BlockType{BlockTitle, BlockImage, BlockAudio, BlockTimer, BlockSubmit, BlockDiscard, BlockText, BlockWorkingTimer} {
		assert.False(t, IsInteractiveBlock(bt), "%s should not be interactive", bt)
	}
}
