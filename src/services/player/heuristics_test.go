package player

import (
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageURLPrefersRule(t *testing.T) {
	image, ok := models.NewBlock(models.BlockImage)
	require.True(t, ok)
	template := &models.Template{
		Layout: []models.Block{*image},
		Rules: []models.Rule{{
			ComponentKey: image.ID,
			TargetProp:   "src",
			SourceKind:   models.SourceExcelColumn,
			SourcePath:   "photo",
		}},
	}
	task := &models.TemplateTask{Payload: map[string]interface{}{
		"photo":     "https://cdn.example.com/bound.png",
		"image_url": "https://cdn.example.com/sniffed.png",
	}}

	assert.Equal(t, "https://cdn.example.com/bound.png", ExtractImageURL(template, task))
}

func TestExtractImageURLKeyPriority(t *testing.T) {
	task := &models.TemplateTask{Payload: map[string]interface{}{
		"url":       "https://cdn.example.com/low.png",
		"image_url": "https://cdn.example.com/high.png",
	}}

	assert.Equal(t, "https://cdn.example.com/high.png", ExtractImageURL(nil, task))
}

func TestExtractImageURLFallsBackToAnyImageLookingValue(t *testing.T) {
	task := &models.TemplateTask{Payload: map[string]interface{}{
		"note":       "not a url",
		"attachment": "https://files.example.com/scan.jpeg?sig=abc",
	}}

	assert.Equal(t, "https://files.example.com/scan.jpeg?sig=abc", ExtractImageURL(nil, task))
}

func TestExtractImageURLNothingUsable(t *testing.T) {
	task := &models.TemplateTask{Payload: map[string]interface{}{
		"doc": "https://files.example.com/report.pdf",
		"txt": "hello",
	}}

	assert.Equal(t, "", ExtractImageURL(nil, task))
	assert.Equal(t, "", ExtractImageURL(nil, nil))
}

func TestLooksLikeImageURL(t *testing.T) {
	assert.True(t, looksLikeImageURL("https://x.com/a.PNG"))
	assert.True(t, looksLikeImageURL("http://x.com/a.webp#frag"))
	assert.False(t, looksLikeImageURL("ftp://x.com/a.png"))
	assert.False(t, looksLikeImageURL("https://x.com/a.mp4"))
	assert.False(t, looksLikeImageURL("a.png"))
}
