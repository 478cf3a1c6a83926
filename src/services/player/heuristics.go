package player

import (
	"strings"

	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"
)

// imageKeyPriority is the payload key sniffing order used when no template
// rule binds the image source.
var imageKeyPriority = []string{"image_url", "s3_url", "image", "img_url", "file_url", "url"}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"}

// ExtractImageURL is the single tiered image-source policy:
//  1. a rule bound to an image block's src, resolved against the task
//  2. well-known payload keys in priority order
//  3. any payload value that looks like an http(s) image URL
//
// Empty string means no usable image was found; callers render a placeholder.
func ExtractImageURL(template *models.Template, task *models.TemplateTask) string {
	if task == nil {
		return ""
	}
	record := task.Record()

	if template != nil {
		for _, block := range template.Layout {
			if block.Type != models.BlockImage {
				continue
			}
			v := templates.Resolve(template.Rules, block.ID, "src", block.Props.Src, record)
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}

	for _, key := range imageKeyPriority {
		if v, ok := task.Payload[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}

	for _, v := range task.Payload {
		s, ok := v.(string)
		if !ok || !looksLikeImageURL(s) {
			continue
		}
		return s
	}
	return ""
}

func looksLikeImageURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	lower := strings.ToLower(s)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
