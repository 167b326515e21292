package media

import (
	"path"
	"strings"

	"github.com/amankumarsingh77/media-studio/internal/models"
)

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
}

// ClassifyObject reports the media type of an object from its extension.
func ClassifyObject(objectName string) (models.MediaType, bool) {
	ext := strings.ToLower(path.Ext(objectName))
	if _, ok := imageContentTypes[ext]; ok {
		return models.MediaTypeImage, true
	}
	if _, ok := videoContentTypes[ext]; ok {
		return models.MediaTypeVideo, true
	}
	return "", false
}

// IsInputImageType reports whether a sniffed content type is a raster image
// the generation backend accepts as input.
func IsInputImageType(contentType string) bool {
	for _, ct := range imageContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// ContentTypeFor returns the content type implied by the extension, or "".
func ContentTypeFor(objectName string) string {
	ext := strings.ToLower(path.Ext(objectName))
	if ct, ok := imageContentTypes[ext]; ok {
		return ct
	}
	return videoContentTypes[ext]
}
