package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxNamePartLen  = 50
	fallbackNameTag = "unnamed_media"
)

// GenerateObjectName builds <prefix><name>_<timestamp>_<id8>.<ext>. The name
// comes from the original filename stem, else from the prompt.
func GenerateObjectName(prefix, originalFilename, promptText, extension string, now time.Time) string {
	namePart := ""
	if originalFilename != "" {
		stem := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))
		namePart = slug.Make(stem)
	} else if promptText != "" {
		namePart = slug.Make(promptText)
	}
	if len(namePart) > maxNamePartLen {
		namePart = strings.Trim(namePart[:maxNamePartLen], "-")
	}
	if namePart == "" {
		namePart = fallbackNameTag
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		extension = "png"
	}
	return fmt.Sprintf("%s%s_%s_%s.%s",
		prefix,
		namePart,
		now.Format("20060102_150405"),
		uuid.New().String()[:8],
		extension,
	)
}
