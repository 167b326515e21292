package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/google/uuid"
)

// Locator converts between bucket-relative object names, fully qualified
// storage URIs (gs://bucket/key) and local proxy URLs.
type Locator struct {
	scheme             string
	bucket             string
	objectPrefix       string
	tempInputsPrefix   string
	videoOutputsPrefix string
	proxyPath          string
}

func NewLocator(cfg *config.Config) *Locator {
	scheme := cfg.Storage.URIScheme
	if scheme == "" {
		scheme = "gs"
	}
	return &Locator{
		scheme:             scheme,
		bucket:             cfg.Storage.Bucket,
		objectPrefix:       withSlash(cfg.Storage.ObjectPrefix),
		tempInputsPrefix:   withSlash(cfg.Storage.TempInputsPrefix),
		videoOutputsPrefix: withSlash(cfg.Storage.VideoOutputsPrefix),
		proxyPath:          withSlash(cfg.Storage.ProxyPath),
	}
}

func (l *Locator) Bucket() string {
	return l.bucket
}

func (l *Locator) ObjectPrefix() string {
	return l.objectPrefix
}

func (l *Locator) TempInputsPrefix() string {
	return l.tempInputsPrefix
}

func (l *Locator) bucketRoot() string {
	return fmt.Sprintf("%s://%s/", l.scheme, l.bucket)
}

// URI returns the fully qualified location of an object in the configured bucket.
func (l *Locator) URI(objectName string) string {
	return l.bucketRoot() + strings.TrimPrefix(objectName, "/")
}

// OutputPrefix is where the backend writes a job's outputs. It is unique per job id.
func (l *Locator) OutputPrefix(jobID uuid.UUID) string {
	return l.URI(l.videoOutputsPrefix + jobID.String() + "/")
}

// Normalize reduces a location inside the configured bucket to its object
// name. Locations elsewhere are returned unchanged with inBucket=false.
func (l *Locator) Normalize(location string) (normalized string, inBucket bool) {
	root := l.bucketRoot()
	if strings.HasPrefix(location, root) {
		return location[len(root):], true
	}
	return location, false
}

// ProxyURL returns the local serving URL for a stored output location.
// Locations in another bucket cannot be proxied.
func (l *Locator) ProxyURL(location string) (string, bool) {
	if strings.Contains(location, "://") {
		return "", false
	}
	escaped := (&url.URL{Path: strings.TrimPrefix(location, "/")}).EscapedPath()
	return l.proxyPath + escaped, true
}

// ResolveMediaPath maps a caller-supplied media path to an object name.
// Paths already under a known prefix are kept, anything else is placed
// under the object prefix.
func (l *Locator) ResolveMediaPath(mediaPath string) (string, error) {
	p := strings.TrimSpace(mediaPath)
	if rest, ok := l.Normalize(p); ok {
		p = rest
	}
	p = strings.TrimLeft(p, "/")
	if p == "" || strings.Contains(p, "://") {
		return "", fmt.Errorf("invalid media path %q", mediaPath)
	}
	if !IsSafeObjectName(p) {
		return "", fmt.Errorf("invalid media path %q", mediaPath)
	}
	for _, prefix := range []string{l.objectPrefix, l.tempInputsPrefix, l.videoOutputsPrefix} {
		if prefix != "" && strings.HasPrefix(p, prefix) {
			return p, nil
		}
	}
	return l.objectPrefix + p, nil
}

// IsSafeObjectName rejects empty names and names with dot segments.
func IsSafeObjectName(name string) bool {
	if name == "" || strings.HasSuffix(name, "/") {
		return false
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "." || segment == ".." {
			return false
		}
	}
	return path.Clean("/"+name) == "/"+name
}

func withSlash(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}
