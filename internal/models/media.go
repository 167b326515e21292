package models

import (
	"io"
	"time"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type BlobInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type BlobObject struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

type MediaFile struct {
	Path      string    `json:"gcs_path"`
	Name      string    `json:"name"`
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated"`
}

type MediaFilter struct {
	MediaType    MediaType `query:"media_type" validate:"omitempty,oneof=image video"`
	NameContains string    `query:"name" validate:"omitempty,lte=255"`
}

type MediaList struct {
	MediaFiles []*MediaFile `json:"media_files"`
	TotalCount int          `json:"total_count"`
	TotalPages int          `json:"total_pages"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
}
