package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// OutputLocations is stored as a JSON array. Entries are bucket-relative
// object names, or full URIs for objects outside the configured bucket.
type OutputLocations []string

func (o OutputLocations) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *OutputLocations) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*o = OutputLocations{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported output_locations type %T", src)
	}
	if len(raw) == 0 {
		*o = OutputLocations{}
		return nil
	}
	var locations []string
	if err := json.Unmarshal(raw, &locations); err != nil {
		return fmt.Errorf("failed to decode output_locations: %w", err)
	}
	if locations == nil {
		locations = []string{}
	}
	*o = locations
	return nil
}

type VideoJob struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Prompt             string          `json:"prompt" db:"prompt"`
	InputImageLocation *string         `json:"input_image_location" db:"input_image_location"`
	OperationHandle    *string         `json:"operation_handle" db:"operation_handle"`
	Status             JobStatus       `json:"status" db:"status"`
	OutputLocations    OutputLocations `json:"output_locations" db:"output_locations"`
	ErrorDetail        *string         `json:"error_detail" db:"error_detail"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// Clone returns a deep copy so callers can mutate without touching a shared record.
func (j *VideoJob) Clone() *VideoJob {
	c := *j
	c.InputImageLocation = cloneString(j.InputImageLocation)
	c.OperationHandle = cloneString(j.OperationHandle)
	c.ErrorDetail = cloneString(j.ErrorDetail)
	if j.OutputLocations != nil {
		c.OutputLocations = append(OutputLocations{}, j.OutputLocations...)
	}
	return &c
}

func (j *VideoJob) MarkProcessing(operationHandle string) {
	j.OperationHandle = &operationHandle
	j.Status = JobStatusProcessing
	j.ErrorDetail = nil
	j.OutputLocations = OutputLocations{}
}

func (j *VideoJob) MarkFailed(detail string) {
	j.Status = JobStatusFailed
	j.ErrorDetail = &detail
	j.OutputLocations = OutputLocations{}
}

func (j *VideoJob) MarkCompleted(outputs []string) {
	j.Status = JobStatusCompleted
	j.ErrorDetail = nil
	j.OutputLocations = append(OutputLocations{}, outputs...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// GenerationParams are passed through to the generation backend unchanged.
type GenerationParams struct {
	AspectRatio           string `json:"aspect_ratio" form:"aspect_ratio" validate:"omitempty,oneof=16:9 9:16 1:1 4:3 3:4"`
	SampleCount           int    `json:"sample_count" form:"sample_count" validate:"omitempty,min=1,max=4"`
	DurationSeconds       int    `json:"duration_seconds" form:"duration_seconds" validate:"omitempty,min=2,max=16"`
	PersonGeneration      string `json:"person_generation" form:"person_generation" validate:"omitempty,oneof=allow_adult allow_all dont_allow"`
	EnablePromptRewriting *bool  `json:"enable_prompt_rewriting" form:"enable_prompt_rewriting"`
	AddWatermark          *bool  `json:"add_watermark" form:"add_watermark"`
	Seed                  *int64 `json:"seed" form:"seed" validate:"omitempty,min=0,max=4294967295"`
}

type InputImage struct {
	Filename string
	Data     []byte
}

type SubmitVideoJobInput struct {
	Prompt         string
	InputImage     *InputImage
	InputMediaPath string
	Params         GenerationParams
}

// VideoGenerationRequest is what the orchestrator hands to the generation backend.
type VideoGenerationRequest struct {
	Prompt             string
	InputImageLocation string
	InputImageMimeType string
	OutputPrefix       string
	Params             GenerationParams
}

// OperationError is a failure reported by the backend for a finished
// operation. It matches ErrRemoteOperation under errors.Is.
type OperationError struct {
	Code    int64
	Message string
}

func (e *OperationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (code %d)", ErrRemoteOperation, e.Code)
	}
	return fmt.Sprintf("%v (code %d): %s", ErrRemoteOperation, e.Code, e.Message)
}

func (e *OperationError) Unwrap() error {
	return ErrRemoteOperation
}

type OperationStatus struct {
	Done    bool
	Error   *OperationError
	Outputs []string
}

type VideoJobStatus struct {
	JobID                uuid.UUID `json:"job_id"`
	Status               JobStatus `json:"status"`
	OutputLocations      []string  `json:"output_locations"`
	VideoURLs            []string  `json:"video_urls"`
	ErrorDetail          *string   `json:"error_detail"`
	OperationHandle      *string   `json:"operation_handle"`
	ExpectedOutputPrefix *string   `json:"expected_output_prefix,omitempty"`
}

type UploadInput struct {
	File        io.Reader
	Key         string
	BucketName  string
	ContentType string
	Size        int64
}
