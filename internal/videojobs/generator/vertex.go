package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/option"
)

const operationsSegment = "/operations/"

type veoImage struct {
	GcsURI   string `json:"gcsUri"`
	MimeType string `json:"mimeType,omitempty"`
}

type veoInstance struct {
	Prompt string    `json:"prompt"`
	Image  *veoImage `json:"image,omitempty"`
}

type veoParameters struct {
	StorageURI       string `json:"storageUri"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	SampleCount      int    `json:"sampleCount,omitempty"`
	DurationSeconds  int    `json:"durationSeconds,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	EnhancePrompt    *bool  `json:"enhancePrompt,omitempty"`
	AddWatermark     *bool  `json:"addWatermark,omitempty"`
	Seed             *int64 `json:"seed,omitempty"`
}

// veoResponse covers both result shapes the backend has used.
type veoResponse struct {
	Videos []struct {
		GcsURI   string `json:"gcsUri"`
		MimeType string `json:"mimeType"`
	} `json:"videos"`
	GeneratedSamples []struct {
		Video struct {
			URI string `json:"uri"`
		} `json:"video"`
	} `json:"generatedSamples"`
	RaiMediaFilteredCount int `json:"raiMediaFilteredCount"`
}

type vertexGenerator struct {
	models        *aiplatform.ProjectsLocationsPublishersModelsService
	modelEndpoint string
}

// NewVertexGenerator builds a Veo client on the Vertex AI REST API. Extra
// options are applied after the ones derived from config.
func NewVertexGenerator(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (videojobs.Generator, error) {
	if cfg.Vertex.ProjectID == "" || cfg.Vertex.Location == "" || cfg.Vertex.VideoModel == "" {
		return nil, fmt.Errorf("vertex project, location and video model must be configured")
	}
	endpoint := cfg.Vertex.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s-aiplatform.googleapis.com/", cfg.Vertex.Location)
	}
	clientOpts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if cfg.Vertex.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.Vertex.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := aiplatform.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return &vertexGenerator{
		models: aiplatform.NewProjectsLocationsPublishersModelsService(service),
		modelEndpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			cfg.Vertex.ProjectID,
			cfg.Vertex.Location,
			cfg.Vertex.VideoModel,
		),
	}, nil
}

func (g *vertexGenerator) StartVideoGeneration(ctx context.Context, req *models.VideoGenerationRequest) (string, error) {
	instance := veoInstance{Prompt: req.Prompt}
	if req.InputImageLocation != "" {
		mimeType := req.InputImageMimeType
		if mimeType == "" {
			mimeType = "image/png"
		}
		instance.Image = &veoImage{GcsURI: req.InputImageLocation, MimeType: mimeType}
	}
	params := veoParameters{
		StorageURI:       req.OutputPrefix,
		AspectRatio:      req.Params.AspectRatio,
		SampleCount:      req.Params.SampleCount,
		DurationSeconds:  req.Params.DurationSeconds,
		PersonGeneration: req.Params.PersonGeneration,
		EnhancePrompt:    req.Params.EnablePromptRewriting,
		AddWatermark:     req.Params.AddWatermark,
		Seed:             req.Params.Seed,
	}

	op, err := g.models.PredictLongRunning(g.modelEndpoint, &aiplatform.GoogleCloudAiplatformV1PredictLongRunningRequest{
		Instances:  []interface{}{instance},
		Parameters: params,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("predictLongRunning: %w", err)
	}
	if op == nil || op.Name == "" {
		return "", fmt.Errorf("predictLongRunning response did not include an operation name")
	}
	return op.Name, nil
}

func (g *vertexGenerator) PollOperation(ctx context.Context, operationHandle string) (*models.OperationStatus, error) {
	op, err := g.models.FetchPredictOperation(g.endpointForOperation(operationHandle), &aiplatform.GoogleCloudAiplatformV1FetchPredictOperationRequest{
		OperationName: operationHandle,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetchPredictOperation: %w", err)
	}
	status := &models.OperationStatus{Done: op.Done}
	if !op.Done {
		return status, nil
	}
	if op.Error != nil {
		status.Error = &models.OperationError{Code: op.Error.Code, Message: op.Error.Message}
		return status, nil
	}
	outputs, err := parseOutputs(op.Response)
	if err != nil {
		return nil, err
	}
	status.Outputs = outputs
	return status, nil
}

// endpointForOperation recovers the model resource from the operation name
// so operations started under a previous model config stay pollable.
func (g *vertexGenerator) endpointForOperation(operationHandle string) string {
	if idx := strings.Index(operationHandle, operationsSegment); idx > 0 {
		return operationHandle[:idx]
	}
	return g.modelEndpoint
}

func parseOutputs(raw []byte) ([]string, error) {
	outputs := []string{}
	if len(raw) == 0 {
		return outputs, nil
	}
	var resp veoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode operation response: %w", err)
	}
	for _, v := range resp.Videos {
		if v.GcsURI != "" {
			outputs = append(outputs, v.GcsURI)
		}
	}
	for _, s := range resp.GeneratedSamples {
		if s.Video.URI != "" {
			outputs = append(outputs, s.Video.URI)
		}
	}
	return outputs, nil
}
