package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultRefreshLockTTL    = 30 * time.Second
	refreshLockReleaseWait   = 2 * time.Second
	unknownGenerationFailure = "Unknown video generation error"
)

type videoJobUC struct {
	cfg       *config.Config
	jobRepo   videojobs.Repository
	redisRepo videojobs.RedisRepository
	generator videojobs.Generator
	awsRepo   media.AWSRepository
	locator   *media.Locator
	logger    logger.Logger
	now       func() time.Time
}

func NewVideoJobUseCase(
	cfg *config.Config,
	jobRepo videojobs.Repository,
	redisRepo videojobs.RedisRepository,
	generator videojobs.Generator,
	awsRepo media.AWSRepository,
	log logger.Logger,
) videojobs.UseCase {
	return &videoJobUC{
		cfg:       cfg,
		jobRepo:   jobRepo,
		redisRepo: redisRepo,
		generator: generator,
		awsRepo:   awsRepo,
		locator:   media.NewLocator(cfg),
		logger:    log,
		now:       time.Now,
	}
}

func (v *videoJobUC) SubmitVideoJob(ctx context.Context, input *models.SubmitVideoJobInput) (*models.VideoJob, error) {
	if err := v.validateSubmitInput(ctx, input); err != nil {
		v.logger.Errorf("SubmitVideoJob - validateSubmitInput error: %v", err)
		return nil, err
	}
	prompt := strings.TrimSpace(input.Prompt)

	var (
		inputLocation *string
		inputMimeType string
	)
	switch {
	case input.InputImage != nil:
		location, mimeType, err := v.uploadInputImage(ctx, prompt, input.InputImage)
		if err != nil {
			if errors.Is(err, models.ErrValidation) {
				return nil, err
			}
			v.logger.Errorf("SubmitVideoJob - uploadInputImage error: %v", err)
			return v.failNewJob(ctx, prompt, fmt.Sprintf("Error uploading input image: %v", err), err)
		}
		inputLocation, inputMimeType = &location, mimeType
	case strings.TrimSpace(input.InputMediaPath) != "":
		location, err := v.resolveInputMedia(ctx, input.InputMediaPath)
		if err != nil {
			v.logger.Errorf("SubmitVideoJob - resolveInputMedia error: %v", err)
			return nil, err
		}
		inputLocation, inputMimeType = &location, media.ContentTypeFor(location)
	}

	job, err := v.jobRepo.CreateJob(ctx, prompt, inputLocation)
	if err != nil {
		v.logger.Errorf("SubmitVideoJob - CreateJob error: %v", err)
		return nil, errors.Wrap(err, "videoJobUC.SubmitVideoJob.CreateJob")
	}

	req := &models.VideoGenerationRequest{
		Prompt:             prompt,
		InputImageMimeType: inputMimeType,
		OutputPrefix:       v.locator.OutputPrefix(job.ID),
		Params:             input.Params,
	}
	if inputLocation != nil {
		req.InputImageLocation = *inputLocation
	}

	backendCtx, cancel := v.backendContext(ctx)
	handle, err := v.generator.StartVideoGeneration(backendCtx, req)
	cancel()
	if err == nil && strings.TrimSpace(handle) == "" {
		err = fmt.Errorf("backend response did not include an operation handle")
	}
	if err != nil {
		v.logger.Errorf("SubmitVideoJob - StartVideoGeneration error: %v", err)
		job.MarkFailed(fmt.Sprintf("Error initiating video generation: %v", err))
		return v.persistFailure(ctx, job, errors.Wrapf(models.ErrSubmission, "job %s: %v", job.ID, err))
	}

	job.MarkProcessing(handle)
	updated, err := v.jobRepo.UpdateJob(ctx, job)
	if err != nil {
		v.logger.Errorf("SubmitVideoJob - UpdateJob error: %v", err)
		return job, errors.Wrap(err, "videoJobUC.SubmitVideoJob.UpdateJob")
	}
	v.logger.Infof("Video job %s submitted, operation %s", updated.ID, handle)
	return updated, nil
}

func (v *videoJobUC) RefreshVideoJob(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error) {
	job, err := v.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		v.logger.Errorf("RefreshVideoJob - GetJobByID error: %v", err)
		return nil, errors.Wrap(err, "videoJobUC.RefreshVideoJob.GetJobByID")
	}
	if job.Status.IsTerminal() || job.OperationHandle == nil {
		return job, nil
	}

	if v.redisRepo != nil {
		token, acquired, err := v.redisRepo.AcquireRefreshLock(ctx, jobID, v.refreshLockTTL())
		switch {
		case err != nil:
			v.logger.Warnf("RefreshVideoJob - AcquireRefreshLock error, continuing without lock: %v", err)
		case !acquired:
			v.logger.Debugf("Refresh for job %s already in progress", jobID)
			return job, nil
		default:
			defer v.releaseRefreshLock(ctx, jobID, token)
		}
	}

	backendCtx, cancel := v.backendContext(ctx)
	status, err := v.generator.PollOperation(backendCtx, *job.OperationHandle)
	cancel()
	if err == nil && status == nil {
		err = fmt.Errorf("backend returned no operation status")
	}
	if err != nil {
		v.logger.Errorf("RefreshVideoJob - PollOperation error: %v", err)
		return nil, errors.Wrapf(models.ErrTransientPoll, "job %s: %v", jobID, err)
	}
	if !status.Done {
		return job, nil
	}

	if status.Error != nil {
		detail := strings.TrimSpace(status.Error.Message)
		if detail == "" {
			detail = unknownGenerationFailure
		}
		v.logger.Warnf("RefreshVideoJob - job %s: %v", jobID, status.Error)
		job.MarkFailed(detail)
	} else {
		job.MarkCompleted(v.normalizeOutputs(jobID, status.Outputs))
	}
	return v.persistTerminal(ctx, job)
}

// releaseRefreshLock runs even when ctx is already cancelled.
func (v *videoJobUC) releaseRefreshLock(ctx context.Context, jobID uuid.UUID, token string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshLockReleaseWait)
	defer cancel()
	if err := v.redisRepo.ReleaseRefreshLock(releaseCtx, jobID, token); err != nil {
		v.logger.Warnf("RefreshVideoJob - ReleaseRefreshLock error: %v", err)
	}
}

func (v *videoJobUC) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.VideoJobStatus, error) {
	job, err := v.RefreshVideoJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return v.StatusView(job), nil
}

func (v *videoJobUC) StatusView(job *models.VideoJob) *models.VideoJobStatus {
	view := &models.VideoJobStatus{
		JobID:           job.ID,
		Status:          job.Status,
		OutputLocations: append([]string{}, job.OutputLocations...),
		VideoURLs:       []string{},
		ErrorDetail:     job.ErrorDetail,
		OperationHandle: job.OperationHandle,
	}
	for _, location := range job.OutputLocations {
		if url, ok := v.locator.ProxyURL(location); ok {
			view.VideoURLs = append(view.VideoURLs, url)
		}
	}
	if job.Status != models.JobStatusFailed {
		prefix := v.locator.OutputPrefix(job.ID)
		view.ExpectedOutputPrefix = &prefix
	}
	return view
}

func (v *videoJobUC) validateSubmitInput(ctx context.Context, input *models.SubmitVideoJobInput) error {
	if input == nil {
		return errors.Wrap(models.ErrValidation, "missing submit input")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return errors.Wrap(models.ErrValidation, "prompt is required")
	}
	if input.InputImage != nil && strings.TrimSpace(input.InputMediaPath) != "" {
		return errors.Wrap(models.ErrValidation, "conflicting image sources: provide an upload or a media path, not both")
	}
	if err := utils.ValidateStruct(ctx, &input.Params); err != nil {
		return errors.Wrapf(models.ErrValidation, "invalid generation parameters: %v", err)
	}
	// The backend treats an unset watermark flag as true.
	watermark := input.Params.AddWatermark == nil || *input.Params.AddWatermark
	if input.Params.Seed != nil && watermark {
		return errors.Wrap(models.ErrValidation, "seed cannot be used while add_watermark is enabled")
	}
	return nil
}

func (v *videoJobUC) uploadInputImage(ctx context.Context, prompt string, image *models.InputImage) (string, string, error) {
	if len(image.Data) == 0 {
		return "", "", errors.Wrap(models.ErrValidation, "input image is empty")
	}
	mt := mimetype.Detect(image.Data)
	if !media.IsInputImageType(mt.String()) {
		return "", "", errors.Wrapf(models.ErrValidation, "input image has unsupported content type %s", mt.String())
	}

	objectName := utils.GenerateObjectName(v.locator.TempInputsPrefix(), image.Filename, prompt, mt.Extension(), v.now())
	if err := v.awsRepo.PutObject(ctx, &models.UploadInput{
		File:        bytes.NewReader(image.Data),
		Key:         objectName,
		BucketName:  v.locator.Bucket(),
		ContentType: mt.String(),
		Size:        int64(len(image.Data)),
	}); err != nil {
		return "", "", err
	}
	v.logger.Infof("Uploaded input image to %s", objectName)
	return v.locator.URI(objectName), mt.String(), nil
}

func (v *videoJobUC) resolveInputMedia(ctx context.Context, mediaPath string) (string, error) {
	objectName, err := v.locator.ResolveMediaPath(mediaPath)
	if err != nil {
		return "", errors.Wrap(models.ErrValidation, err.Error())
	}
	if kind, ok := media.ClassifyObject(objectName); !ok || kind != models.MediaTypeImage {
		return "", errors.Wrapf(models.ErrValidation, "input media %s is not an image", objectName)
	}
	exists, err := v.awsRepo.ObjectExists(ctx, v.locator.Bucket(), objectName)
	if err != nil {
		return "", errors.Wrap(err, "videoJobUC.resolveInputMedia.ObjectExists")
	}
	if !exists {
		return "", errors.Wrapf(models.ErrValidation, "input media %s does not exist", objectName)
	}
	return v.locator.URI(objectName), nil
}

// failNewJob records a submission that failed before the backend was called.
func (v *videoJobUC) failNewJob(ctx context.Context, prompt, detail string, cause error) (*models.VideoJob, error) {
	job, err := v.jobRepo.CreateJob(ctx, prompt, nil)
	if err != nil {
		v.logger.Errorf("SubmitVideoJob - CreateJob error: %v", err)
		return nil, errors.Wrap(cause, "videoJobUC.SubmitVideoJob")
	}
	job.MarkFailed(detail)
	return v.persistFailure(ctx, job, errors.Wrap(cause, "videoJobUC.SubmitVideoJob"))
}

func (v *videoJobUC) persistFailure(ctx context.Context, job *models.VideoJob, cause error) (*models.VideoJob, error) {
	updated, err := v.jobRepo.UpdateJob(ctx, job)
	if err != nil {
		v.logger.Errorf("SubmitVideoJob - UpdateJob error: %v", err)
		return job, cause
	}
	return updated, cause
}

// persistTerminal writes a terminal transition. If another writer got there
// first the stored record wins.
func (v *videoJobUC) persistTerminal(ctx context.Context, job *models.VideoJob) (*models.VideoJob, error) {
	updated, err := v.jobRepo.UpdateJob(ctx, job)
	if err == nil {
		v.logger.Infof("Video job %s is now %s", updated.ID, updated.Status)
		return updated, nil
	}
	if !errors.Is(err, models.ErrJobTerminal) {
		v.logger.Errorf("RefreshVideoJob - UpdateJob error: %v", err)
		return nil, errors.Wrap(err, "videoJobUC.RefreshVideoJob.UpdateJob")
	}
	stored, err := v.jobRepo.GetJobByID(ctx, job.ID)
	if err != nil {
		v.logger.Errorf("RefreshVideoJob - GetJobByID error: %v", err)
		return nil, errors.Wrap(err, "videoJobUC.RefreshVideoJob.GetJobByID")
	}
	return stored, nil
}

func (v *videoJobUC) normalizeOutputs(jobID uuid.UUID, outputs []string) []string {
	normalized := make([]string, 0, len(outputs))
	for _, location := range outputs {
		n, inBucket := v.locator.Normalize(location)
		if !inBucket {
			v.logger.Warnf("Video job %s output %s is outside bucket %s and cannot be proxied", jobID, location, v.locator.Bucket())
		}
		normalized = append(normalized, n)
	}
	if len(normalized) == 0 {
		v.logger.Warnf("Video job %s completed without any output videos", jobID)
	}
	return normalized
}

func (v *videoJobUC) backendContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if v.cfg.Vertex.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, v.cfg.Vertex.RequestTimeout)
}

func (v *videoJobUC) refreshLockTTL() time.Duration {
	if v.cfg.Jobs.RefreshLockTTL <= 0 {
		return defaultRefreshLockTTL
	}
	return v.cfg.Jobs.RefreshLockTTL
}
