package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/amankumarsingh77/media-studio/pkg/httpErrors"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	defaultAspectRatio      = "16:9"
	defaultSampleCount      = 1
	defaultDurationSeconds  = 8
	defaultPersonGeneration = "allow_adult"
	defaultMaxUploadBytes   = 20 << 20
	inputImageField         = "input_image"
)

type submitVideoJobRequest struct {
	Prompt              string `json:"prompt" validate:"required"`
	InputImageMediaPath string `json:"input_image_media_path"`
	models.GenerationParams
}

type submitErrorResponse struct {
	httpErrors.RestErr
	JobID uuid.UUID              `json:"job_id"`
	Job   *models.VideoJobStatus `json:"job"`
}

type videoJobHandler struct {
	cfg        *config.Config
	videoJobUC videojobs.UseCase
	logger     logger.Logger
}

func NewVideoJobHandler(cfg *config.Config, videoJobUC videojobs.UseCase, log logger.Logger) videojobs.Handler {
	return &videoJobHandler{
		cfg:        cfg,
		videoJobUC: videoJobUC,
		logger:     log,
	}
}

func (h *videoJobHandler) SubmitVideoJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		req, image, err := h.readSubmitRequest(c)
		if err != nil {
			h.logger.Errorf("SubmitVideoJob - readSubmitRequest error: %v RequestID: %s", err, utils.GetRequestID(c))
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		req.applyDefaults()
		if err := utils.ValidateStruct(c.Request().Context(), req); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}

		job, err := h.videoJobUC.SubmitVideoJob(c.Request().Context(), &models.SubmitVideoJobInput{
			Prompt:         req.Prompt,
			InputImage:     image,
			InputMediaPath: req.InputImageMediaPath,
			Params:         req.GenerationParams,
		})
		if err != nil {
			if job == nil {
				return c.JSON(httpErrors.ErrorResponse(err))
			}
			restErr := httpErrors.ParseErrors(err)
			return c.JSON(restErr.Status(), submitErrorResponse{
				RestErr: restErr,
				JobID:   job.ID,
				Job:     h.videoJobUC.StatusView(job),
			})
		}
		return c.JSON(http.StatusAccepted, h.videoJobUC.StatusView(job))
	}
}

func (h *videoJobHandler) GetJobStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(errors.Wrap(models.ErrValidation, "invalid job id")))
		}
		status, err := h.videoJobUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, status)
	}
}

func (h *videoJobHandler) readSubmitRequest(c echo.Context) (*submitVideoJobRequest, *models.InputImage, error) {
	req := &submitVideoJobRequest{}
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) && !strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		if err := c.Bind(req); err != nil {
			return nil, nil, errors.Wrap(models.ErrValidation, "invalid request payload")
		}
		return req, nil, nil
	}

	if err := bindForm(c, req); err != nil {
		return nil, nil, err
	}
	image, err := h.readInputImage(c)
	if err != nil {
		return nil, nil, err
	}
	return req, image, nil
}

func (h *videoJobHandler) readInputImage(c echo.Context) (*models.InputImage, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	fileHeader, err := c.FormFile(inputImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.Wrapf(models.ErrValidation, "invalid %s: %v", inputImageField, err)
	}
	if fileHeader.Size == 0 {
		return nil, nil
	}
	maxBytes := h.cfg.Jobs.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	if fileHeader.Size > maxBytes {
		return nil, errors.Wrapf(models.ErrValidation, "input image exceeds %d bytes", maxBytes)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrapf(models.ErrValidation, "failed to open %s: %v", inputImageField, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(models.ErrValidation, "failed to read %s: %v", inputImageField, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, errors.Wrapf(models.ErrValidation, "input image exceeds %d bytes", maxBytes)
	}
	return &models.InputImage{Filename: fileHeader.Filename, Data: data}, nil
}

func bindForm(c echo.Context, req *submitVideoJobRequest) error {
	req.Prompt = c.FormValue("prompt")
	req.InputImageMediaPath = strings.TrimSpace(c.FormValue("input_image_media_path"))
	req.AspectRatio = c.FormValue("aspect_ratio")
	req.PersonGeneration = c.FormValue("person_generation")

	var err error
	if req.SampleCount, err = formInt(c, "sample_count"); err != nil {
		return err
	}
	if req.DurationSeconds, err = formInt(c, "duration_seconds"); err != nil {
		return err
	}
	if req.EnablePromptRewriting, err = formBool(c, "enable_prompt_rewriting"); err != nil {
		return err
	}
	if req.AddWatermark, err = formBool(c, "add_watermark"); err != nil {
		return err
	}
	if raw := strings.TrimSpace(c.FormValue("seed")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.Wrapf(models.ErrValidation, "invalid seed %q", raw)
		}
		req.Seed = &seed
	}
	return nil
}

func formInt(c echo.Context, field string) (int, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(models.ErrValidation, "invalid %s %q", field, raw)
	}
	return v, nil
}

// formBool treats HTML checkbox values ("on") as true.
func formBool(c echo.Context, field string) (*bool, error) {
	raw := strings.ToLower(strings.TrimSpace(c.FormValue(field)))
	if raw == "" {
		return nil, nil
	}
	if raw == "on" {
		v := true
		return &v, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.Wrapf(models.ErrValidation, "invalid %s %q", field, raw)
	}
	return &v, nil
}

func (r *submitVideoJobRequest) applyDefaults() {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.AspectRatio == "" {
		r.AspectRatio = defaultAspectRatio
	}
	if r.SampleCount == 0 {
		r.SampleCount = defaultSampleCount
	}
	if r.DurationSeconds == 0 {
		r.DurationSeconds = defaultDurationSeconds
	}
	if r.PersonGeneration == "" {
		r.PersonGeneration = defaultPersonGeneration
	}
	if r.EnablePromptRewriting == nil {
		v := true
		r.EnablePromptRewriting = &v
	}
	if r.AddWatermark == nil {
		v := true
		r.AddWatermark = &v
	}
}
