package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/spcloud/urlship/internal/app"
	"github.com/spcloud/urlship/internal/domain"
	"github.com/spcloud/urlship/internal/ports"
)

// Client-facing messages. Causes go to the error field and the log.
const (
	msgMissingUser     = "Query parameter 'userSub' (or 'userId') is required."
	msgMissingLoadout  = "Query parameter 'loadoutId' is required."
	msgDeviceLookup    = "Failed to retrieve device information."
	msgProcessingError = "Failed to process request."
)

// PipelineRunner runs the publishing pipeline once.
type PipelineRunner interface {
	Run(ctx context.Context, req app.Request) (domain.PublishOutcome, error)
}

// PublishHandler serves GET /presigned-urls.
type PublishHandler struct {
	runner PipelineRunner
	logger ports.Logger
}

// NewPublishHandler creates a handler around runner.
func NewPublishHandler(runner PipelineRunner, logger ports.Logger) *PublishHandler {
	return &PublishHandler{runner: runner, logger: logger}
}

type outcomeSummary struct {
	TotalItemsProcessed int    `json:"totalItemsProcessed"`
	TotalItemsPublished int    `json:"totalItemsPublished"`
	Topic               string `json:"topic"`
	S3PrefixQueried     string `json:"s3PrefixQueried"`
	BatchesPublished    int    `json:"batchesPublished"`
	ItemsDropped        int    `json:"itemsDropped"`
}

type publishBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	*outcomeSummary
}

// Handle validates the query, runs the pipeline and maps the result.
func (h *PublishHandler) Handle(ctx context.Context, req Request) Response {
	user := req.Param("userSub")
	if user == "" {
		user = req.Param("userId")
	}

	out, err := h.runner.Run(ctx, app.Request{
		RunID:     req.RequestID,
		UserID:    user,
		LoadoutID: req.Param("loadoutId"),
	})
	if err == nil {
		return jsonResponse(http.StatusOK, publishBody{Message: out.Message, outcomeSummary: summarize(out)})
	}

	status := domain.HTTPStatus(err)
	switch {
	case errors.Is(err, app.ErrMissingUser):
		return messageResponse(status, msgMissingUser)
	case errors.Is(err, app.ErrMissingLoadout):
		return messageResponse(status, msgMissingLoadout)
	case errors.Is(err, domain.ErrValidation):
		return messageResponse(status, err.Error())
	case errors.Is(err, domain.ErrResolution):
		return jsonResponse(status, publishBody{Message: msgDeviceLookup, Error: cause(err)})
	}

	h.logger.Error("request failed", ports.String("request_id", req.RequestID), ports.Err(err))
	body := publishBody{Message: msgProcessingError, Error: cause(err)}
	if out.Topic != "" {
		body.outcomeSummary = summarize(out)
	}
	return jsonResponse(status, body)
}

func summarize(out domain.PublishOutcome) *outcomeSummary {
	return &outcomeSummary{
		TotalItemsProcessed: out.TotalSigned,
		TotalItemsPublished: out.TotalPublished,
		Topic:               out.Topic,
		S3PrefixQueried:     out.Prefix,
		BatchesPublished:    out.BatchesPublished,
		ItemsDropped:        out.Dropped,
	}
}

// cause strips the stage and kind prefix from a StageError.
func cause(err error) string {
	var se *domain.StageError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
