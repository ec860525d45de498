package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spcloud/urlship/internal/domain"
	"github.com/spcloud/urlship/internal/ports"
)

// Outcome messages reported to callers.
const (
	MsgPublished = "Successfully generated and published presigned URLs."
	MsgNoObjects = "No objects found to process for the given userSub and loadoutId."
	MsgNoFiles   = "No files found for presigned URLs."
)

// Validation causes; both are wrapped in a StageError of kind domain.ErrValidation.
var (
	ErrMissingUser    = errors.New("query parameter 'userSub' (or 'userId') is required")
	ErrMissingLoadout = errors.New("query parameter 'loadoutId' is required")
)

// PipelineConfig contains the fixed settings of the publishing pipeline.
type PipelineConfig struct {
	// KeyRoot is the storage prefix root; objects live under {KeyRoot}/{user}/{loadout}/.
	KeyRoot string

	// TopicPrefix is prepended to the device id to form the publish topic.
	TopicPrefix string

	// Budget bounds the encoded size of every published batch.
	Budget domain.PayloadBudget
}

// Request identifies what to publish.
type Request struct {
	// RunID correlates log lines; a random id is used when empty.
	RunID string

	UserID    string
	LoadoutID string
}

// Pipeline resolves the target device, signs every object of a loadout and
// publishes the URLs in budget-bounded batches, strictly in order.
//
// A Pipeline holds only long-lived client handles and is safe for concurrent
// runs; each Run owns its own transient state.
type Pipeline struct {
	config    PipelineConfig
	resolver  ports.DeviceResolver
	lister    ports.ObjectLister
	signer    ports.URLSigner
	publisher ports.BatchPublisher
	logger    ports.Logger
}

// NewPipeline creates a new pipeline with the given dependencies.
func NewPipeline(
	config PipelineConfig,
	resolver ports.DeviceResolver,
	lister ports.ObjectLister,
	signer ports.URLSigner,
	publisher ports.BatchPublisher,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		config:    config,
		resolver:  resolver,
		lister:    lister,
		signer:    signer,
		publisher: publisher,
		logger:    logger,
	}
}

// Run executes one pipeline invocation.
//
// Stages run in order: resolve, enumerate, sign_and_pack, publish_sequence,
// summarize. The first failing stage ends the run with a *domain.StageError.
// On a publish failure the returned outcome still holds the counts reached
// before the failing batch; batches already delivered are not rolled back.
func (p *Pipeline) Run(ctx context.Context, req Request) (domain.PublishOutcome, error) {
	var out domain.PublishOutcome

	if req.UserID == "" {
		return out, domain.NewStageError(domain.StageValidate, domain.ErrValidation, ErrMissingUser)
	}
	if req.LoadoutID == "" {
		return out, domain.NewStageError(domain.StageValidate, domain.ErrValidation, ErrMissingLoadout)
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := p.logger.With(
		ports.String("run_id", runID),
		ports.String("user_id", req.UserID),
		ports.String("loadout_id", req.LoadoutID),
	)
	log.Debug("pipeline started", ports.Int("payload_budget", int(p.config.Budget)))

	// Resolve before touching storage so a bad link wastes no listing or signing.
	deviceID, err := p.resolver.ResolveDevice(ctx, req.UserID)
	if err != nil {
		log.Error("device resolution failed", ports.Err(err))
		return out, domain.NewStageError(domain.StageResolve, domain.ErrResolution, err)
	}
	out.Topic = domain.DeviceTopic(p.config.TopicPrefix, deviceID)
	out.Prefix = domain.ScopePrefix(p.config.KeyRoot, req.UserID, req.LoadoutID)
	log.Info("resolved device", ports.String("device_id", deviceID), ports.String("topic", out.Topic))

	listed, err := p.lister.List(ctx, out.Prefix)
	if err != nil {
		log.Error("list objects failed", ports.String("prefix", out.Prefix), ports.Err(err))
		return out, domain.NewStageError(domain.StageEnumerate, domain.ErrStorage, err)
	}
	out.TotalEnumerated = len(listed.Keys)
	log.Info("enumerated objects",
		ports.String("prefix", out.Prefix),
		ports.Int("objects", len(listed.Keys)),
		ports.Int("placeholders", listed.Placeholders),
	)

	if listed.Empty() {
		out.Message = MsgNoObjects
		return out, nil
	}
	if len(listed.Keys) == 0 {
		out.Message = MsgNoFiles
		return out, nil
	}

	packed, err := p.signAndPack(ctx, log, listed.Keys, &out)
	if err != nil {
		return out, err
	}
	if err := p.publishSequence(ctx, log, packed.Batches, &out); err != nil {
		return out, err
	}

	out.Message = MsgPublished
	log.Info("pipeline finished",
		ports.String("stage", domain.StageSummarize.String()),
		ports.Int("signed", out.TotalSigned),
		ports.Int("published", out.TotalPublished),
		ports.Int("batches", out.BatchesPublished),
		ports.Int("dropped", out.Dropped),
	)
	return out, nil
}

// signAndPack signs keys one at a time and packs the entries. The first
// signing failure aborts the run.
func (p *Pipeline) signAndPack(ctx context.Context, log ports.Logger, keys []domain.ResourceKey, out *domain.PublishOutcome) (PackResult, error) {
	entries := make([]domain.SignedURLEntry, 0, len(keys))
	for _, key := range keys {
		entry, err := p.signer.Sign(ctx, key)
		if err != nil {
			log.Error("sign url failed", ports.String("key", key), ports.Err(err))
			return PackResult{}, domain.NewStageError(domain.StageSignAndPack, domain.ErrStorage, err)
		}
		entries = append(entries, entry)
	}
	out.TotalSigned = len(entries)

	packed, err := Pack(p.config.Budget, entries)
	if err != nil {
		return PackResult{}, domain.NewStageError(domain.StageSignAndPack, domain.ErrStorage, err)
	}
	for _, d := range packed.Dropped {
		log.Warn("entry exceeds payload budget, skipping",
			ports.String("key", d.Entry.Key),
			ports.Int("bytes", d.EncodedBytes),
			ports.Int("budget", int(p.config.Budget)),
		)
	}
	out.Dropped = len(packed.Dropped)
	return packed, nil
}

// publishSequence publishes batches strictly in order. A failed batch stops
// the sequence so the device never sees a gap it cannot detect.
func (p *Pipeline) publishSequence(ctx context.Context, log ports.Logger, batches []*domain.Batch, out *domain.PublishOutcome) error {
	for i, b := range batches {
		start := time.Now()
		if err := p.publisher.Publish(ctx, out.Topic, b); err != nil {
			log.Error("publish failed",
				ports.Err(err),
				ports.Int("batch", i+1),
				ports.Int("of", len(batches)),
				ports.Int("entries", b.Size()),
				ports.Int("bytes", b.EncodedBytes),
			)
			return domain.NewStageError(domain.StagePublishSequence, domain.ErrPublish, err)
		}

		out.TotalPublished += b.Size()
		out.BatchesPublished++
		log.Info("published batch",
			ports.Int("batch", i+1),
			ports.Int("of", len(batches)),
			ports.Int("entries", b.Size()),
			ports.Int("bytes", b.EncodedBytes),
			ports.Duration("duration", time.Since(start)),
		)
	}
	return nil
}
