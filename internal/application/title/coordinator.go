package title

import (
	"context"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// Stage is the step of a title operation
type Stage int

const (
	StageValidatingRelations Stage = iota
	StageUploadingAssets
	StagePersisting
	StageCommitted
)

func (s Stage) String() string {
	switch s {
	case StageValidatingRelations:
		return "validating_relations"
	case StageUploadingAssets:
		return "uploading_assets"
	case StagePersisting:
		return "persisting"
	case StageCommitted:
		return "committed"
	}
	return "unknown"
}

// Outcome is the result of one coordinated operation. Stage is the step that
// failed, or StageCommitted on success. Ledger holds every asset uploaded
// before the operation ended.
type Outcome struct {
	Stage  Stage
	Ledger Ledger
	Err    error
}

// Succeeded reports whether the operation committed
func (o Outcome) Succeeded() bool {
	return o.Stage == StageCommitted && o.Err == nil
}

// NeedsCompensation reports whether uploaded assets must be deleted.
// Relation failures happen before any upload.
func (o Outcome) NeedsCompensation() bool {
	if o.Err == nil || len(o.Ledger) == 0 {
		return false
	}
	return o.Stage == StageUploadingAssets || o.Stage == StagePersisting
}

// PersistFunc writes the title through repositories bound to ctx
type PersistFunc func(ctx context.Context, t *catalog.Title) error

// Operation describes one coordinated write of a title
type Operation struct {
	Title *catalog.Title
	// Relations to validate and apply; nil slices are left alone
	Relations Relations
	Media     MediaBundle
	Persist   PersistFunc
}

// Coordinator runs relation validation, uploads and the transactional write
// of a title, deleting this operation's uploads when a later step fails.
type Coordinator struct {
	relations *RelationValidator
	uploader  *AssetUploader
	store     ContentStore
	uow       UnitOfWork
	logger    interfaces.Logger
}

// NewCoordinator creates a coordinator
func NewCoordinator(
	relations *RelationValidator,
	uploader *AssetUploader,
	store ContentStore,
	uow UnitOfWork,
	logger interfaces.Logger,
) *Coordinator {
	return &Coordinator{
		relations: relations,
		uploader:  uploader,
		store:     store,
		uow:       uow,
		logger:    logger,
	}
}

// Run executes op. On failure the returned outcome carries the original error
// unchanged, after compensation has been attempted when required.
func (c *Coordinator) Run(ctx context.Context, op Operation) Outcome {
	outcome := c.execute(ctx, op)
	if outcome.NeedsCompensation() {
		c.compensate(ctx, op.Title, outcome)
	}
	return outcome
}

func (c *Coordinator) execute(ctx context.Context, op Operation) Outcome {
	if err := c.relations.Validate(ctx, op.Relations); err != nil {
		return Outcome{Stage: StageValidatingRelations, Err: err}
	}
	applyRelations(op.Title, op.Relations)

	ledger, err := c.uploader.Upload(ctx, op.Title, op.Media)
	if err != nil {
		return Outcome{Stage: StageUploadingAssets, Ledger: ledger, Err: err}
	}

	if err := c.persist(ctx, op); err != nil {
		return Outcome{Stage: StagePersisting, Ledger: ledger, Err: err}
	}

	return Outcome{Stage: StageCommitted, Ledger: ledger}
}

func (c *Coordinator) persist(ctx context.Context, op Operation) error {
	tx, err := c.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := op.Persist(tx.Context(), op.Title); err != nil {
		return err
	}
	return tx.Commit()
}

// compensate deletes the ledger. An upload written over the slot's committed
// object is kept since the stored title still references that path. Failures
// are logged and never replace the original error.
func (c *Coordinator) compensate(ctx context.Context, t *catalog.Title, outcome Outcome) {
	log := c.logger.WithContext(ctx).WithFields(
		interfaces.String("title_id", t.ID.String()),
		interfaces.String("failed_stage", outcome.Stage.String()),
	)
	for _, asset := range outcome.Ledger {
		if asset.Overwrote() {
			log.Warn("Uploaded asset overwrote a committed object, keeping it",
				interfaces.String("slot", string(asset.Slot)),
				interfaces.String("path", asset.Path),
				interfaces.Error(outcome.Err))
			continue
		}
		if err := c.store.Delete(ctx, asset.Path); err != nil {
			log.Error("Failed to delete uploaded asset",
				interfaces.String("slot", string(asset.Slot)),
				interfaces.String("path", asset.Path),
				interfaces.Error(err))
			continue
		}
		log.Warn("Deleted uploaded asset",
			interfaces.String("slot", string(asset.Slot)),
			interfaces.String("path", asset.Path),
			interfaces.Error(outcome.Err))
	}
}

func applyRelations(t *catalog.Title, r Relations) {
	if r.Categories != nil {
		t.RemoveAllCategories()
		for _, id := range r.Categories {
			t.AddCategory(id)
		}
	}
	if r.Genres != nil {
		t.RemoveAllGenres()
		for _, id := range r.Genres {
			t.AddGenre(id)
		}
	}
	if r.CastMembers != nil {
		t.RemoveAllCastMembers()
		for _, id := range r.CastMembers {
			t.AddCastMember(id)
		}
	}
}
