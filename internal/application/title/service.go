package title

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	"github.com/narwhalmedia/catalog/pkg/pagination"
)

// searchable sort fields for titles
var sortFields = []string{"title", "year_launched", "created_at", "updated_at"}

// Service handles use case orchestration for titles
type Service struct {
	titles      catalog.TitleRepository
	coordinator *Coordinator
	store       ContentStore
	uow         UnitOfWork
	publisher   interfaces.EventPublisher
	logger      interfaces.Logger
}

// NewService creates a new title service
func NewService(
	titles catalog.TitleRepository,
	coordinator *Coordinator,
	store ContentStore,
	uow UnitOfWork,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
) *Service {
	return &Service{
		titles:      titles,
		coordinator: coordinator,
		store:       store,
		uow:         uow,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create validates and stores a new title together with its relations and assets
func (s *Service) Create(ctx context.Context, cmd CreateTitleCommand) (*TitleOutput, error) {
	t, err := catalog.NewTitle(cmd.descriptive())
	if err != nil {
		return nil, err
	}

	outcome := s.coordinator.Run(ctx, Operation{
		Title:     t,
		Relations: cmd.Relations,
		Media:     cmd.Media,
		Persist:   s.titles.Insert,
	})
	if !outcome.Succeeded() {
		return nil, outcome.Err
	}

	s.logger.Info("Title created",
		interfaces.String("title_id", t.ID.String()),
		interfaces.Int("assets", len(outcome.Ledger)))

	s.publish(ctx, catalog.NewTitleCreatedEvent(t))
	s.publishUploads(ctx, t, outcome.Ledger)
	return NewTitleOutput(t), nil
}

// Update replaces the descriptive fields of a title. Relations and media
// follow the nil-means-retain rules of Relations and MediaBundle.
func (s *Service) Update(ctx context.Context, cmd UpdateTitleCommand) (*TitleOutput, error) {
	t, err := s.titles.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if err := t.UpdateDescriptive(cmd.descriptive()); err != nil {
		return nil, err
	}

	outcome := s.coordinator.Run(ctx, Operation{
		Title:     t,
		Relations: cmd.Relations,
		Media:     cmd.Media,
		Persist:   s.titles.Update,
	})
	if !outcome.Succeeded() {
		return nil, outcome.Err
	}

	s.logger.Info("Title updated",
		interfaces.String("title_id", t.ID.String()),
		interfaces.Int("assets", len(outcome.Ledger)))

	s.publish(ctx, catalog.NewTitleUpdatedEvent(t))
	s.publishUploads(ctx, t, outcome.Ledger)
	return NewTitleOutput(t), nil
}

// UploadMedias stores new assets for an existing title
func (s *Service) UploadMedias(ctx context.Context, cmd UploadMediasCommand) (*TitleOutput, error) {
	t, err := s.titles.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	outcome := s.coordinator.Run(ctx, Operation{
		Title:   t,
		Media:   cmd.Media,
		Persist: s.titles.Update,
	})
	if !outcome.Succeeded() {
		return nil, outcome.Err
	}

	s.logger.Info("Title media uploaded",
		interfaces.String("title_id", t.ID.String()),
		interfaces.Int("assets", len(outcome.Ledger)))

	s.publishUploads(ctx, t, outcome.Ledger)
	return NewTitleOutput(t), nil
}

// Delete removes a title and then, best effort, every asset it references.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.titles.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.inTransaction(ctx, func(ctx context.Context) error {
		return s.titles.Delete(ctx, t)
	}); err != nil {
		return err
	}

	log := s.logger.WithContext(ctx).WithFields(interfaces.String("title_id", id.String()))
	for _, path := range t.StoredPaths() {
		if err := s.store.Delete(ctx, path); err != nil {
			log.Error("Failed to delete title asset",
				interfaces.String("path", path),
				interfaces.Error(err))
		}
	}
	log.Info("Title deleted")

	s.publish(ctx, catalog.NewTitleDeletedEvent(t))
	return nil
}

// Get returns one title
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TitleOutput, error) {
	t, err := s.titles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTitleOutput(t), nil
}

// Search lists titles whose name matches the search text
func (s *Service) Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*TitleOutput], error) {
	out, err := s.titles.Search(ctx, input.Normalize("title", sortFields...))
	if err != nil {
		return pagination.SearchOutput[*TitleOutput]{}, fmt.Errorf("search titles: %w", err)
	}
	return pagination.Map(out, NewTitleOutput), nil
}

// UpdateMediaStatus records an encoder report for the video or trailer slot.
func (s *Service) UpdateMediaStatus(ctx context.Context, cmd UpdateMediaStatusCommand) (*TitleOutput, error) {
	t, err := s.titles.Get(ctx, cmd.TitleID)
	if err != nil {
		return nil, err
	}

	switch cmd.Status {
	case catalog.MediaStatusProcessing:
		err = t.SendToProcessing(cmd.Slot)
	case catalog.MediaStatusCompleted:
		err = t.MarkEncoded(cmd.Slot, cmd.EncodedPath)
	case catalog.MediaStatusError:
		err = t.MarkEncodingFailed(cmd.Slot)
	default:
		err = catalog.ErrInvalidMediaStatus
	}
	if err != nil {
		return nil, err
	}

	if err := s.inTransaction(ctx, func(ctx context.Context) error {
		return s.titles.Update(ctx, t)
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Title media status updated",
		interfaces.String("title_id", t.ID.String()),
		interfaces.String("slot", string(cmd.Slot)),
		interfaces.String("status", string(cmd.Status)))

	s.publish(ctx, catalog.NewTitleUpdatedEvent(t))
	return NewTitleOutput(t), nil
}

func (s *Service) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx.Context()); err != nil {
		return err
	}
	return tx.Commit()
}

// publish runs after commit; a broker failure never fails the use case.
func (s *Service) publish(ctx context.Context, event interfaces.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			interfaces.String("event_type", event.EventType()),
			interfaces.String("aggregate_id", event.AggregateID()),
			interfaces.Error(err))
	}
}

func (s *Service) publishUploads(ctx context.Context, t *catalog.Title, ledger Ledger) {
	for _, asset := range ledger {
		if asset.Slot.Encodable() {
			s.publish(ctx, catalog.NewMediaUploadedEvent(t, asset.Slot))
		}
	}
}
