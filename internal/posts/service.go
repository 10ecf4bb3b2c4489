package posts

import (
	"time"

	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/ordering"
	"github.com/resssoft/casefolio/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service owns the post lifecycle: validated creation, ordered listing,
// deletion and the reorder protocol over the persisted sort keys.
type Service struct {
	repo       repository.PostRepository
	dispatcher *mediator.Dispatcher
}

func NewService(repo repository.PostRepository, dispatcher *mediator.Dispatcher) *Service {
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Create validates the draft and persists it at the end of the current order.
// A duplicate slug fails with models.ErrDuplicateSlug and leaves the
// collection untouched.
func (s *Service) Create(draft models.PostDraft) (models.Post, error) {
	if err := validateDraft(draft); err != nil {
		return models.Post{}, err
	}
	maxOrder, err := s.repo.MaxOrder()
	if err != nil {
		return models.Post{}, err
	}
	now := time.Now()
	post := models.Post{
		Slug:            draft.Slug,
		Title:           draft.Title,
		Subtitle:        draft.Subtitle,
		OverviewTitle:   draft.OverviewTitle,
		OverviewContent: draft.OverviewContent,
		Category:        draft.Category,
		Type:            draft.Type,
		Thumbnail:       draft.Thumbnail,
		HeroImage:       draft.HeroImage,
		Sections:        draft.Sections,
		Order:           maxOrder + 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	post, err = s.repo.Add(post)
	if err != nil {
		return post, err
	}
	s.dispatch(models.PostCreated, models.PostCreatedEvent{Post: post})
	return post, nil
}

func (s *Service) GetBySlug(slug string) (models.Post, error) {
	return s.repo.GetBySlug(slug)
}

// ListOrdered returns every post ascending by sort key with deterministic
// tie-breaking.
func (s *Service) ListOrdered() ([]models.Post, error) {
	return s.repo.GetAllOrdered()
}

// ListRecent returns every post newest first.
func (s *Service) ListRecent() ([]models.Post, error) {
	return s.repo.GetAllByCreated()
}

// Delete removes a post. Remaining sort keys keep their values, gaps are
// tolerated by the ordered listing.
func (s *Service) Delete(id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	post, err := s.repo.GetByID(objectID)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(objectID); err != nil {
		return err
	}
	s.dispatch(models.PostDeleted, models.PostDeletedEvent{
		ID:    id,
		Title: post.Title,
	})
	return nil
}

// Reorder writes order := i for each position in the submitted sequence. The
// writes commit independently; on a partial failure the returned ReorderError
// names the ids already written so the caller can decide to resubmit. An
// empty sequence is a no-op, duplicates are rejected, omitted ids keep their
// previous order.
func (s *Service) Reorder(ids ordering.Sequence) error {
	if len(ids) == 0 {
		return nil
	}
	if dup, ok := ids.Duplicates(); ok {
		return models.ValidationError{Field: "caseStudies", Reason: "duplicate id " + dup}
	}
	objectIDs := make([]primitive.ObjectID, len(ids))
	for i, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return models.ValidationError{Field: "caseStudies", Reason: "malformed id " + id}
		}
		objectIDs[i] = objectID
	}
	applied := make([]string, 0, len(ids))
	for i, objectID := range objectIDs {
		if err := s.repo.UpdateOrder(objectID, i); err != nil {
			return models.ReorderError{Applied: applied, Err: err}
		}
		applied = append(applied, ids[i])
	}
	s.dispatch(models.OrderUpdated, models.OrderUpdatedEvent{Sequence: ids})
	return nil
}

// ConfirmOrder re-fetches the ordered listing and reports whether its ids
// match the submitted sequence exactly. A mismatch means a write failed or a
// concurrent mutation slipped in; the caller surfaces it rather than retrying
// silently.
func (s *Service) ConfirmOrder(submitted ordering.Sequence) (bool, error) {
	listed, err := s.repo.GetAllOrdered()
	if err != nil {
		return false, err
	}
	current := make(ordering.Sequence, 0, len(listed))
	for _, post := range listed {
		current = append(current, post.MongoID.Hex())
	}
	return current.Equal(submitted), nil
}

func (s *Service) dispatch(name models.EventName, event interface{}) {
	if err := s.dispatcher.Dispatch(name, event); err != nil {
		log.Debug().Err(err).Str("event", string(name)).Send()
	}
}

func validateDraft(draft models.PostDraft) error {
	if draft.Title == "" {
		return models.ValidationError{Field: "title", Reason: "required"}
	}
	if draft.Slug == "" {
		return models.ValidationError{Field: "slug", Reason: "required"}
	}
	if draft.Category == "" {
		return models.ValidationError{Field: "category", Reason: "required"}
	}
	if !draft.Category.Valid() {
		return models.ValidationError{Field: "category", Reason: "unknown category " + string(draft.Category)}
	}
	if draft.Type == "" {
		return models.ValidationError{Field: "type", Reason: "required"}
	}
	if !draft.Type.Valid() {
		return models.ValidationError{Field: "type", Reason: "unknown type " + string(draft.Type)}
	}
	for _, section := range draft.Sections {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}
