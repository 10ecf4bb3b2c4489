package uploads

import (
	"fmt"
	"strings"

	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/repository"
	"github.com/rs/zerolog/log"
)

// Sweeper periodically compares the upload tree against the blob references
// held by posts and reports unreferenced files. Report-only: a draft the
// admin has not submitted yet may already point at a fresh upload, so nothing
// is ever deleted here.
type Sweeper struct {
	storage    *Storage
	repo       repository.PostRepository
	dispatcher *mediator.Dispatcher
}

func NewSweeper(storage *Storage, repo repository.PostRepository, dispatcher *mediator.Dispatcher) *Sweeper {
	return &Sweeper{
		storage:    storage,
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (s *Sweeper) Sweep() {
	stored, err := s.storage.ListStored()
	if err != nil {
		log.Error().AnErr("sweep list error", err).Send()
		return
	}
	posts, err := s.repo.GetAllOrdered()
	if err != nil {
		log.Error().AnErr("sweep posts error", err).Send()
		return
	}
	referenced := make(map[string]struct{})
	for _, post := range posts {
		for _, ref := range post.BlobRefs() {
			referenced[ref] = struct{}{}
		}
	}
	var orphans []string
	for _, name := range stored {
		if _, ok := referenced[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) == 0 {
		log.Debug().Int("stored", len(stored)).Msg("upload sweep found no orphans")
		return
	}
	log.Info().
		Int("stored", len(stored)).
		Int("orphans", len(orphans)).
		Msg("upload sweep found unreferenced files")
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(models.LogToFile, models.FileLoggerEvent{
			Src:  models.FileLogUploads,
			Data: fmt.Sprintf("sweep: %d orphans: %s", len(orphans), strings.Join(orphans, ", ")),
		}); err != nil {
			log.Debug().Err(err).Send()
		}
	}
}
