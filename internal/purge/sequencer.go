// Package purge runs the delete sequence for a deletion batch.
package purge

import (
	"context"

	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/ucm"
	"github.com/quantmind-br/ucmpurge/internal/utils"
)

// Deleter sends one delete request
type Deleter interface {
	Delete(ctx context.Context, req domain.DeleteRequest) (*domain.DeleteResponse, error)
}

// Attempt describes one request sent by the sequencer
type Attempt struct {
	Index  int
	Entry  domain.ManifestEntry
	Status string
	Err    error
}

// Options configures a Sequencer
type Options struct {
	Logger   *utils.Logger
	Progress domain.Progress
	// OnAttempt is called after every request, including a failing one
	OnAttempt func(Attempt)
}

// Sequencer deletes batch entries one at a time and stops at the first
// request that fails or returns a non-success transport status
type Sequencer struct {
	deleter   Deleter
	logger    *utils.Logger
	progress  domain.Progress
	onAttempt func(Attempt)
}

// NewSequencer creates a Sequencer sending requests through deleter
func NewSequencer(deleter Deleter, opts Options) *Sequencer {
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Sequencer{
		deleter:   deleter,
		logger:    opts.Logger.WithComponent("purge"),
		progress:  opts.Progress,
		onAttempt: opts.OnAttempt,
	}
}

// Run sends the batch in order. The manifest entry is last, so it is only
// deleted when every other request was accepted.
func (s *Sequencer) Run(ctx context.Context, batch domain.DeletionBatch) domain.Result {
	total := batch.Len()
	attempted := 0

	for i, entry := range batch.Entries {
		attempted++
		req := domain.NewDeleteRequest(entry)
		log := s.logger.WithDocID(entry.DocID)

		log.Info().
			Str("file", entry.FileName).
			Msgf("Deleting file >%s< with DocID >%s<", entry.FileName, entry.DocID)

		resp, err := s.deleter.Delete(ctx, req)
		if err != nil {
			s.notify(Attempt{Index: i, Entry: entry, Err: err})
			result := domain.TransportFailure(&domain.TransportError{
				DocID:     entry.DocID,
				Attempted: attempted,
				Err:       err,
			}, attempted)

			log.Error().Err(err).
				Int("attempted", attempted).
				Msgf("Delete request failed, %d of %d files deleted", result.Completed(), total)
			return result
		}

		status, ok := ucm.TransportStatus(resp)
		if ok && status != domain.SuccessStatus {
			statusErr := &domain.StatusError{DocID: entry.DocID, Status: status, Attempted: attempted}
			s.notify(Attempt{Index: i, Entry: entry, Status: status, Err: statusErr})

			log.Error().
				Str("status", status).
				Int("attempted", attempted).
				Msgf("Issue with HTTP request status, expected %s, returned %s. Aborting", domain.SuccessStatus, status)
			return domain.StatusFailure(statusErr)
		}

		s.notify(Attempt{Index: i, Entry: entry, Status: status})
		if s.progress != nil {
			_ = s.progress.Add(1)
		}
	}

	s.logger.Info().Int("requests", attempted).Msgf("%d deletion requests sent", attempted)
	return domain.Success(attempted)
}

func (s *Sequencer) notify(a Attempt) {
	if s.onAttempt != nil {
		s.onAttempt(a)
	}
}
