package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/recipehub/web-gateway/internal/api/metrics"
	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
)

// DedupChecker abstracts the burst-suppression store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, sid string, kind domain.AuthEventKind) (bool, error)
	Mark(ctx context.Context, sid string, kind domain.AuthEventKind) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Record persists a single session audit event. A single expired credential
// produces one 401 per in-flight request, so forced logouts are deduplicated
// per session before they reach the trail.
func (s *auditService) Record(ctx context.Context, ev domain.AuthEvent) error {
	if ev.Kind == domain.AuthEventForcedLogout {
		isDup, err := s.dedup.IsDuplicate(ctx, ev.SessionID, ev.Kind)
		if err != nil {
			s.log.Warn().Err(err).Msg("dedup check failed, recording anyway")
		} else if isDup {
			metrics.AuthEventsDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("kind", string(ev.Kind)).Msg("duplicate auth event skipped")
			return nil
		}
		metrics.AuthEventsDedupTotal.WithLabelValues("miss").Inc()

		if markErr := s.dedup.Mark(ctx, ev.SessionID, ev.Kind); markErr != nil {
			s.log.Warn().Err(markErr).Msg("failed to set dedup key")
		}
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	metrics.AuthEventsRecordedTotal.WithLabelValues(string(ev.Kind)).Inc()
	s.log.Info().
		Str("kind", string(ev.Kind)).
		Str("username", ev.Username).
		Msg("auth event recorded")

	return nil
}
