package variants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-manager/core/metrics"
	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants/models"
	"catalog-manager/feature/variants/store"

	"go.uber.org/zap"
)

var (
	// ErrProductNotFound is returned when a product id has no row.
	ErrProductNotFound = store.ErrProductNotFound
	// ErrVariantNotPending is returned when overriding fields of a persisted variant.
	ErrVariantNotPending = errors.New("variant is not pending")
	// ErrCommitInFlight is returned when a session is used while it commits.
	ErrCommitInFlight = reconcile.ErrCommitInFlight
)

// Repository is the catalog persistence the service needs.
type Repository interface {
	reconcile.Store
	reconcile.VariantLoader
	Product(ctx context.Context, productID string) (*models.Product, error)
	LoadOptions(ctx context.Context, productID string) ([]reconcile.Option, error)
}

// DriftRequest opens or recomputes an editing session.
type DriftRequest struct {
	// SessionID recomputes an existing session; empty opens a new one.
	SessionID string `json:"sessionId,omitempty"`
	// Options is the editor's current option state; nil uses the stored options.
	Options []reconcile.Option `json:"options,omitempty"`
	// PreserveManualOverrides overrides the configured default when set.
	PreserveManualOverrides *bool `json:"preserveManualOverrides,omitempty"`
}

// SessionView is the client view of an editing session.
type SessionView struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	reconcile.SessionState
}

// CommitOutcome is a commit result together with the archived report key.
type CommitOutcome struct {
	*reconcile.CommitResult
	ReportKey string `json:"reportKey,omitempty"`
}

// Service drives variant reconciliation for products.
type Service struct {
	repo     Repository
	cache    *reconcile.VariantCache
	calc     reconcile.Calculator
	sessions *Sessions
	archive  *Archive
	metrics  *metrics.Metrics
	logger   *zap.Logger
	cfg      Config
}

// NewService creates a variants service. archive and m may be nil.
func NewService(repo Repository, archive *Archive, m *metrics.Metrics, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		cache:    reconcile.NewVariantCache(repo, cfg.CacheTTL()),
		calc:     reconcile.Calculator{IDs: reconcile.PendingIDs},
		sessions: NewSessions(cfg.SessionTTL()),
		archive:  archive,
		metrics:  m,
		logger:   logger,
		cfg:      cfg,
	}
}

// Variants returns the existing variants of a product.
func (s *Service) Variants(ctx context.Context, productID string) ([]reconcile.Variant, error) {
	if _, err := s.repo.Product(ctx, productID); err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, productID)
}

// Options returns the stored options of a product.
func (s *Service) Options(ctx context.Context, productID string) ([]reconcile.Option, error) {
	if _, err := s.repo.Product(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.LoadOptions(ctx, productID)
}

// inputs resolves the options and existing variants a drift is computed from.
func (s *Service) inputs(ctx context.Context, productID string, options []reconcile.Option) ([]reconcile.Option, []reconcile.Variant, error) {
	if _, err := s.repo.Product(ctx, productID); err != nil {
		return nil, nil, err
	}

	if options == nil {
		stored, err := s.repo.LoadOptions(ctx, productID)
		if err != nil {
			return nil, nil, err
		}
		options = stored
	}

	existing, err := s.cache.Get(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return options, existing, nil
}

// Preview computes drift without opening a session.
func (s *Service) Preview(ctx context.Context, productID string, options []reconcile.Option) (*reconcile.DriftResult, error) {
	options, existing, err := s.inputs(ctx, productID, options)
	if err != nil {
		return nil, err
	}

	result := s.calc.Calculate(options, existing)
	s.observeDrift("preview", productID, result, existing)
	return &result, nil
}

// Drift opens a session, or recomputes the given one, from the current options.
func (s *Service) Drift(ctx context.Context, productID string, req DriftRequest) (*SessionView, error) {
	options, existing, err := s.inputs(ctx, productID, req.Options)
	if err != nil {
		return nil, err
	}

	var sess *reconcile.Session
	if req.SessionID != "" {
		sess, err = s.session(req.SessionID)
		if err != nil {
			return nil, err
		}
		if sess.ProductID != productID {
			return nil, fmt.Errorf("%w: %s belongs to another product", ErrSessionNotFound, req.SessionID)
		}
	} else {
		sess = s.sessions.Open(productID, s.calc)
		s.metrics.SetActiveSessions(s.sessions.Len())
	}

	preserve := s.cfg.PreserveManualOverrides
	if req.PreserveManualOverrides != nil {
		preserve = *req.PreserveManualOverrides
	}

	state, err := sess.Recompute(options, existing, preserve)
	if err != nil {
		return nil, err
	}
	s.observeDrift("session", productID, reconcile.DriftResult{
		ToCreate:  state.ToCreate,
		ToDelete:  state.ToDelete,
		Unchanged: state.Unchanged,
		Summary:   state.Summary,
	}, existing)
	return view(sess, state), nil
}

func (s *Service) observeDrift(source, productID string, result reconcile.DriftResult, existing []reconcile.Variant) {
	summary := result.Summary
	s.metrics.RecordDrift(source, summary.ToCreate, summary.ToDelete, summary.Unchanged, summary.MalformedPairs)

	fields := []zap.Field{
		zap.String("product_id", productID),
		zap.Int("combinations", summary.Combinations),
		zap.Int("to_create", summary.ToCreate),
		zap.Int("to_delete", summary.ToDelete),
		zap.Int("unchanged", summary.Unchanged),
	}
	if err := result.Validate(existing); err != nil {
		s.logger.Error("Drift result is inconsistent with existing variants", append(fields, zap.Error(err))...)
	}
	if summary.MalformedPairs > 0 {
		s.logger.Warn("Drift includes option values without a title or value",
			append(fields, zap.Int("malformed_pairs", summary.MalformedPairs))...)
		return
	}
	s.logger.Debug("Drift computed", fields...)
}

// Session returns the current state of a session.
func (s *Service) Session(id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return view(sess, sess.State()), nil
}

// RemoveFromCreate drops a pending variant from a session.
func (s *Service) RemoveFromCreate(sessionID, variantID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := sess.RemoveFromCreate(variantID)
	if err != nil {
		return nil, err
	}
	return view(sess, state), nil
}

// RemoveFromDelete keeps an existing variant that drift marked for deletion.
func (s *Service) RemoveFromDelete(sessionID, variantID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := sess.RemoveFromDelete(variantID)
	if err != nil {
		return nil, err
	}
	return view(sess, state), nil
}

// UpdatePending overrides fields of a pending variant.
func (s *Service) UpdatePending(sessionID, variantID string, patch reconcile.PendingPatch) (*SessionView, error) {
	if !reconcile.IsPendingID(variantID) {
		return nil, fmt.Errorf("%w: %s", ErrVariantNotPending, variantID)
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := sess.UpdatePending(variantID, patch)
	if err != nil {
		return nil, err
	}
	return view(sess, state), nil
}

// Commit applies a session to the catalog. A fully successful commit closes the
// session. A non-nil outcome with a non-nil error is a partial failure; the session
// then holds only the failed items.
func (s *Service) Commit(ctx context.Context, sessionID string) (*CommitOutcome, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	done := s.metrics.TrackCommit()
	result, commitErr := sess.Commit(ctx, s.repo)
	done()
	if result == nil {
		return nil, commitErr
	}

	for range result.Created {
		s.metrics.RecordCommitOperation(string(reconcile.OpCreate), true)
	}
	for range result.Deleted {
		s.metrics.RecordCommitOperation(string(reconcile.OpDelete), true)
	}
	for _, f := range result.Failures {
		s.metrics.RecordCommitOperation(string(f.Op), false)
	}

	s.cache.Invalidate(sess.ProductID)
	if result.OK() {
		s.sessions.Close(sessionID)
		s.metrics.SetActiveSessions(s.sessions.Len())
	}

	l := s.logger.With(
		zap.String("product_id", sess.ProductID),
		zap.String("session_id", sessionID),
		zap.Int("created", len(result.Created)),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(result.Failures)),
	)
	if commitErr != nil {
		l.Warn("Commit finished with failures", zap.Error(commitErr))
	} else {
		l.Info("Commit finished")
	}

	outcome := &CommitOutcome{CommitResult: result}
	if s.archive != nil && s.cfg.ArchiveReports {
		// Archive errors never fail a commit that already touched the catalog
		key, err := s.archive.Save(context.WithoutCancel(ctx), result)
		if err != nil {
			l.Error("Failed to archive commit report", zap.Error(err))
		} else {
			outcome.ReportKey = key
		}
	}
	return outcome, commitErr
}

// Reports lists archived commit reports of a product.
func (s *Service) Reports(ctx context.Context, productID string) ([]ReportInfo, error) {
	if s.archive == nil {
		return []ReportInfo{}, nil
	}
	return s.archive.List(ctx, productID)
}

// Report fetches one archived commit report.
func (s *Service) Report(ctx context.Context, productID, name string) (*reconcile.CommitResult, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
	}
	return s.archive.Get(ctx, productID, name)
}

// PruneSessions drops idle sessions.
func (s *Service) PruneSessions() int {
	n := s.sessions.Prune()
	s.metrics.SetActiveSessions(s.sessions.Len())
	if n > 0 {
		s.logger.Debug("Pruned idle drift sessions", zap.Int("count", n))
	}
	return n
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.PruneSessions()
		}
	}
}

func (s *Service) session(id string) (*reconcile.Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return sess, nil
}

func view(sess *reconcile.Session, state reconcile.SessionState) *SessionView {
	return &SessionView{
		SessionID:    sess.ID,
		ProductID:    sess.ProductID,
		SessionState: state,
	}
}
