package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
)

var (
	// ErrVariantNotFound is returned when a session mutation names an unknown variant.
	ErrVariantNotFound = errors.New("variant not found in session")
	// ErrCommitInFlight is returned when a session is mutated while it is committing.
	ErrCommitInFlight = errors.New("commit in progress")
)

// PendingPatch overrides defaulted fields of a pending variant before commit.
// Nil fields are left untouched.
type PendingPatch struct {
	SKU               *string `json:"sku,omitempty"`
	Barcode           *string `json:"barcode,omitempty"`
	EAN               *string `json:"ean,omitempty"`
	UPC               *string `json:"upc,omitempty"`
	Material          *string `json:"material,omitempty"`
	HSCode            *string `json:"hsCode,omitempty"`
	OriginCountry     *string `json:"originCountry,omitempty"`
	MIDCode           *string `json:"midCode,omitempty"`
	InventoryQuantity *int    `json:"inventoryQuantity,omitempty"`
	ManageInventory   *bool   `json:"manageInventory,omitempty"`
	AllowBackorder    *bool   `json:"allowBackorder,omitempty"`
}

func (p PendingPatch) apply(v *Variant) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&v.SKU, p.SKU)
	setString(&v.Barcode, p.Barcode)
	setString(&v.EAN, p.EAN)
	setString(&v.UPC, p.UPC)
	setString(&v.Material, p.Material)
	setString(&v.HSCode, p.HSCode)
	setString(&v.OriginCountry, p.OriginCountry)
	setString(&v.MIDCode, p.MIDCode)
	if p.InventoryQuantity != nil {
		v.InventoryQuantity = *p.InventoryQuantity
	}
	if p.ManageInventory != nil {
		v.ManageInventory = *p.ManageInventory
	}
	if p.AllowBackorder != nil {
		v.AllowBackorder = *p.AllowBackorder
	}
}

// SessionState is the value held by a reconciliation session.
// Its methods are pure: they return a new state and never touch the receiver.
type SessionState struct {
	ToCreate  []Variant    `json:"toCreate"`
	ToDelete  []Variant    `json:"toDelete"`
	Unchanged []Variant    `json:"unchanged"`
	Summary   DriftSummary `json:"summary"`

	// declined holds combination keys of pending variants the admin removed.
	declined map[string]struct{}
	// restored holds ids of existing variants the admin kept.
	restored map[string]struct{}
	// patches holds pending field overrides by combination key.
	patches map[string]PendingPatch
}

// Recompute rebuilds the state from the current options and existing variants.
// When preserveManualOverrides is false every prior removeFromCreate, removeFromDelete
// and pending override is discarded. When true they are re-applied to the new drift
// wherever the same combination or variant is still present.
func (st SessionState) Recompute(calc Calculator, options []Option, existing []Variant, preserveManualOverrides bool) SessionState {
	drift := calc.Calculate(options, existing)
	next := SessionState{
		ToCreate:  drift.ToCreate,
		ToDelete:  drift.ToDelete,
		Unchanged: drift.Unchanged,
		Summary:   drift.Summary,
		declined:  map[string]struct{}{},
		restored:  map[string]struct{}{},
		patches:   map[string]PendingPatch{},
	}
	if !preserveManualOverrides {
		return next
	}

	creates := make([]Variant, 0, len(next.ToCreate))
	for _, v := range next.ToCreate {
		key := CombinationKey(v.OptionValues)
		if _, ok := st.declined[key]; ok {
			next.declined[key] = struct{}{}
			continue
		}
		if patch, ok := st.patches[key]; ok {
			patch.apply(&v)
			next.patches[key] = patch
		}
		creates = append(creates, v)
	}
	next.ToCreate = creates

	deletes := make([]Variant, 0, len(next.ToDelete))
	for _, v := range next.ToDelete {
		if _, ok := st.restored[v.ID]; ok {
			next.restored[v.ID] = struct{}{}
			next.Unchanged = append(next.Unchanged, v)
			continue
		}
		deletes = append(deletes, v)
	}
	next.ToDelete = deletes
	next.Summary.ToCreate = len(next.ToCreate)
	next.Summary.ToDelete = len(next.ToDelete)
	next.Summary.Unchanged = len(next.Unchanged)
	return next
}

// RemoveFromCreate drops a pending variant from ToCreate.
func (st SessionState) RemoveFromCreate(variantID string) (SessionState, error) {
	next := st.clone()
	for i, v := range next.ToCreate {
		if v.ID != variantID {
			continue
		}
		key := CombinationKey(v.OptionValues)
		next.declined[key] = struct{}{}
		delete(next.patches, key)
		next.ToCreate = append(next.ToCreate[:i], next.ToCreate[i+1:]...)
		next.Summary.ToCreate = len(next.ToCreate)
		return next, nil
	}
	return st, fmt.Errorf("%w: %s", ErrVariantNotFound, variantID)
}

// RemoveFromDelete moves an existing variant from ToDelete back into Unchanged.
func (st SessionState) RemoveFromDelete(variantID string) (SessionState, error) {
	next := st.clone()
	for i, v := range next.ToDelete {
		if v.ID != variantID {
			continue
		}
		next.restored[v.ID] = struct{}{}
		next.ToDelete = append(next.ToDelete[:i], next.ToDelete[i+1:]...)
		next.Unchanged = append(next.Unchanged, v)
		next.Summary.ToDelete = len(next.ToDelete)
		next.Summary.Unchanged = len(next.Unchanged)
		return next, nil
	}
	return st, fmt.Errorf("%w: %s", ErrVariantNotFound, variantID)
}

// UpdatePending applies admin overrides to a pending variant.
func (st SessionState) UpdatePending(variantID string, patch PendingPatch) (SessionState, error) {
	next := st.clone()
	for i := range next.ToCreate {
		if next.ToCreate[i].ID != variantID {
			continue
		}
		patch.apply(&next.ToCreate[i])
		key := CombinationKey(next.ToCreate[i].OptionValues)
		merged := next.patches[key]
		mergePatch(&merged, patch)
		next.patches[key] = merged
		return next, nil
	}
	return st, fmt.Errorf("%w: %s", ErrVariantNotFound, variantID)
}

func mergePatch(dst *PendingPatch, src PendingPatch) {
	if src.SKU != nil {
		dst.SKU = src.SKU
	}
	if src.Barcode != nil {
		dst.Barcode = src.Barcode
	}
	if src.EAN != nil {
		dst.EAN = src.EAN
	}
	if src.UPC != nil {
		dst.UPC = src.UPC
	}
	if src.Material != nil {
		dst.Material = src.Material
	}
	if src.HSCode != nil {
		dst.HSCode = src.HSCode
	}
	if src.OriginCountry != nil {
		dst.OriginCountry = src.OriginCountry
	}
	if src.MIDCode != nil {
		dst.MIDCode = src.MIDCode
	}
	if src.InventoryQuantity != nil {
		dst.InventoryQuantity = src.InventoryQuantity
	}
	if src.ManageInventory != nil {
		dst.ManageInventory = src.ManageInventory
	}
	if src.AllowBackorder != nil {
		dst.AllowBackorder = src.AllowBackorder
	}
}

func (st SessionState) clone() SessionState {
	next := SessionState{
		ToCreate:  append([]Variant{}, st.ToCreate...),
		ToDelete:  append([]Variant{}, st.ToDelete...),
		Unchanged: append([]Variant{}, st.Unchanged...),
		Summary:   st.Summary,
		declined:  make(map[string]struct{}, len(st.declined)),
		restored:  make(map[string]struct{}, len(st.restored)),
		patches:   make(map[string]PendingPatch, len(st.patches)),
	}
	for k := range st.declined {
		next.declined[k] = struct{}{}
	}
	for k := range st.restored {
		next.restored[k] = struct{}{}
	}
	for k, p := range st.patches {
		next.patches[k] = p
	}
	return next
}

// Session owns the in-progress reconciliation for one product editing instance.
// Mutations are rejected while a commit is in flight.
type Session struct {
	ID        string
	ProductID string
	UpdatedAt time.Time

	mu         sync.Mutex
	calc       Calculator
	state      SessionState
	committing bool
}

// NewSession creates an empty session for a product.
func NewSession(id, productID string, calc Calculator) *Session {
	return &Session{
		ID:        id,
		ProductID: productID,
		UpdatedAt: time.Now(),
		calc:      calc,
		state: SessionState{
			ToCreate:  []Variant{},
			ToDelete:  []Variant{},
			Unchanged: []Variant{},
		},
	}
}

// State returns a snapshot of the session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// LastActivity returns when the session was created or last changed.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Committing reports whether a commit is in flight.
func (s *Session) Committing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committing
}

// Recompute rebuilds the session from the current option state.
func (s *Session) Recompute(options []Option, existing []Variant, preserveManualOverrides bool) (SessionState, error) {
	return s.update(func(st SessionState) (SessionState, error) {
		return st.Recompute(s.calc, options, existing, preserveManualOverrides), nil
	})
}

// RemoveFromCreate drops a pending variant. Storage is not touched.
func (s *Session) RemoveFromCreate(variantID string) (SessionState, error) {
	return s.update(func(st SessionState) (SessionState, error) {
		return st.RemoveFromCreate(variantID)
	})
}

// RemoveFromDelete keeps an existing variant that drift marked for deletion.
func (s *Session) RemoveFromDelete(variantID string) (SessionState, error) {
	return s.update(func(st SessionState) (SessionState, error) {
		return st.RemoveFromDelete(variantID)
	})
}

// UpdatePending overrides fields of a pending variant.
func (s *Session) UpdatePending(variantID string, patch PendingPatch) (SessionState, error) {
	return s.update(func(st SessionState) (SessionState, error) {
		return st.UpdatePending(variantID, patch)
	})
}

func (s *Session) update(fn func(SessionState) (SessionState, error)) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committing {
		return s.state.clone(), ErrCommitInFlight
	}
	next, err := fn(s.state)
	if err != nil {
		return s.state.clone(), err
	}
	s.state = next
	s.UpdatedAt = time.Now()
	return s.state.clone(), nil
}

// Commit creates every remaining pending variant and deletes every remaining variant
// marked for deletion, one call at a time. Failures are collected per item and never
// abort the batch. On full success the session is cleared; otherwise only the failed
// remainder is kept so a retry re-attempts exactly those items.
// The returned error aggregates every item failure.
func (s *Session) Commit(ctx context.Context, store Store) (*CommitResult, error) {
	s.mu.Lock()
	if s.committing {
		s.mu.Unlock()
		return nil, ErrCommitInFlight
	}
	s.committing = true
	snapshot := s.state.clone()
	s.mu.Unlock()

	// Commit runs to completion once started.
	ctx = context.WithoutCancel(ctx)

	result := &CommitResult{
		SessionID: s.ID,
		ProductID: s.ProductID,
		StartedAt: time.Now(),
		Created:   []CreatedVariant{},
		Deleted:   []DeletedVariant{},
		Failures:  []CommitFailure{},
	}

	var failedCreates, failedDeletes []Variant
	var created []Variant
	for _, v := range snapshot.ToCreate {
		id, err := store.CreateVariant(ctx, s.ProductID, ToCreateInput(v))
		if err != nil {
			failedCreates = append(failedCreates, v)
			result.fail(OpCreate, v, err)
			continue
		}
		result.Created = append(result.Created, CreatedVariant{PendingID: v.ID, ID: id, Title: v.Title})
		persisted := v
		persisted.ID = id
		created = append(created, persisted)
	}

	for _, v := range snapshot.ToDelete {
		if err := store.DeleteVariant(ctx, v.ID); err != nil {
			failedDeletes = append(failedDeletes, v)
			result.fail(OpDelete, v, err)
			continue
		}
		result.Deleted = append(result.Deleted, DeletedVariant{ID: v.ID, Title: v.Title})
	}
	result.FinishedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committing = false
	s.UpdatedAt = time.Now()

	if result.OK() {
		s.state = SessionState{
			ToCreate:  []Variant{},
			ToDelete:  []Variant{},
			Unchanged: []Variant{},
		}
		return result, nil
	}

	next := snapshot.clone()
	next.ToCreate = append([]Variant{}, failedCreates...)
	next.ToDelete = append([]Variant{}, failedDeletes...)
	next.Unchanged = append(next.Unchanged, created...)
	next.Summary.ToCreate = len(next.ToCreate)
	next.Summary.ToDelete = len(next.ToDelete)
	next.Summary.Unchanged = len(next.Unchanged)
	s.state = next
	return result, result.Err()
}

// CommitOp names the storage operation attempted for an item.
type CommitOp string

const (
	OpCreate CommitOp = "create"
	OpDelete CommitOp = "delete"
)

// CreatedVariant records a pending variant that was persisted.
type CreatedVariant struct {
	PendingID string `json:"pendingId"`
	ID        string `json:"id"`
	Title     string `json:"title"`
}

// DeletedVariant records a variant that was removed.
type DeletedVariant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CommitFailure records one failed item.
type CommitFailure struct {
	Op        CommitOp `json:"op"`
	VariantID string   `json:"variantId"`
	Title     string   `json:"title"`
	Error     string   `json:"error"`

	err error
}

// CommitResult is the aggregate outcome of a commit.
type CommitResult struct {
	SessionID  string           `json:"sessionId"`
	ProductID  string           `json:"productId"`
	Created    []CreatedVariant `json:"created"`
	Deleted    []DeletedVariant `json:"deleted"`
	Failures   []CommitFailure  `json:"failures"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
}

func (r *CommitResult) fail(op CommitOp, v Variant, err error) {
	r.Failures = append(r.Failures, CommitFailure{
		Op:        op,
		VariantID: v.ID,
		Title:     v.Title,
		Error:     err.Error(),
		err:       fmt.Errorf("%s variant %q: %w", op, v.Title, err),
	})
}

// OK reports whether every item succeeded.
func (r *CommitResult) OK() bool {
	return len(r.Failures) == 0
}

// Err combines every item failure into one error, or returns nil.
func (r *CommitResult) Err() error {
	var err error
	for _, f := range r.Failures {
		if f.err != nil {
			err = multierr.Append(err, f.err)
		} else {
			err = multierr.Append(err, fmt.Errorf("%s variant %q: %s", f.Op, f.Title, f.Error))
		}
	}
	return err
}
