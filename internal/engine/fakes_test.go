package engine_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/configurations"
	"github.com/steward-io/steward/internal/notifications"
	"github.com/steward-io/steward/internal/outputs"
	"github.com/steward-io/steward/internal/processes"
	"github.com/steward-io/steward/internal/processtypes"
	"github.com/steward-io/steward/internal/prompts"
	"github.com/steward-io/steward/internal/tenants"
	"github.com/steward-io/steward/pkg/lifecycle"
	"github.com/steward-io/steward/pkg/pagination"
)

var errNotImplemented = errors.New("not implemented in fake")

type fakeTenants struct {
	items map[uuid.UUID]tenants.Tenant
}

func (f *fakeTenants) Handler() *tenants.Handler { return nil }

func (f *fakeTenants) List(ctx context.Context, page pagination.PageRequest, filters tenants.Filters) (*pagination.PageResult[tenants.Tenant], error) {
	return nil, errNotImplemented
}

func (f *fakeTenants) Find(ctx context.Context, id uuid.UUID) (*tenants.Tenant, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, tenants.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTenants) Create(ctx context.Context, cmd tenants.CreateCommand) (*tenants.Tenant, error) {
	return nil, errNotImplemented
}

func (f *fakeTenants) Suspend(ctx context.Context, id uuid.UUID) (*tenants.Tenant, error) {
	return nil, errNotImplemented
}

func (f *fakeTenants) Reactivate(ctx context.Context, id uuid.UUID) (*tenants.Tenant, error) {
	return nil, errNotImplemented
}

func (f *fakeTenants) RequireActive(ctx context.Context, id uuid.UUID) (*tenants.Tenant, error) {
	t, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != tenants.StatusActive {
		return nil, tenants.ErrNotActive
	}
	return t, nil
}

type fakeProcessTypes struct {
	items map[string]processtypes.ProcessType
}

func (f *fakeProcessTypes) Handler() *processtypes.Handler { return nil }

func (f *fakeProcessTypes) List(ctx context.Context, page pagination.PageRequest, filters processtypes.Filters) (*pagination.PageResult[processtypes.ProcessType], error) {
	return nil, errNotImplemented
}

func (f *fakeProcessTypes) Find(ctx context.Context, id string) (*processtypes.ProcessType, error) {
	pt, ok := f.items[id]
	if !ok {
		return nil, processtypes.ErrNotFound
	}
	return &pt, nil
}

func (f *fakeProcessTypes) Create(ctx context.Context, cmd processtypes.CreateCommand) (*processtypes.ProcessType, error) {
	return nil, errNotImplemented
}

func (f *fakeProcessTypes) Activate(ctx context.Context, id string) (*processtypes.ProcessType, error) {
	return nil, errNotImplemented
}

func (f *fakeProcessTypes) Deactivate(ctx context.Context, id string) (*processtypes.ProcessType, error) {
	return nil, errNotImplemented
}

func (f *fakeProcessTypes) RequireActive(ctx context.Context, id string) (*processtypes.ProcessType, error) {
	pt, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pt.Active {
		return nil, processtypes.ErrInactive
	}
	return pt, nil
}

type promptKey struct {
	processTypeID string
	version       int
	stage         prompts.Stage
}

type fakePrompts struct {
	items map[promptKey]prompts.Prompt
}

func (f *fakePrompts) put(p prompts.Prompt) {
	f.items[promptKey{p.ProcessTypeID, p.Version, p.Stage}] = p
}

func (f *fakePrompts) Handler() *prompts.Handler { return nil }

func (f *fakePrompts) List(ctx context.Context, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	return nil, errNotImplemented
}

func (f *fakePrompts) Find(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return nil, errNotImplemented
}

func (f *fakePrompts) Create(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
	return nil, errNotImplemented
}

func (f *fakePrompts) Activate(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return nil, errNotImplemented
}

func (f *fakePrompts) Deactivate(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return nil, errNotImplemented
}

func (f *fakePrompts) Resolve(ctx context.Context, processTypeID string, version int, stage prompts.Stage) (*prompts.Prompt, error) {
	p, ok := f.items[promptKey{processTypeID, version, stage}]
	if !ok || !p.Active {
		return nil, prompts.ErrNotFound
	}
	return &p, nil
}

type fakeConfigs struct {
	items []configurations.Configuration
}

func (f *fakeConfigs) Handler() *configurations.Handler { return nil }

func (f *fakeConfigs) List(ctx context.Context, page pagination.PageRequest, filters configurations.Filters) (*pagination.PageResult[configurations.Configuration], error) {
	return nil, errNotImplemented
}

func (f *fakeConfigs) Find(ctx context.Context, id uuid.UUID) (*configurations.Configuration, error) {
	return nil, errNotImplemented
}

func (f *fakeConfigs) Create(ctx context.Context, cmd configurations.CreateCommand) (*configurations.Configuration, error) {
	return nil, errNotImplemented
}

func (f *fakeConfigs) Activate(ctx context.Context, id uuid.UUID) (*configurations.Configuration, error) {
	return nil, errNotImplemented
}

func (f *fakeConfigs) Deactivate(ctx context.Context, id uuid.UUID) (*configurations.Configuration, error) {
	return nil, errNotImplemented
}

func (f *fakeConfigs) Resolve(ctx context.Context, tenantID uuid.UUID, processTypeID string) (*configurations.Configuration, error) {
	var best *configurations.Configuration
	for i, c := range f.items {
		if c.TenantID != tenantID || c.ProcessTypeID != processTypeID || !c.Active {
			continue
		}
		if best == nil || c.Version > best.Version {
			best = &f.items[i]
		}
	}
	if best == nil {
		return nil, configurations.ErrNotFound
	}
	out := *best
	return &out, nil
}

func (f *fakeConfigs) ResolvePinned(ctx context.Context, tenantID uuid.UUID, processTypeID string, version int) (*configurations.Configuration, error) {
	for _, c := range f.items {
		if c.TenantID == tenantID && c.ProcessTypeID == processTypeID && c.Version == version {
			out := c
			return &out, nil
		}
	}
	return nil, configurations.ErrNotFound
}

// fakeProcesses mirrors the repository's transition semantics: the state
// machine check first, then the optimistic guard on the expected statuses.
type fakeProcesses struct {
	mu    sync.Mutex
	items map[uuid.UUID]*processes.Process
	docs  map[uuid.UUID][]processes.Document
}

func newFakeProcesses() *fakeProcesses {
	return &fakeProcesses{
		items: make(map[uuid.UUID]*processes.Process),
		docs:  make(map[uuid.UUID][]processes.Document),
	}
}

func (f *fakeProcesses) Handler() *processes.Handler { return nil }

func (f *fakeProcesses) List(ctx context.Context, page pagination.PageRequest, filters processes.Filters) (*pagination.PageResult[processes.Process], error) {
	return nil, errNotImplemented
}

func (f *fakeProcesses) Find(ctx context.Context, id uuid.UUID) (*processes.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.items[id]
	if !ok {
		return nil, processes.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProcesses) Create(ctx context.Context, cmd processes.CreateCommand) (*processes.Process, error) {
	if len(cmd.DocumentRefs) == 0 {
		return nil, processes.ErrNoDocuments
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	p := &processes.Process{
		ID:            uuid.New(),
		TenantID:      cmd.TenantID,
		ProcessTypeID: cmd.ProcessTypeID,
		ConfigVersion: cmd.ConfigVersion,
		Status:        processes.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.items[p.ID] = p

	for _, ref := range cmd.DocumentRefs {
		f.docs[p.ID] = append(f.docs[p.ID], processes.Document{
			ID:         uuid.New(),
			ProcessID:  p.ID,
			StorageRef: ref,
			Status:     processes.DocumentPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	out := *p
	return &out, nil
}

func (f *fakeProcesses) HITLQueue(ctx context.Context, page pagination.PageRequest, tenantID *uuid.UUID) (*pagination.PageResult[processes.Process], error) {
	return nil, errNotImplemented
}

func (f *fakeProcesses) FindDocuments(ctx context.Context, processID uuid.UUID) ([]processes.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.docs[processID]), nil
}

func (f *fakeProcesses) UpdateDocument(ctx context.Context, id uuid.UUID, mut processes.DocumentMutation) (*processes.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for pid, docs := range f.docs {
		for i := range docs {
			if docs[i].ID != id {
				continue
			}
			d := &f.docs[pid][i]
			if mut.Status != nil {
				d.Status = *mut.Status
			}
			if mut.OCRText != nil {
				d.OCRText = mut.OCRText
			}
			if mut.OCRConfidence != nil {
				d.OCRConfidence = mut.OCRConfidence
			}
			if mut.FraudScore != nil {
				d.FraudScore = mut.FraudScore
			}
			if mut.FraudFlags != nil {
				d.FraudFlags = mut.FraudFlags
			}
			d.UpdatedAt = time.Now().UTC()
			out := *d
			return &out, nil
		}
	}
	return nil, processes.ErrNotFound
}

func (f *fakeProcesses) Transition(ctx context.Context, id uuid.UUID, from []processes.Status, to processes.Status, mut processes.Mutation) (*processes.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range from {
		if !s.CanTransition(to) {
			return nil, processes.ErrInvalidTransition
		}
	}

	p, ok := f.items[id]
	if !ok {
		return nil, processes.ErrNotFound
	}
	if !slices.Contains(from, p.Status) {
		return nil, processes.ErrStaleTransition
	}

	p.Status = to
	if mut.CurrentStage != nil {
		p.CurrentStage = mut.CurrentStage
	}
	if mut.ClassificationResult != nil {
		p.ClassificationResult = mut.ClassificationResult
	}
	if mut.ExtractionResult != nil {
		p.ExtractionResult = mut.ExtractionResult
	}
	if mut.ValidationResult != nil {
		p.ValidationResult = mut.ValidationResult
	}
	if mut.FinalResult != nil {
		p.FinalResult = mut.FinalResult
	}
	if mut.Confidence != nil {
		p.Confidence = mut.Confidence
	}
	if mut.RequiresReview != nil {
		p.RequiresReview = *mut.RequiresReview
	}
	if mut.ReviewedBy != nil {
		p.ReviewedBy = mut.ReviewedBy
	}
	if mut.ErrorMessage != nil {
		p.ErrorMessage = mut.ErrorMessage
	}
	p.TokensInput += mut.TokensInput
	p.TokensOutput += mut.TokensOutput
	p.UpdatedAt = time.Now().UTC()
	if to.Terminal() {
		now := p.UpdatedAt
		p.CompletedAt = &now
	}

	out := *p
	return &out, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	nextID  int64
	entries []audit.Entry
	emitErr error
}

func (f *fakeAudit) Handler() *audit.Handler { return nil }

func (f *fakeAudit) Emit(ctx context.Context, entry audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.emitErr != nil {
		return f.emitErr
	}

	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAudit) ListByProcess(ctx context.Context, processID uuid.UUID) ([]audit.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []audit.Entry
	for _, e := range f.entries {
		if e.ProcessID == processID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	mu   sync.Mutex
	sent []notifications.NotifyCommand
}

func (f *fakeNotifications) Handler() *notifications.Handler { return nil }

func (f *fakeNotifications) Notify(ctx context.Context, cmd notifications.NotifyCommand) (*notifications.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, cmd)
	return &notifications.Notification{
		ID:        uuid.New(),
		ProcessID: cmd.ProcessID,
		ClientID:  cmd.ClientID,
		Type:      cmd.Type,
		Severity:  cmd.Severity,
		Message:   cmd.Message,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeNotifications) ListByClient(ctx context.Context, clientID uuid.UUID, unreadOnly bool) ([]notifications.Notification, error) {
	return nil, errNotImplemented
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id uuid.UUID) (*notifications.Notification, error) {
	return nil, errNotImplemented
}

func (f *fakeNotifications) byType(t notifications.Type) []notifications.NotifyCommand {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []notifications.NotifyCommand
	for _, cmd := range f.sent {
		if cmd.Type == t {
			out = append(out, cmd)
		}
	}
	return out
}

type dispatch struct {
	processID uuid.UUID
	result    json.RawMessage
}

type fakeOutputs struct {
	mu         sync.Mutex
	dispatched []dispatch
}

func (f *fakeOutputs) Handler() *outputs.Handler { return nil }

func (f *fakeOutputs) Enqueue(ctx context.Context, cmd outputs.EnqueueCommand) (*outputs.OutputAction, error) {
	return nil, errNotImplemented
}

func (f *fakeOutputs) Find(ctx context.Context, id uuid.UUID) (*outputs.OutputAction, error) {
	return nil, errNotImplemented
}

func (f *fakeOutputs) ListByProcess(ctx context.Context, processID uuid.UUID) ([]outputs.OutputAction, error) {
	return nil, errNotImplemented
}

func (f *fakeOutputs) DispatchPending(ctx context.Context, processID uuid.UUID, result json.RawMessage) ([]outputs.OutputAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dispatched = append(f.dispatched, dispatch{processID: processID, result: result})
	return nil, nil
}

type fakeStorage struct {
	missing map[string]bool
	err     error
}

func (f *fakeStorage) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.missing[key], nil
}
