package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/configurations"
	"github.com/steward-io/steward/internal/notifications"
	"github.com/steward-io/steward/internal/processes"
	"github.com/steward-io/steward/internal/prompts"
	"github.com/steward-io/steward/internal/validation"
)

// Machine drives processes through the pipeline. Each process advances
// under a per-process lock; concurrent drivers of the same process
// serialize here, and any transition that loses a race with a concurrent
// writer observes the advanced state through the repository's optimistic
// guard instead of overwriting it.
type Machine struct {
	rt     Runtime
	locks  processLocks
	logger *slog.Logger
}

// NewMachine creates a state machine over the given runtime.
func NewMachine(rt Runtime, logger *slog.Logger) *Machine {
	return &Machine{
		rt:     rt,
		logger: logger.With("system", "engine"),
	}
}

// StartCommand carries the data needed to create a process. ConfigVersion
// pins an explicit configuration version; nil resolves the highest active
// version at creation time.
type StartCommand struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	ProcessTypeID string    `json:"process_type_id"`
	DocumentRefs  []string  `json:"document_refs"`
	ConfigVersion *int      `json:"config_version"`
}

// ApproveCommand carries an operator's review decision. A corrected
// payload, when present, replaces the extraction result before validation
// re-runs.
type ApproveCommand struct {
	ReviewedBy       string          `json:"reviewed_by"`
	CorrectedPayload json.RawMessage `json:"corrected_payload"`
}

// Start creates a new process pinned to a resolved configuration version.
// The process is created in pending; Run advances it.
func (m *Machine) Start(ctx context.Context, cmd StartCommand) (*processes.Process, error) {
	if _, err := m.rt.Tenants.RequireActive(ctx, cmd.TenantID); err != nil {
		return nil, err
	}
	if _, err := m.rt.ProcessTypes.RequireActive(ctx, cmd.ProcessTypeID); err != nil {
		return nil, err
	}

	var (
		cfg *configurations.Configuration
		err error
	)
	if cmd.ConfigVersion != nil {
		cfg, err = m.rt.Configurations.ResolvePinned(ctx, cmd.TenantID, cmd.ProcessTypeID, *cmd.ConfigVersion)
	} else {
		cfg, err = m.rt.Configurations.Resolve(ctx, cmd.TenantID, cmd.ProcessTypeID)
	}
	if err != nil {
		return nil, err
	}

	return m.rt.Processes.Create(ctx, processes.CreateCommand{
		TenantID:      cmd.TenantID,
		ProcessTypeID: cmd.ProcessTypeID,
		ConfigVersion: cfg.Version,
		DocumentRefs:  cmd.DocumentRefs,
	})
}

// Run advances a process until it suspends in hitl_review or reaches a
// terminal state. Stage work happens outside any transaction; every state
// change commits through a guarded transition, so a process cancelled
// mid-stage keeps its cancelled state and the stale stage result is
// discarded and audited.
func (m *Machine) Run(ctx context.Context, id uuid.UUID) error {
	unlock := m.locks.lock(id)
	defer unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := m.rt.Processes.Find(ctx, id)
		if err != nil {
			return err
		}

		if p.Status.Terminal() || p.Status == processes.StatusHITLReview {
			return nil
		}

		cfg, err := m.rt.Configurations.ResolvePinned(ctx, p.TenantID, p.ProcessTypeID, p.ConfigVersion)
		if err != nil {
			return err
		}

		switch p.Status {
		case processes.StatusPending:
			err = m.ingest(ctx, p, cfg)
		case processes.StatusIngested:
			err = m.runModelStage(ctx, p, cfg, prompts.StageIntelligentOCR)
		case processes.StatusClassifying:
			err = m.runModelStage(ctx, p, cfg, prompts.StageIntelligentProcess)
		case processes.StatusExtracting:
			err = m.validate(ctx, p, cfg)
		case processes.StatusValidating:
			err = m.decide(ctx, p, cfg)
		default:
			return fmt.Errorf("%w: %s", ErrInvalidState, p.Status)
		}

		if err != nil {
			if errors.Is(err, processes.ErrStaleTransition) {
				// A concurrent writer advanced the process; re-read
				// instead of retrying the stale step.
				continue
			}
			return err
		}
	}
}

// Approve resumes a process suspended in hitl_review. Validation re-runs
// against the corrected payload (classification and extraction do not);
// a process in any other state is rejected, so approving an already
// resolved review fails instead of silently succeeding.
func (m *Machine) Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*processes.Process, error) {
	unlock := m.locks.lock(id)
	defer unlock()

	p, err := m.rt.Processes.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != processes.StatusHITLReview {
		return nil, fmt.Errorf("%w: approve requires hitl_review, process is %s", ErrInvalidState, p.Status)
	}

	review := false
	mut := processes.Mutation{
		ReviewedBy:     &cmd.ReviewedBy,
		RequiresReview: &review,
	}
	if len(cmd.CorrectedPayload) > 0 {
		mut.ExtractionResult = cmd.CorrectedPayload
	}

	p, err = m.rt.Processes.Transition(
		ctx, id,
		[]processes.Status{processes.StatusHITLReview},
		processes.StatusValidating,
		mut,
	)
	if err != nil {
		return nil, err
	}

	cfg, err := m.rt.Configurations.ResolvePinned(ctx, p.TenantID, p.ProcessTypeID, p.ConfigVersion)
	if err != nil {
		return nil, err
	}

	if err := m.revalidate(ctx, p, cfg); err != nil {
		return nil, err
	}

	return m.rt.Processes.Find(ctx, id)
}

// Cancel marks a process cancelled. Cancellation is cooperative: it does
// not interrupt an in-flight stage call; the stage's guarded transition
// observes the cancelled state at its boundary and discards the result.
func (m *Machine) Cancel(ctx context.Context, id uuid.UUID, operator string) (*processes.Process, error) {
	active := make([]processes.Status, 0, len(processes.Statuses()))
	for _, s := range processes.Statuses() {
		if !s.Terminal() {
			active = append(active, s)
		}
	}

	msg := fmt.Sprintf("cancelled by %s", operator)
	p, err := m.rt.Processes.Transition(ctx, id, active, processes.StatusCancelled, processes.Mutation{
		ErrorMessage: &msg,
	})
	if err != nil {
		if errors.Is(err, processes.ErrStaleTransition) {
			return nil, fmt.Errorf("%w: process already terminal", ErrInvalidState)
		}
		return nil, err
	}

	m.notify(ctx, p, notifications.TypeProcessCancelled, notifications.SeverityWarning, msg)
	m.logger.Info("process cancelled", "id", p.ID, "operator", operator)
	return p, nil
}

// ingest confirms every document reference against blob storage. All
// confirmations fan out concurrently; any missing or unreadable blob fails
// the process.
func (m *Machine) ingest(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
) error {
	docs, err := m.rt.Processes.FindDocuments(ctx, p.ID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	failures := make([]string, len(docs))

	for i, doc := range docs {
		g.Go(func() error {
			exists, err := m.rt.Storage.Exists(gctx, doc.StorageRef)

			status := processes.DocumentConfirmed
			switch {
			case err != nil:
				status = processes.DocumentFailed
				failures[i] = fmt.Sprintf("%s: %v", doc.StorageRef, err)
			case !exists:
				status = processes.DocumentFailed
				failures[i] = fmt.Sprintf("%s: not found", doc.StorageRef)
			}

			_, updateErr := m.rt.Processes.UpdateDocument(gctx, doc.ID, processes.DocumentMutation{
				Status: &status,
			})
			return updateErr
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var detail string
	for _, f := range failures {
		if f == "" {
			continue
		}
		if detail != "" {
			detail += "; "
		}
		detail += f
	}

	refs := documentRefs(docs)

	if detail != "" {
		return m.fail(ctx, p, cfg, refs, prompts.StageIngest, fmt.Errorf("storage confirmation failed: %s", detail))
	}

	stage := prompts.StageIngest
	entry := m.entry(p, cfg, refs, stage, audit.ResultSuccess, nil, audit.TokenUsage{}, nil)
	if err := m.rt.Audit.Emit(ctx, entry); err != nil {
		return err
	}

	_, err = m.rt.Processes.Transition(
		ctx, p.ID,
		[]processes.Status{processes.StatusPending},
		processes.StatusIngested,
		processes.Mutation{CurrentStage: &stage},
	)
	return m.discardIfCancelled(ctx, p.ID, stage, nil, err)
}

// runModelStage executes one external model stage (classification or
// extraction) and commits its result.
func (m *Machine) runModelStage(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
	stage prompts.Stage,
) error {
	docs, err := m.rt.Processes.FindDocuments(ctx, p.ID)
	if err != nil {
		return err
	}
	refs := documentRefs(docs)

	prompt, err := m.rt.Prompts.Resolve(ctx, p.ProcessTypeID, p.ConfigVersion, stage)
	if err != nil {
		return m.fail(ctx, p, cfg, refs, stage, err)
	}

	res, err := m.rt.Executor.Execute(ctx, stage, refs, prompt)
	if err != nil {
		return m.fail(ctx, p, cfg, refs, stage, fmt.Errorf("%w: %v", ErrExecutor, err))
	}

	entry := m.entry(p, cfg, refs, stage, audit.ResultSuccess, res.Payload, res.TokenUsage, nil)
	if err := m.rt.Audit.Emit(ctx, entry); err != nil {
		return err
	}

	mut := processes.Mutation{
		CurrentStage: &stage,
		Confidence:   lowerConfidence(p.Confidence, res.Confidence),
		TokensInput:  int64(res.TokenUsage.Input),
		TokensOutput: int64(res.TokenUsage.Output),
	}

	var from, to processes.Status
	switch stage {
	case prompts.StageIntelligentOCR:
		from, to = processes.StatusIngested, processes.StatusClassifying
		mut.ClassificationResult = res.Payload
	case prompts.StageIntelligentProcess:
		from, to = processes.StatusClassifying, processes.StatusExtracting
		mut.ExtractionResult = res.Payload
	default:
		return fmt.Errorf("%w: no model stage for %s", ErrInvalidState, stage)
	}

	_, err = m.rt.Processes.Transition(ctx, p.ID, []processes.Status{from}, to, mut)
	return m.discardIfCancelled(ctx, p.ID, stage, res.Payload, err)
}

// validate runs the configured validator plugin against the extraction
// result and commits the validation outcome with the HITL decision.
func (m *Machine) validate(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
) error {
	docs, err := m.rt.Processes.FindDocuments(ctx, p.ID)
	if err != nil {
		return err
	}
	refs := documentRefs(docs)
	stage := prompts.StageOutput

	data := map[string]any{}
	if len(p.ExtractionResult) > 0 {
		if err := json.Unmarshal(p.ExtractionResult, &data); err != nil {
			return m.fail(ctx, p, cfg, refs, stage, fmt.Errorf("extraction payload is not an object: %w", err))
		}
	}

	result, err := m.rt.Registry.Validate(ctx, cfg.PluginName, data, cfg.ValidationRules)
	if err != nil {
		// Includes unregistered plugin names: a configuration bug,
		// fatal for the process, never retried.
		return m.fail(ctx, p, cfg, refs, stage, err)
	}

	review := RequiresReview(p.Confidence, p.ClassificationResult, result.Rejected(), cfg)

	outcome := audit.ResultSuccess
	if result.Rejected() || review {
		outcome = audit.ResultErrors
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode validation result: %w", err)
	}

	entry := m.entry(p, cfg, refs, stage, outcome, resultJSON, audit.TokenUsage{}, nil)
	if err := m.rt.Audit.Emit(ctx, entry); err != nil {
		return err
	}

	_, err = m.rt.Processes.Transition(
		ctx, p.ID,
		[]processes.Status{processes.StatusExtracting},
		processes.StatusValidating,
		processes.Mutation{
			CurrentStage:     &stage,
			ValidationResult: resultJSON,
			RequiresReview:   &review,
		},
	)
	return m.discardIfCancelled(ctx, p.ID, stage, resultJSON, err)
}

// decide routes a validated process to completion, review, or failure
// based on the committed validation outcome.
func (m *Machine) decide(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
) error {
	if p.RequiresReview {
		_, err := m.rt.Processes.Transition(
			ctx, p.ID,
			[]processes.Status{processes.StatusValidating},
			processes.StatusHITLReview,
			processes.Mutation{},
		)
		if err != nil {
			return err
		}

		m.notify(ctx, p, notifications.TypeHITLRequired, notifications.SeverityWarning,
			fmt.Sprintf("process %s requires human review", p.ID))
		return nil
	}

	var result validation.Result
	if len(p.ValidationResult) > 0 {
		if err := json.Unmarshal(p.ValidationResult, &result); err != nil {
			return fmt.Errorf("decode validation result: %w", err)
		}
	}

	if result.Rejected() {
		msg := ErrValidationRejected.Error()
		_, err := m.rt.Processes.Transition(
			ctx, p.ID,
			[]processes.Status{processes.StatusValidating},
			processes.StatusFailed,
			processes.Mutation{ErrorMessage: &msg},
		)
		if err != nil {
			return err
		}

		m.notify(ctx, p, notifications.TypeProcessFailed, notifications.SeverityError,
			fmt.Sprintf("process %s failed validation", p.ID))
		return nil
	}

	return m.complete(ctx, p)
}

// revalidate re-runs validation for an approved review and completes or
// re-suspends the process. The approval already recorded the reviewer;
// the gate's confidence and fraud checks do not re-apply, only the
// validator's verdict on the corrected payload matters.
func (m *Machine) revalidate(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
) error {
	docs, err := m.rt.Processes.FindDocuments(ctx, p.ID)
	if err != nil {
		return err
	}
	refs := documentRefs(docs)
	stage := prompts.StageOutput

	data := map[string]any{}
	if len(p.ExtractionResult) > 0 {
		if err := json.Unmarshal(p.ExtractionResult, &data); err != nil {
			return m.fail(ctx, p, cfg, refs, stage, fmt.Errorf("corrected payload is not an object: %w", err))
		}
	}

	result, err := m.rt.Registry.Validate(ctx, cfg.PluginName, data, cfg.ValidationRules)
	if err != nil {
		return m.fail(ctx, p, cfg, refs, stage, err)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode validation result: %w", err)
	}

	outcome := audit.ResultSuccess
	if result.Rejected() {
		outcome = audit.ResultErrors
	}

	entry := m.entry(p, cfg, refs, stage, outcome, resultJSON, audit.TokenUsage{}, nil)
	if err := m.rt.Audit.Emit(ctx, entry); err != nil {
		return err
	}

	if result.Rejected() {
		review := true
		_, err := m.rt.Processes.Transition(
			ctx, p.ID,
			[]processes.Status{processes.StatusValidating},
			processes.StatusHITLReview,
			processes.Mutation{
				ValidationResult: resultJSON,
				RequiresReview:   &review,
			},
		)
		if err != nil {
			return err
		}

		m.notify(ctx, p, notifications.TypeHITLRequired, notifications.SeverityWarning,
			fmt.Sprintf("corrected payload for process %s still fails validation", p.ID))
		return nil
	}

	p.ValidationResult = resultJSON
	return m.complete(ctx, p)
}

// complete commits the terminal completed state and dispatches output
// actions.
func (m *Machine) complete(ctx context.Context, p *processes.Process) error {
	final := p.ExtractionResult
	if len(final) == 0 {
		final = []byte("{}")
	}

	done, err := m.rt.Processes.Transition(
		ctx, p.ID,
		[]processes.Status{processes.StatusValidating},
		processes.StatusCompleted,
		processes.Mutation{FinalResult: final},
	)
	if err != nil {
		return err
	}

	if _, err := m.rt.Outputs.DispatchPending(ctx, done.ID, done.FinalResult); err != nil {
		// Output delivery has its own retry budget; a dispatch fault
		// never un-completes the process.
		m.logger.Error("output dispatch failed", "id", done.ID, "error", err)
	}

	m.notify(ctx, done, notifications.TypeProcessCompleted, notifications.SeverityInfo,
		fmt.Sprintf("process %s completed", done.ID))

	m.logger.Info("process completed", "id", done.ID)
	return nil
}

// fail records a FAILED stage attempt and moves the process to failed.
func (m *Machine) fail(
	ctx context.Context,
	p *processes.Process,
	cfg *configurations.Configuration,
	refs []string,
	stage prompts.Stage,
	cause error,
) error {
	detail := cause.Error()

	entry := m.entry(p, cfg, refs, stage, audit.ResultFailed, nil, audit.TokenUsage{}, &detail)
	if err := m.rt.Audit.Emit(ctx, entry); err != nil {
		return err
	}

	_, err := m.rt.Processes.Transition(
		ctx, p.ID,
		[]processes.Status{p.Status},
		processes.StatusFailed,
		processes.Mutation{
			CurrentStage: &stage,
			ErrorMessage: &detail,
		},
	)
	if err != nil {
		return m.discardIfCancelled(ctx, p.ID, stage, nil, err)
	}

	m.notify(ctx, p, notifications.TypeProcessFailed, notifications.SeverityError,
		fmt.Sprintf("process %s failed at %s: %s", p.ID, stage, detail))

	m.logger.Warn("process failed", "id", p.ID, "stage", stage, "error", detail)
	return nil
}

// discardIfCancelled handles a stage transition that lost to a concurrent
// writer. If the process was cancelled, the stage result is discarded and
// the discard audited; any other advance propagates as a stale transition
// so the run loop re-reads.
func (m *Machine) discardIfCancelled(
	ctx context.Context,
	id uuid.UUID,
	stage prompts.Stage,
	payload json.RawMessage,
	err error,
) error {
	if err == nil || !errors.Is(err, processes.ErrStaleTransition) {
		return err
	}

	p, findErr := m.rt.Processes.Find(ctx, id)
	if findErr != nil {
		return findErr
	}

	if p.Status != processes.StatusCancelled {
		return err
	}

	detail := fmt.Sprintf("stale %s result discarded: process cancelled", stage)
	cfg, cfgErr := m.rt.Configurations.ResolvePinned(ctx, p.TenantID, p.ProcessTypeID, p.ConfigVersion)
	if cfgErr != nil {
		return cfgErr
	}

	entry := m.entry(p, cfg, nil, stage, audit.ResultFailed, payload, audit.TokenUsage{}, &detail)
	if emitErr := m.rt.Audit.Emit(ctx, entry); emitErr != nil {
		return emitErr
	}

	m.logger.Info("stale stage result discarded", "id", id, "stage", stage)
	return err
}

func (m *Machine) entry(
	p *processes.Process,
	cfg *configurations.Configuration,
	refs []string,
	stage prompts.Stage,
	result audit.Result,
	payload json.RawMessage,
	tokens audit.TokenUsage,
	errDetail *string,
) audit.Entry {
	return audit.Entry{
		Timestamp:     time.Now().UTC(),
		Results:       result,
		StageType:     stage,
		PluginName:    cfg.PluginName,
		ProcessID:     p.ID,
		Documents:     refs,
		ClientID:      p.TenantID,
		ProcessTypeID: p.ProcessTypeID,
		Payload:       payload,
		TokenUsage:    tokens,
		ErrorDetail:   errDetail,
	}
}

func (m *Machine) notify(
	ctx context.Context,
	p *processes.Process,
	t notifications.Type,
	severity notifications.Severity,
	message string,
) {
	_, err := m.rt.Notifications.Notify(ctx, notifications.NotifyCommand{
		ProcessID: p.ID,
		ClientID:  p.TenantID,
		Type:      t,
		Severity:  severity,
		Message:   message,
	})
	if err != nil {
		m.logger.Error("notification failed", "process", p.ID, "type", t, "error", err)
	}
}

func documentRefs(docs []processes.Document) []string {
	refs := make([]string, len(docs))
	for i, d := range docs {
		refs[i] = d.StorageRef
	}
	return refs
}

func lowerConfidence(current, next *float64) *float64 {
	if next == nil {
		return nil
	}
	if current != nil && *current < *next {
		return current
	}
	return next
}
