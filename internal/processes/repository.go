package processes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

const returning = `id, tenant_id, process_type_id, config_version, status, current_stage,
		classification_result, extraction_result, validation_result, final_result,
		confidence, requires_review, reviewed_by, error_message,
		tokens_input, tokens_output, created_at, updated_at, completed_at`

const documentReturning = `id, process_id, storage_ref, status, ocr_text, ocr_confidence,
		fraud_score, fraud_flags, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a process repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "processes"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Process], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort...)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count processes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProcess)
	if err != nil {
		return nil, fmt.Errorf("query processes: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Process, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProcess)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Process, error) {
	if len(cmd.DocumentRefs) == 0 {
		return nil, ErrNoDocuments
	}

	processSQL := fmt.Sprintf(`
		INSERT INTO processes(tenant_id, process_type_id, config_version)
		VALUES ($1, $2, $3)
		RETURNING %s`, returning)

	documentSQL := `
		INSERT INTO documents(process_id, storage_ref)
		VALUES ($1, $2)`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Process, error) {
		p, err := repository.QueryOne(
			ctx, tx, processSQL,
			[]any{cmd.TenantID, cmd.ProcessTypeID, cmd.ConfigVersion},
			scanProcess,
		)
		if err != nil {
			return p, err
		}

		for _, ref := range cmd.DocumentRefs {
			if _, err := tx.ExecContext(ctx, documentSQL, p.ID, ref); err != nil {
				return p, fmt.Errorf("insert document %q: %w", ref, err)
			}
		}

		return p, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info(
		"process created",
		"id", p.ID,
		"tenant", p.TenantID,
		"process_type", p.ProcessTypeID,
		"config_version", p.ConfigVersion,
		"documents", len(cmd.DocumentRefs),
	)
	return &p, nil
}

func (r *repo) HITLQueue(
	ctx context.Context,
	page pagination.PageRequest,
	tenantID *uuid.UUID,
) (*pagination.PageResult[Process], error) {
	review := true
	status := string(StatusHITLReview)

	return r.List(ctx, page, Filters{
		TenantID:       tenantID,
		Status:         &status,
		RequiresReview: &review,
	})
}

func (r *repo) FindDocuments(ctx context.Context, processID uuid.UUID) ([]Document, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM documents
		WHERE process_id = $1
		ORDER BY created_at, id`, documentReturning)

	docs, err := repository.QueryMany(ctx, r.db, q, []any{processID}, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) UpdateDocument(
	ctx context.Context,
	id uuid.UUID,
	mut DocumentMutation,
) (*Document, error) {
	set := []string{"updated_at = now()"}
	args := make([]any, 0, 6)
	next := 1

	assign := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	if mut.Status != nil {
		assign("status", *mut.Status)
	}
	if mut.OCRText != nil {
		assign("ocr_text", *mut.OCRText)
	}
	if mut.OCRConfidence != nil {
		assign("ocr_confidence", *mut.OCRConfidence)
	}
	if mut.FraudScore != nil {
		assign("fraud_score", *mut.FraudScore)
	}
	if mut.FraudFlags != nil {
		flags, err := json.Marshal(mut.FraudFlags)
		if err != nil {
			return nil, fmt.Errorf("encode fraud flags: %w", err)
		}
		assign("fraud_flags", flags)
	}

	q := fmt.Sprintf(`
		UPDATE documents SET %s
		WHERE id = $%d
		RETURNING %s`, strings.Join(set, ", "), next, documentReturning)
	args = append(args, id)

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &d, nil
}

// Transition moves a process to the next state with an optimistic guard on
// the expected current states. The UPDATE only matches when the stored
// status is one of from; zero matched rows means a concurrent writer won
// and the caller receives ErrStaleTransition.
func (r *repo) Transition(
	ctx context.Context,
	id uuid.UUID,
	from []Status,
	to Status,
	mut Mutation,
) (*Process, error) {
	for _, f := range from {
		if !f.CanTransition(to) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f, to)
		}
	}

	set := []string{"updated_at = now()"}
	args := make([]any, 0, 12)
	next := 1

	assign := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	assign("status", to)
	if mut.CurrentStage != nil {
		assign("current_stage", *mut.CurrentStage)
	}
	if mut.ClassificationResult != nil {
		assign("classification_result", []byte(mut.ClassificationResult))
	}
	if mut.ExtractionResult != nil {
		assign("extraction_result", []byte(mut.ExtractionResult))
	}
	if mut.ValidationResult != nil {
		assign("validation_result", []byte(mut.ValidationResult))
	}
	if mut.FinalResult != nil {
		assign("final_result", []byte(mut.FinalResult))
	}
	if mut.Confidence != nil {
		assign("confidence", *mut.Confidence)
	}
	if mut.RequiresReview != nil {
		assign("requires_review", *mut.RequiresReview)
	}
	if mut.ReviewedBy != nil {
		assign("reviewed_by", *mut.ReviewedBy)
	}
	if mut.ErrorMessage != nil {
		assign("error_message", *mut.ErrorMessage)
	}
	if mut.TokensInput != 0 {
		set = append(set, fmt.Sprintf("tokens_input = tokens_input + $%d", next))
		args = append(args, mut.TokensInput)
		next++
	}
	if mut.TokensOutput != 0 {
		set = append(set, fmt.Sprintf("tokens_output = tokens_output + $%d", next))
		args = append(args, mut.TokensOutput)
		next++
	}
	if to.Terminal() {
		set = append(set, "completed_at = now()")
	}

	expected := make([]string, len(from))
	for i, f := range from {
		expected[i] = string(f)
	}

	q := fmt.Sprintf(`
		UPDATE processes SET %s
		WHERE id = $%d AND status = ANY($%d)
		RETURNING %s`, strings.Join(set, ", "), next, next+1, returning)
	args = append(args, id, expected)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProcess)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The row either does not exist or is no longer in an
			// expected state. Distinguish the two for the caller.
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrStaleTransition
		}
		return nil, fmt.Errorf("transition process: %w", err)
	}

	r.logger.Info(
		"process transitioned",
		"id", p.ID,
		"status", p.Status,
	)
	return &p, nil
}
