// Package engine implements the process state machine: it drives each
// process through ingest, classification, extraction, and validation,
// gates completion through human review, and emits one audit entry per
// stage attempt before the matching state change commits.
package engine

import (
	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/configurations"
	"github.com/steward-io/steward/internal/notifications"
	"github.com/steward-io/steward/internal/outputs"
	"github.com/steward-io/steward/internal/processes"
	"github.com/steward-io/steward/internal/processtypes"
	"github.com/steward-io/steward/internal/prompts"
	"github.com/steward-io/steward/internal/tenants"
	"github.com/steward-io/steward/internal/validation"
	"github.com/steward-io/steward/pkg/storage"
)

// Runtime bundles every collaborator the state machine depends on. All
// dependencies arrive by construction; the machine never looks anything up
// implicitly, so tests can swap any field for an in-memory fake.
type Runtime struct {
	Tenants        tenants.System
	ProcessTypes   processtypes.System
	Prompts        prompts.System
	Configurations configurations.System
	Processes      processes.System
	Audit          audit.System
	Notifications  notifications.System
	Outputs        outputs.System
	Registry       *validation.Registry
	Executor       StageExecutor
	Storage        storage.System
}
