package api

import (
	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/configurations"
	"github.com/steward-io/steward/internal/engine"
	"github.com/steward-io/steward/internal/notifications"
	"github.com/steward-io/steward/internal/outputs"
	"github.com/steward-io/steward/internal/processes"
	"github.com/steward-io/steward/internal/processtypes"
	"github.com/steward-io/steward/internal/prompts"
	"github.com/steward-io/steward/internal/tenants"
	"github.com/steward-io/steward/internal/validation"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Tenants        tenants.System
	ProcessTypes   processtypes.System
	Prompts        prompts.System
	Configurations configurations.System
	Processes      processes.System
	Audit          audit.System
	Notifications  notifications.System
	Outputs        outputs.System
	Registry       *validation.Registry
	Machine        *engine.Machine
}

// NewDomain creates all domain systems from the API runtime. The stage
// executor arrives from the caller so deployments can swap model
// integrations without touching the domain wiring.
func NewDomain(runtime *Runtime, executor engine.StageExecutor) *Domain {
	db := runtime.Database.Connection()

	registry := validation.NewRegistry()
	validation.RegisterBuiltins(registry)

	senders := outputs.NewSenderRegistry()
	outputs.RegisterBuiltinSenders(senders, db, runtime.Logger)

	tenantsSystem := tenants.New(db, runtime.Logger, runtime.Pagination)
	typesSystem := processtypes.New(db, runtime.Logger, runtime.Pagination)
	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)
	configsSystem := configurations.New(db, runtime.Logger, runtime.Pagination)
	processesSystem := processes.New(db, runtime.Logger, runtime.Pagination)
	auditSystem := audit.New(db, runtime.Messaging, runtime.Logger)
	notificationsSystem := notifications.New(db, runtime.Messaging, runtime.Logger)
	outputsSystem := outputs.New(db, runtime.Logger, senders)

	machine := engine.NewMachine(engine.Runtime{
		Tenants:        tenantsSystem,
		ProcessTypes:   typesSystem,
		Prompts:        promptsSystem,
		Configurations: configsSystem,
		Processes:      processesSystem,
		Audit:          auditSystem,
		Notifications:  notificationsSystem,
		Outputs:        outputsSystem,
		Registry:       registry,
		Executor:       executor,
		Storage:        runtime.Storage,
	}, runtime.Logger)

	return &Domain{
		Tenants:        tenantsSystem,
		ProcessTypes:   typesSystem,
		Prompts:        promptsSystem,
		Configurations: configsSystem,
		Processes:      processesSystem,
		Audit:          auditSystem,
		Notifications:  notificationsSystem,
		Outputs:        outputsSystem,
		Registry:       registry,
		Machine:        machine,
	}
}
