package api

import "github.com/bastionhq/bastion/internal/services"

// Store is the persistence surface the router wires into the services. Both
// the in-memory store and the sqlite store satisfy it.
type Store interface {
	services.AuthStore
	services.JournalStore
	services.AssessmentStore
	services.ZoneStore
	services.SleepStore
	services.SquadStore
	services.ReportStore
	services.ProgressionStore
}

var _ Store = (*memoryStore)(nil)
