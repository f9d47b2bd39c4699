package reputation

import core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"

// Re-export core reputation types for package-level compatibility.
type ActionID = core.ActionID
type Record = core.Record
type Row = core.Row
type Role = core.Role

const (
	RoleWorker = core.RoleWorker
	RoleClient = core.RoleClient
)

var (
	Flatten       = core.Flatten
	WorkerActions = core.WorkerActions
	ClientActions = core.ClientActions
	ParseRole     = core.ParseRole
)
