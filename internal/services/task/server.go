package task

import (
	"net/http"

	"github.com/taskboard/platform/internal/rpc"
)

// NewRPCServer exposes the task service command set.
func NewRPCServer(svc *Service, cfg rpc.ServerConfig) http.Handler {
	return rpc.NewServer(cfg, []rpc.Endpoint{
		rpc.Typed(rpc.CmdCreateTask, svc.Create),
		rpc.Typed(rpc.CmdGetTasksByProject, svc.ListByProject),
		rpc.Typed(rpc.CmdUpdateTaskStatus, svc.UpdateStatus),
	})
}
