package project

import (
	"net/http"

	"github.com/taskboard/platform/internal/rpc"
)

// NewRPCServer exposes the project service command set.
func NewRPCServer(svc *Service, cfg rpc.ServerConfig) http.Handler {
	return rpc.NewServer(cfg, []rpc.Endpoint{
		rpc.Typed(rpc.CmdCreateProject, svc.Create),
		rpc.Typed(rpc.CmdGetAllProjects, svc.ListCreatedBy),
		rpc.Typed(rpc.CmdGetMyProjects, svc.ListAssignedTo),
		rpc.Typed(rpc.CmdGetProjectByID, svc.GetByID),
		rpc.Typed(rpc.CmdUpdateProject, svc.Update),
	})
}
