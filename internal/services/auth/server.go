package auth

import (
	"net/http"

	"github.com/taskboard/platform/internal/rpc"
)

// NewRPCServer exposes the auth service command set.
func NewRPCServer(svc *Service, cfg rpc.ServerConfig) http.Handler {
	return rpc.NewServer(cfg, []rpc.Endpoint{
		rpc.Typed(rpc.CmdRegister, svc.Register),
		rpc.Typed(rpc.CmdLogin, svc.Login),
		rpc.Typed(rpc.CmdVerifyToken, svc.VerifyToken),
		rpc.Typed(rpc.CmdValidateUser, svc.ValidateUser),
		rpc.Typed(rpc.CmdGetProfile, svc.GetProfile),
		rpc.Typed(rpc.CmdGetAllUsers, svc.GetAllUsers),
	})
}
