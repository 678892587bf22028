package handlers

import (
	"github.com/ddsimoes/optaplanner/internal/services"
)

type Handler struct {
	solverSrv *services.SolverService
}

func New(solverSrv *services.SolverService) *Handler {
	return &Handler{
		solverSrv: solverSrv,
	}
}
