package handler

import (
	"net/http"

	"kinship-app-go/internal/auth"
	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	memberdomain "kinship-app-go/internal/domain/member"
	treedomain "kinship-app-go/internal/domain/tree"
	"kinship-app-go/pkg/logger"
)

type Handlers struct {
	Members       *memberdomain.Service
	Trees         *treedomain.Service
	Confirmations *confirmationdomain.Service

	tokens *auth.TokenService
	log    logger.Logger
}

func New(
	members *memberdomain.Service,
	trees *treedomain.Service,
	confirmations *confirmationdomain.Service,
	tokens *auth.TokenService,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Members:       members,
		Trees:         trees,
		Confirmations: confirmations,
		tokens:        tokens,
		log:           log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
