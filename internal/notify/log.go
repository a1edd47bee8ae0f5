package notify

import (
	"context"

	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	"kinship-app-go/pkg/logger"
)

// LogNotifier records workflow events in the log. The real delivery channel
// (mail, push) lives outside this service; swapping it in only means
// replacing this implementation.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) RequestCreated(_ context.Context, req *confirmationdomain.ConfirmationRequest, approvers []string) {
	n.log.Info("confirmation: request created",
		"request_id", req.ID,
		"child", req.ChildCode,
		"claimed_parent", req.ClaimedParentCode,
		"parent_role", req.ParentRole,
		"approvers", approvers,
	)
}

func (n *LogNotifier) RequestResolved(_ context.Context, req *confirmationdomain.ConfirmationRequest) {
	n.log.Info("confirmation: request resolved",
		"request_id", req.ID,
		"child", req.ChildCode,
		"status", req.Status,
	)
}
