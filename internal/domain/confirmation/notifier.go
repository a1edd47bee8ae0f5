package confirmation

import "context"

// Notifier delivers workflow events to approvers. The actual transport
// (mail, push) is an external collaborator; failures never fail the request.
type Notifier interface {
	RequestCreated(ctx context.Context, req *ConfirmationRequest, approvers []string)
	RequestResolved(ctx context.Context, req *ConfirmationRequest)
}

type NopNotifier struct{}

func (NopNotifier) RequestCreated(context.Context, *ConfirmationRequest, []string) {}
func (NopNotifier) RequestResolved(context.Context, *ConfirmationRequest)          {}
