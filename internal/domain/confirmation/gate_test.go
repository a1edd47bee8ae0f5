package confirmation

import (
	"context"
	"testing"

	"kinship-app-go/internal/domain/member"
)

type fakeDirectory struct {
	members map[string]*member.Member
}

func (d *fakeDirectory) GetByCode(ctx context.Context, code string) (*member.Member, error) {
	m, ok := d.members[code]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}

type fakeHeads struct {
	heads map[string][]string
}

func (h *fakeHeads) HeadsOf(ctx context.Context, memberCode string) ([]string, error) {
	return h.heads[memberCode], nil
}

func newTestGate(members map[string]*member.Member, heads map[string][]string) *Gate {
	return NewGate(&fakeDirectory{members: members}, &fakeHeads{heads: heads})
}

func pendingRequest() *ConfirmationRequest {
	return &ConfirmationRequest{
		ID:                "req-1",
		ChildCode:         "APPR001",
		ClaimedParentCode: "PARENT001",
		ParentRole:        "father",
		Status:            StatusPending,
	}
}

func TestGateClaimedParentDecidesOwnClaim(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
	gate := newTestGate(map[string]*member.Member{"PARENT001": parent}, nil)

	allowed, err := gate.CanResolve(context.Background(), pendingRequest(), parent)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !allowed {
		t.Fatalf("expected claimed parent to be allowed")
	}
}

func TestGateHeadStepsInWhenParentInactive(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: false}
	head := &member.Member{Code: "HEAD001", Role: member.RoleParent, Active: true}
	gate := newTestGate(
		map[string]*member.Member{"PARENT001": parent, "HEAD001": head},
		map[string][]string{"APPR001": {"HEAD001"}},
	)

	allowed, err := gate.CanResolve(context.Background(), pendingRequest(), head)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !allowed {
		t.Fatalf("expected head to be allowed when claimed parent is inactive")
	}
}

func TestGateHeadDeniedWhileParentActive(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
	head := &member.Member{Code: "HEAD001", Role: member.RoleParent, Active: true}
	gate := newTestGate(
		map[string]*member.Member{"PARENT001": parent, "HEAD001": head},
		map[string][]string{"APPR001": {"HEAD001"}},
	)

	allowed, err := gate.CanResolve(context.Background(), pendingRequest(), head)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if allowed {
		t.Fatalf("expected head denied while the claimed parent can act")
	}
}

func TestGateHeadStepsInWhenParentUnregistered(t *testing.T) {
	head := &member.Member{Code: "HEAD001", Role: member.RoleParent, Active: true}
	gate := newTestGate(
		map[string]*member.Member{"HEAD001": head},
		map[string][]string{"APPR001": {"HEAD001"}},
	)

	allowed, err := gate.CanResolve(context.Background(), pendingRequest(), head)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !allowed {
		t.Fatalf("expected head to be allowed when claimed parent is unregistered")
	}
}

func TestGateAdminAlwaysAllowed(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
	admin := &member.Member{Code: "ADMIN001", Role: member.RoleAdmin, Active: true}
	gate := newTestGate(map[string]*member.Member{"PARENT001": parent, "ADMIN001": admin}, nil)

	allowed, err := gate.CanResolve(context.Background(), pendingRequest(), admin)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !allowed {
		t.Fatalf("expected admin to be allowed")
	}
}

func TestGateDeniesBystanderAndInactiveActor(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
	gate := newTestGate(map[string]*member.Member{"PARENT001": parent}, nil)

	bystander := &member.Member{Code: "PROF001", Role: member.RoleProfesseur, Active: true}
	if allowed, _ := gate.CanResolve(context.Background(), pendingRequest(), bystander); allowed {
		t.Fatalf("expected bystander denied")
	}

	inactiveAdmin := &member.Member{Code: "ADMIN001", Role: member.RoleAdmin, Active: false}
	if allowed, _ := gate.CanResolve(context.Background(), pendingRequest(), inactiveAdmin); allowed {
		t.Fatalf("expected inactive admin denied")
	}

	if allowed, _ := gate.CanResolve(context.Background(), pendingRequest(), nil); allowed {
		t.Fatalf("expected nil actor denied")
	}
}

func TestApprovers(t *testing.T) {
	parent := &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
	gate := newTestGate(
		map[string]*member.Member{"PARENT001": parent},
		map[string][]string{"APPR001": {"HEAD001", "HEAD002"}},
	)

	approvers, err := gate.Approvers(context.Background(), pendingRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(approvers) != 1 || approvers[0] != "PARENT001" {
		t.Fatalf("expected the claimed parent to be notified, got %v", approvers)
	}

	parent.Active = false
	approvers, err = gate.Approvers(context.Background(), pendingRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(approvers) != 2 {
		t.Fatalf("expected the heads to be notified, got %v", approvers)
	}
}
