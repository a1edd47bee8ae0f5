package confirmation

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinship-app-go/internal/domain/member"
	"kinship-app-go/internal/domain/tree"
)

type edgeKey struct {
	child string
	role  string
}

type fakeEdgeRepo struct {
	edges       map[edgeKey]*tree.FamilyEdge
	membersSet  map[string]bool
	trees       map[string]*tree.FamilyTree
	treeMembers map[string]map[string]bool
}

func newFakeEdgeRepo(members ...string) *fakeEdgeRepo {
	r := &fakeEdgeRepo{
		edges:       make(map[edgeKey]*tree.FamilyEdge),
		membersSet:  make(map[string]bool),
		trees:       make(map[string]*tree.FamilyTree),
		treeMembers: make(map[string]map[string]bool),
	}
	for _, code := range members {
		r.membersSet[code] = true
	}
	return r
}

func (r *fakeEdgeRepo) Transaction(ctx context.Context, fn func(tree.Repository) error) error {
	return fn(r)
}

func (r *fakeEdgeRepo) GetEdge(ctx context.Context, childCode, parentRole string) (*tree.FamilyEdge, error) {
	edge, ok := r.edges[edgeKey{childCode, parentRole}]
	if !ok {
		return nil, tree.ErrEdgeNotFound
	}
	return edge, nil
}

func (r *fakeEdgeRepo) ListParentEdges(ctx context.Context, childCode string) ([]tree.FamilyEdge, error) {
	var result []tree.FamilyEdge
	for _, edge := range r.edges {
		if edge.ChildCode == childCode {
			result = append(result, *edge)
		}
	}
	return result, nil
}

func (r *fakeEdgeRepo) ListChildEdges(ctx context.Context, parentCode string) ([]tree.FamilyEdge, error) {
	var result []tree.FamilyEdge
	for _, edge := range r.edges {
		if edge.ParentCode == parentCode {
			result = append(result, *edge)
		}
	}
	return result, nil
}

func (r *fakeEdgeRepo) CreateEdge(ctx context.Context, edge *tree.FamilyEdge) error {
	key := edgeKey{edge.ChildCode, edge.ParentRole}
	if _, ok := r.edges[key]; ok {
		return tree.ErrSlotOccupied
	}
	copied := *edge
	r.edges[key] = &copied
	return nil
}

func (r *fakeEdgeRepo) DeleteEdge(ctx context.Context, childCode, parentRole string) error {
	delete(r.edges, edgeKey{childCode, parentRole})
	return nil
}

func (r *fakeEdgeRepo) MemberExists(ctx context.Context, code string) (bool, error) {
	return r.membersSet[code], nil
}

func (r *fakeEdgeRepo) GetTreeByMember(ctx context.Context, memberCode string) (*tree.FamilyTree, error) {
	for id, members := range r.treeMembers {
		if members[memberCode] {
			return r.trees[id], nil
		}
	}
	return nil, tree.ErrTreeNotFound
}

func (r *fakeEdgeRepo) GetTreeByRoot(ctx context.Context, rootCode string) (*tree.FamilyTree, error) {
	for _, t := range r.trees {
		if t.RootCode == rootCode {
			return t, nil
		}
	}
	return nil, tree.ErrTreeNotFound
}

func (r *fakeEdgeRepo) CreateTree(ctx context.Context, t *tree.FamilyTree) error {
	copied := *t
	r.trees[t.ID] = &copied
	r.treeMembers[t.ID] = make(map[string]bool)
	return nil
}

func (r *fakeEdgeRepo) AddTreeMember(ctx context.Context, treeID, memberCode string) error {
	members, ok := r.treeMembers[treeID]
	if !ok {
		return tree.ErrTreeNotFound
	}
	members[memberCode] = true
	return nil
}

func (r *fakeEdgeRepo) IsTreeMember(ctx context.Context, treeID, memberCode string) (bool, error) {
	return r.treeMembers[treeID][memberCode], nil
}

func (r *fakeEdgeRepo) IsInAnyTree(ctx context.Context, memberCode string) (bool, error) {
	for _, members := range r.treeMembers {
		if members[memberCode] {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEdgeRepo) UpdateHeads(ctx context.Context, treeID string, headA, headB *string) error {
	t, ok := r.trees[treeID]
	if !ok {
		return tree.ErrTreeNotFound
	}
	t.HeadA = headA
	t.HeadB = headB
	return nil
}

type fakeConfirmRepo struct {
	requests map[string]*ConfirmationRequest
	edgeRepo *fakeEdgeRepo
}

func newFakeConfirmRepo(edges *fakeEdgeRepo) *fakeConfirmRepo {
	return &fakeConfirmRepo{
		requests: make(map[string]*ConfirmationRequest),
		edgeRepo: edges,
	}
}

func (r *fakeConfirmRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeConfirmRepo) GetForUpdate(ctx context.Context, id string) (*ConfirmationRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeConfirmRepo) GetByID(ctx context.Context, id string) (*ConfirmationRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeConfirmRepo) FindPending(ctx context.Context, childCode, parentRole string) (*ConfirmationRequest, error) {
	for _, req := range r.requests {
		if req.ChildCode == childCode && req.ParentRole == parentRole && req.Status == StatusPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, ErrRequestNotFound
}

func (r *fakeConfirmRepo) Create(ctx context.Context, req *ConfirmationRequest) error {
	if _, err := r.FindPending(ctx, req.ChildCode, req.ParentRole); err == nil {
		return ErrDuplicatePending
	}
	copied := *req
	if copied.Status == "" {
		copied.Status = StatusPending
	}
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeConfirmRepo) SetStatus(ctx context.Context, id, status string, resolvedAt time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return ErrRequestNotFound
	}
	req.Status = status
	req.ResolvedAt = &resolvedAt
	return nil
}

func (r *fakeConfirmRepo) ListPending(ctx context.Context) ([]ConfirmationRequest, error) {
	var result []ConfirmationRequest
	for _, req := range r.requests {
		if req.Status == StatusPending {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *fakeConfirmRepo) Edges() tree.Repository {
	return r.edgeRepo
}

type recordingNotifier struct {
	created  int
	resolved int
	lastTo   []string
}

func (n *recordingNotifier) RequestCreated(ctx context.Context, req *ConfirmationRequest, approvers []string) {
	n.created++
	n.lastTo = approvers
}

func (n *recordingNotifier) RequestResolved(ctx context.Context, req *ConfirmationRequest) {
	n.resolved++
}

type testHarness struct {
	svc      *Service
	repo     *fakeConfirmRepo
	edges    *fakeEdgeRepo
	notifier *recordingNotifier
}

func newHarness(members map[string]*member.Member, heads map[string][]string, knownCodes ...string) *testHarness {
	edges := newFakeEdgeRepo(knownCodes...)
	repo := newFakeConfirmRepo(edges)
	notifier := &recordingNotifier{}
	gate := newTestGate(members, heads)
	return &testHarness{
		svc:      NewService(repo, gate, WithNotifier(notifier)),
		repo:     repo,
		edges:    edges,
		notifier: notifier,
	}
}

func child() *member.Member {
	return &member.Member{Code: "APPR001", Role: member.RoleApprenant, Active: true}
}

func activeParent() *member.Member {
	return &member.Member{Code: "PARENT001", Role: member.RoleParent, Active: true}
}

func TestRequestCreatesPending(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "my dad")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.ID == "" {
		t.Fatalf("expected an id assigned")
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", req.Status)
	}
	if len(h.edges.edges) != 0 {
		t.Fatalf("expected no edge before confirmation")
	}
	if h.notifier.created != 1 {
		t.Fatalf("expected one creation notification, got %d", h.notifier.created)
	}
	if len(h.notifier.lastTo) != 1 || h.notifier.lastTo[0] != "PARENT001" {
		t.Fatalf("expected the claimed parent notified, got %v", h.notifier.lastTo)
	}
}

func TestRequestDuplicatePending(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	if _, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if !errors.Is(err, ErrDuplicatePending) {
		t.Fatalf("expected ErrDuplicatePending, got %v", err)
	}
	if len(h.repo.requests) != 1 {
		t.Fatalf("expected a single stored request, got %d", len(h.repo.requests))
	}
}

func TestRequestSlotOccupied(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")
	h.edges.edges[edgeKey{"APPR001", "father"}] = &tree.FamilyEdge{
		ChildCode: "APPR001", ParentRole: "father", ParentCode: "OTHER001",
	}

	_, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if !errors.Is(err, tree.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
}

func TestRequestValidation(t *testing.T) {
	h := newHarness(nil, nil, "APPR001")

	if _, err := h.svc.Request(context.Background(), child(), "PARENT001", "uncle", ""); !errors.Is(err, tree.ErrInvalidParentRole) {
		t.Fatalf("expected ErrInvalidParentRole, got %v", err)
	}
	if _, err := h.svc.Request(context.Background(), child(), "APPR001", "father", ""); !errors.Is(err, tree.ErrSelfParent) {
		t.Fatalf("expected ErrSelfParent, got %v", err)
	}
}

func TestResolveConfirmCreatesEdge(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := h.svc.Resolve(context.Background(), parent, req.ID, DecisionConfirm)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Status != StatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", result.Status)
	}
	if result.ResolvedAt == nil {
		t.Fatalf("expected resolution timestamp")
	}

	edge, ok := h.edges.edges[edgeKey{"APPR001", "father"}]
	if !ok {
		t.Fatalf("expected edge created on confirmation")
	}
	if edge.ParentCode != "PARENT001" {
		t.Fatalf("expected edge to the claimed parent, got %q", edge.ParentCode)
	}
	if h.notifier.resolved != 1 {
		t.Fatalf("expected one resolution notification, got %d", h.notifier.resolved)
	}
}

func TestResolveRejectLeavesNoEdge(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := h.svc.Resolve(context.Background(), parent, req.ID, DecisionReject)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Status != StatusRejected {
		t.Fatalf("expected rejected status, got %q", result.Status)
	}
	if len(h.edges.edges) != 0 {
		t.Fatalf("expected no edge after rejection")
	}

	// The slot is free again, so the child may file a fresh claim.
	if _, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", ""); err != nil {
		t.Fatalf("expected a new request after rejection, got %v", err)
	}
}

func TestResolveForbidden(t *testing.T) {
	parent := activeParent()
	bystander := &member.Member{Code: "PROF001", Role: member.RoleProfesseur, Active: true}
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = h.svc.Resolve(context.Background(), bystander, req.ID, DecisionConfirm)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if h.repo.requests[req.ID].Status != StatusPending {
		t.Fatalf("expected request untouched")
	}
}

func TestResolveIdempotence(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := h.svc.Resolve(context.Background(), parent, req.ID, DecisionConfirm); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err = h.svc.Resolve(context.Background(), parent, req.ID, DecisionConfirm)
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if len(h.edges.edges) != 1 {
		t.Fatalf("expected exactly one edge, got %d", len(h.edges.edges))
	}
}

func TestResolveConflictLeavesPending(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "PARENT001")

	req, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Another resolution filled the slot between request and decision.
	h.edges.edges[edgeKey{"APPR001", "father"}] = &tree.FamilyEdge{
		ChildCode: "APPR001", ParentRole: "father", ParentCode: "OTHER001",
	}

	_, err = h.svc.Resolve(context.Background(), parent, req.ID, DecisionConfirm)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if h.repo.requests[req.ID].Status != StatusPending {
		t.Fatalf("expected request still pending after conflict")
	}
}

func TestResolveInvalidDecision(t *testing.T) {
	h := newHarness(nil, nil)
	_, err := h.svc.Resolve(context.Background(), activeParent(), "req-1", "maybe")
	if !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestResolveUnknownParent(t *testing.T) {
	admin := &member.Member{Code: "ADMIN001", Role: member.RoleAdmin, Active: true}
	h := newHarness(map[string]*member.Member{"ADMIN001": admin}, nil, "APPR001")

	req, err := h.svc.Request(context.Background(), child(), "GHOST001", "father", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = h.svc.Resolve(context.Background(), admin, req.ID, DecisionConfirm)
	if !errors.Is(err, tree.ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
	if h.repo.requests[req.ID].Status != StatusPending {
		t.Fatalf("expected request still pending")
	}
}

func TestListResolvable(t *testing.T) {
	parent := activeParent()
	h := newHarness(map[string]*member.Member{"PARENT001": parent}, nil, "APPR001", "APPR002", "PARENT001", "PARENT002")

	if _, err := h.svc.Request(context.Background(), child(), "PARENT001", "father", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	other := &member.Member{Code: "APPR002", Role: member.RoleApprenant, Active: true}
	if _, err := h.svc.Request(context.Background(), other, "PARENT002", "father", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	resolvable, err := h.svc.ListResolvable(context.Background(), parent)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resolvable) != 1 {
		t.Fatalf("expected one resolvable request, got %d", len(resolvable))
	}
	if resolvable[0].ClaimedParentCode != "PARENT001" {
		t.Fatalf("expected the parent's own claim, got %+v", resolvable[0])
	}
}
