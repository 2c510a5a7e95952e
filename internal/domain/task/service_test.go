package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type fakeTaskRepo struct {
	byID *Task

	claimErr   error
	claimedBy  uuid.UUID
	startedBy  uuid.UUID
	citizenID  uuid.UUID
	savedProof *Proof
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, nil
}

func (f *fakeTaskRepo) ListAvailable(ctx context.Context, search string) ([]*AvailableTask, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*MyTask, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListManaged(ctx context.Context, filter *ManagedFilter) ([]*ManagedTask, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimedBy = volunteerID
	f.byID.AssignedVolunteerID = uuid.NullUUID{UUID: volunteerID, Valid: true}
	f.byID.Status = StatusAssigned
	return nil
}

func (f *fakeTaskRepo) Start(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error {
	f.startedBy = volunteerID
	f.byID.Status = StatusInProgress
	return nil
}

func (f *fakeTaskRepo) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID, proof *Proof) (uuid.UUID, error) {
	f.savedProof = proof
	f.byID.Status = StatusCompleted
	return f.citizenID, nil
}

type fakeAccruer struct {
	calls []uuid.UUID
}

func (f *fakeAccruer) Accrue(ctx context.Context, userID uuid.UUID) error {
	f.calls = append(f.calls, userID)
	return nil
}

type fakeURLs struct{}

func (fakeURLs) URL(key string) string { return "/uploads/" + key }

func pendingTask() *Task {
	return &Task{
		ID:       uuid.New(),
		ReportID: uuid.New(),
		Status:   StatusPending,
	}
}

func assignedTask(volunteerID uuid.UUID) *Task {
	t := pendingTask()
	t.Status = StatusAssigned
	t.AssignedVolunteerID = uuid.NullUUID{UUID: volunteerID, Valid: true}
	return t
}

func TestClaimUnassignedTask(t *testing.T) {
	repo := &fakeTaskRepo{byID: pendingTask()}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})
	volunteerID := uuid.New()

	if err := svc.Claim(context.Background(), repo.byID.ID, volunteerID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.claimedBy != volunteerID {
		t.Fatal("expected claim to reach the repository")
	}
}

func TestReclaimOwnTaskSucceeds(t *testing.T) {
	volunteerID := uuid.New()
	repo := &fakeTaskRepo{byID: assignedTask(volunteerID)}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	if err := svc.Claim(context.Background(), repo.byID.ID, volunteerID); err != nil {
		t.Fatalf("expected re-claim by owner to succeed, got %v", err)
	}
}

func TestClaimTaskHeldByAnotherVolunteer(t *testing.T) {
	repo := &fakeTaskRepo{byID: assignedTask(uuid.New())}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	err := svc.Claim(context.Background(), repo.byID.ID, uuid.New())
	if err != ErrTaskAlreadyClaimed {
		t.Fatalf("expected ErrTaskAlreadyClaimed, got %v", err)
	}
}

func TestClaimCompletedTask(t *testing.T) {
	task := pendingTask()
	task.Status = StatusCompleted
	svc := NewService(&fakeTaskRepo{byID: task}, &fakeAccruer{}, fakeURLs{})

	err := svc.Claim(context.Background(), task.ID, uuid.New())
	if err != ErrTaskNotClaimable {
		t.Fatalf("expected ErrTaskNotClaimable, got %v", err)
	}
}

func TestClaimUnknownTask(t *testing.T) {
	svc := NewService(&fakeTaskRepo{}, &fakeAccruer{}, fakeURLs{})

	err := svc.Claim(context.Background(), uuid.New(), uuid.New())
	if err != ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestClaimLosesRaceToConcurrentClaim(t *testing.T) {
	// The snapshot read sees an unassigned task, but the conditional
	// update inside the repository transaction already lost the race.
	repo := &fakeTaskRepo{byID: pendingTask(), claimErr: ErrTaskAlreadyClaimed}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	err := svc.Claim(context.Background(), repo.byID.ID, uuid.New())
	if err != ErrTaskAlreadyClaimed {
		t.Fatalf("expected ErrTaskAlreadyClaimed, got %v", err)
	}
}

func TestStartRequiresOwnership(t *testing.T) {
	repo := &fakeTaskRepo{byID: assignedTask(uuid.New())}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	err := svc.Start(context.Background(), repo.byID.ID, uuid.New())
	if err != ErrTaskNotOwned {
		t.Fatalf("expected ErrTaskNotOwned, got %v", err)
	}
}

func TestStartOwnedTask(t *testing.T) {
	volunteerID := uuid.New()
	repo := &fakeTaskRepo{byID: assignedTask(volunteerID)}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	if err := svc.Start(context.Background(), repo.byID.ID, volunteerID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.startedBy != volunteerID {
		t.Fatal("expected start to reach the repository")
	}
}

func TestStartCompletedTask(t *testing.T) {
	volunteerID := uuid.New()
	task := assignedTask(volunteerID)
	task.Status = StatusCompleted
	svc := NewService(&fakeTaskRepo{byID: task}, &fakeAccruer{}, fakeURLs{})

	err := svc.Start(context.Background(), task.ID, volunteerID)
	if err != ErrTaskNotCompletable {
		t.Fatalf("expected ErrTaskNotCompletable, got %v", err)
	}
}

func TestCompleteRecordsProofAndAccrues(t *testing.T) {
	volunteerID := uuid.New()
	citizenID := uuid.New()
	repo := &fakeTaskRepo{byID: assignedTask(volunteerID), citizenID: citizenID}
	accruer := &fakeAccruer{}
	svc := NewService(repo, accruer, fakeURLs{})

	resp, err := svc.Complete(context.Background(), repo.byID.ID, volunteerID,
		&CompleteRequest{Notes: "cleared the spot"}, "proofs/2026/01/p.jpg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.savedProof == nil {
		t.Fatal("expected proof row to be created")
	}
	if repo.savedProof.VolunteerID != volunteerID {
		t.Fatal("expected proof to belong to the completing volunteer")
	}
	if repo.savedProof.Notes != "cleared the spot" {
		t.Fatalf("unexpected proof notes: %q", repo.savedProof.Notes)
	}
	if len(accruer.calls) != 1 || accruer.calls[0] != citizenID {
		t.Fatalf("expected one accrual for the report's citizen, got %v", accruer.calls)
	}
	if resp.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", resp.Status)
	}
}

func TestCompleteInProgressTask(t *testing.T) {
	volunteerID := uuid.New()
	task := assignedTask(volunteerID)
	task.Status = StatusInProgress
	repo := &fakeTaskRepo{byID: task, citizenID: uuid.New()}
	svc := NewService(repo, &fakeAccruer{}, fakeURLs{})

	if _, err := svc.Complete(context.Background(), task.ID, volunteerID,
		&CompleteRequest{}, "proofs/2026/01/p.jpg"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCompleteAlreadyCompletedTask(t *testing.T) {
	volunteerID := uuid.New()
	task := assignedTask(volunteerID)
	task.Status = StatusCompleted
	svc := NewService(&fakeTaskRepo{byID: task}, &fakeAccruer{}, fakeURLs{})

	_, err := svc.Complete(context.Background(), task.ID, volunteerID,
		&CompleteRequest{}, "proofs/2026/01/p.jpg")
	if err != ErrTaskNotCompletable {
		t.Fatalf("expected ErrTaskNotCompletable, got %v", err)
	}
}

func TestCompleteRequiresOwnership(t *testing.T) {
	task := assignedTask(uuid.New())
	svc := NewService(&fakeTaskRepo{byID: task}, &fakeAccruer{}, fakeURLs{})

	_, err := svc.Complete(context.Background(), task.ID, uuid.New(),
		&CompleteRequest{}, "proofs/2026/01/p.jpg")
	if err != ErrTaskNotOwned {
		t.Fatalf("expected ErrTaskNotOwned, got %v", err)
	}
}
