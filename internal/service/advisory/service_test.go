package advisory

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"agrihub/internal/domain"
	advisorrepo "agrihub/internal/repository/advisor"
)

type stubAdvisorRepo struct {
	advisor     *domain.Advisor
	getErr      error
	created     *domain.Consultation
	createErr   error
	lastUpsert  advisorrepo.UpsertInput
	byAdvisorID string
}

func (s *stubAdvisorRepo) Upsert(_ context.Context, in advisorrepo.UpsertInput) (*domain.Advisor, error) {
	s.lastUpsert = in
	return &domain.Advisor{ID: "a1", UserID: in.UserID, Available: in.Available}, nil
}

func (s *stubAdvisorRepo) GetByID(_ context.Context, _ string) (*domain.Advisor, error) {
	return s.advisor, s.getErr
}

func (s *stubAdvisorRepo) GetByUserID(_ context.Context, _ string) (*domain.Advisor, error) {
	return s.advisor, s.getErr
}

func (s *stubAdvisorRepo) List(_ context.Context, _ bool) ([]domain.Advisor, error) {
	return nil, nil
}

func (s *stubAdvisorRepo) CreateConsultation(_ context.Context, c domain.Consultation) (*domain.Consultation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	out := c
	out.ID = "c1"
	s.created = &out
	return &out, nil
}

func (s *stubAdvisorRepo) ListConsultationsByFarmer(_ context.Context, _ string) ([]domain.Consultation, error) {
	return nil, nil
}

func (s *stubAdvisorRepo) ListConsultationsByAdvisor(_ context.Context, advisorID string) ([]domain.Consultation, error) {
	s.byAdvisorID = advisorID
	return nil, nil
}

func (s *stubAdvisorRepo) SetConsultationStatus(_ context.Context, _, _ string) error {
	return nil
}

type recordingNotifier struct {
	sent []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBookValidation(t *testing.T) {
	svc := New(&stubAdvisorRepo{}, nil, testLogger())
	if _, err := svc.Book(context.Background(), "f1", BookInput{}); err == nil || err.Error() != "advisorId required" {
		t.Fatalf("expected advisorId error, got %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if _, err := svc.Book(context.Background(), "f1", BookInput{AdvisorID: "a1", ScheduledAt: &past}); err == nil {
		t.Fatalf("expected past-schedule error")
	}
}

func TestBookUnknownOrUnavailableAdvisor(t *testing.T) {
	svc := New(&stubAdvisorRepo{getErr: domain.ErrNotFound}, nil, testLogger())
	if _, err := svc.Book(context.Background(), "f1", BookInput{AdvisorID: "ghost"}); err == nil || err.Error() != "advisor not found" {
		t.Fatalf("expected advisor not found, got %v", err)
	}

	svc = New(&stubAdvisorRepo{advisor: &domain.Advisor{ID: "a1", UserID: "u9"}}, nil, testLogger())
	if _, err := svc.Book(context.Background(), "f1", BookInput{AdvisorID: "a1"}); err == nil {
		t.Fatalf("expected unavailable-advisor error")
	}
}

func TestBookNotifiesAdvisorUser(t *testing.T) {
	repo := &stubAdvisorRepo{advisor: &domain.Advisor{ID: "a1", UserID: "u9", Available: true}}
	notifier := &recordingNotifier{}
	svc := New(repo, notifier, testLogger())

	c, err := svc.Book(context.Background(), "f1", BookInput{AdvisorID: "a1", Notes: "leaf blight"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != domain.ConsultationStatusRequested || c.DurationMinutes != 30 {
		t.Fatalf("unexpected consultation defaults: %+v", c)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].UserID != "u9" {
		t.Fatalf("expected advisor's user notified, got %+v", notifier.sent)
	}
	if notifier.sent[0].Kind != domain.NotificationConsultationBooked {
		t.Fatalf("unexpected notification kind: %s", notifier.sent[0].Kind)
	}
}

func TestUpsertProfileValidation(t *testing.T) {
	svc := New(&stubAdvisorRepo{}, nil, testLogger())
	if _, err := svc.UpsertProfile(context.Background(), "u1", UpsertInput{ExperienceYears: -1}); err == nil {
		t.Fatalf("expected validation error")
	}

	a, err := svc.UpsertProfile(context.Background(), "u1", UpsertInput{Specialization: []string{"soil"}, Available: true})
	if err != nil || a.UserID != "u1" {
		t.Fatalf("unexpected result: %v / %v", a, err)
	}
}

func TestListForAdvisorResolvesAdvisorRow(t *testing.T) {
	repo := &stubAdvisorRepo{advisor: &domain.Advisor{ID: "a7", UserID: "u1"}}
	svc := New(repo, nil, testLogger())
	if _, err := svc.ListForAdvisor(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byAdvisorID != "a7" {
		t.Fatalf("expected lookup by advisor row id, got %q", repo.byAdvisorID)
	}
}
