package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type stubSavingsGoalService struct {
	createReq    dto.CreateSavingsGoalRequest
	deactivateID uint
	err          error
}

func (s *stubSavingsGoalService) Create(_ context.Context, uid uint, req dto.CreateSavingsGoalRequest) (dto.SavingsGoalView, error) {
	s.createReq = req
	return dto.SavingsGoalView{SavingsGoal: models.SavingsGoal{ID: 1, UserID: uid, Name: req.Name}}, s.err
}

func (s *stubSavingsGoalService) ListActive(_ context.Context, _ uint) ([]dto.SavingsGoalView, error) {
	return []dto.SavingsGoalView{}, s.err
}

func (s *stubSavingsGoalService) Deactivate(_ context.Context, _, goalID uint) error {
	s.deactivateID = goalID
	return s.err
}

func TestCreateSavingsGoal(t *testing.T) {
	svc := &stubSavingsGoalService{}
	resp := &stubResponseHandler{}
	h := NewSavingsGoalHandlers(&Deps{ResponseHandler: resp, SavingsGoalSvc: svc})

	body := `{"name":"Holiday","target_amount":2000,"deadline":"2025-12-31T00:00:00Z"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/savings-goals/", strings.NewReader(body)), 5)
	h.CreateSavingsGoal(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected WriteSuccess, got error %v", resp.handleError)
	}
	if svc.createReq.Name != "Holiday" || svc.createReq.TargetAmount == nil || *svc.createReq.TargetAmount != 2000 {
		t.Fatalf("unexpected request: %+v", svc.createReq)
	}
	if svc.createReq.Deadline == nil || !svc.createReq.Deadline.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline: %v", svc.createReq.Deadline)
	}
}

func TestListSavingsGoals(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewSavingsGoalHandlers(&Deps{ResponseHandler: resp, SavingsGoalSvc: &stubSavingsGoalService{}})

	h.ListSavingsGoals(httptest.NewRecorder(), withUser(httptest.NewRequest(http.MethodGet, "/savings-goals/", nil), 5))

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200, got error %v", resp.handleError)
	}
}

func TestDeleteSavingsGoal(t *testing.T) {
	svc := &stubSavingsGoalService{}
	resp := &stubResponseHandler{}
	h := NewSavingsGoalHandlers(&Deps{ResponseHandler: resp, SavingsGoalSvc: svc})

	req := withChiParam(withUser(httptest.NewRequest(http.MethodDelete, "/savings-goals/3", nil), 5), "goalID", "3")
	h.DeleteSavingsGoal(httptest.NewRecorder(), req)

	if svc.deactivateID != 3 {
		t.Fatalf("deactivated id = %d, want 3", svc.deactivateID)
	}
	msg, ok := resp.writeSuccessData.(dto.MessageResponse)
	if !ok || msg.Message != "Savings goal deactivated successfully" {
		t.Fatalf("unexpected payload: %#v", resp.writeSuccessData)
	}
}
