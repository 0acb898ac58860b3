package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
)

func TestDecodeJSONErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "syntax", body: `{"amount":`, wantMsg: "request body must be valid JSON"},
		{name: "wrong type", body: `{"amount":"ten"}`, wantMsg: "field amount has the wrong type"},
		{name: "bad date", body: `{"amount":1,"date":"31/12/2025"}`, wantMsg: "dates must be an RFC 3339 timestamp, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD"},
		{name: "too large", body: `{"description":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantMsg: "request body is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTransactionService{}
			resp := &stubResponseHandler{}
			h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

			req := withUser(httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(tt.body)), 1)
			h.CreateTransaction(httptest.NewRecorder(), req)

			var verr *errs.ValidationError
			if !errors.As(resp.handleError, &verr) {
				t.Fatalf("expected ValidationError, got %v", resp.handleError)
			}
			if verr.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
			if strings.Contains(verr.Message, "json:") || strings.Contains(verr.Message, "parsing time") {
				t.Fatalf("decoder internals in message: %q", verr.Message)
			}
		})
	}
}

func TestCreateTransactionDateFormats(t *testing.T) {
	tests := []struct {
		date string
		want time.Time
	}{
		{date: "2025-01-12", want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
		{date: "2025-01-12T09:15:00", want: time.Date(2025, 1, 12, 9, 15, 0, 0, time.UTC)},
		{date: "2025-01-12T09:15:00-05:00", want: time.Date(2025, 1, 12, 14, 15, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			svc := &stubTransactionService{}
			resp := &stubResponseHandler{}
			h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

			body := `{"amount":5,"type":"expense","category":"Food","date":"` + tt.date + `"}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(body)), 1)
			h.CreateTransaction(httptest.NewRecorder(), req)

			if !resp.writeSuccessCalled {
				t.Fatalf("expected WriteSuccess, got error %v", resp.handleError)
			}
			if svc.createReq.Date == nil || !svc.createReq.Date.Equal(tt.want) {
				t.Fatalf("date = %v, want %v", svc.createReq.Date, tt.want)
			}
		})
	}
}

func TestCreateSavingsGoalDeadlineFormats(t *testing.T) {
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, deadline := range []string{"2025-12-31", "2025-12-31T00:00:00", "2025-12-31T00:00:00Z"} {
		t.Run(deadline, func(t *testing.T) {
			svc := &stubSavingsGoalService{}
			resp := &stubResponseHandler{}
			h := NewSavingsGoalHandlers(&Deps{ResponseHandler: resp, SavingsGoalSvc: svc})

			body := `{"name":"Holiday","target_amount":2000,"deadline":"` + deadline + `"}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/savings-goals/", strings.NewReader(body)), 5)
			h.CreateSavingsGoal(httptest.NewRecorder(), req)

			if !resp.writeSuccessCalled {
				t.Fatalf("expected WriteSuccess, got error %v", resp.handleError)
			}
			if svc.createReq.Deadline == nil || !svc.createReq.Deadline.Equal(want) {
				t.Fatalf("deadline = %v, want %v", svc.createReq.Deadline, want)
			}
		})
	}
}
