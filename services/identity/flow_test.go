package identity

import (
	"errors"
	"testing"

	"bookingportal/models"
)

func TestResolveFlow_PriorityOrder(t *testing.T) {
	bare := &models.AppointmentSession{SessionID: "s"}
	bound := &models.AppointmentSession{SessionID: "s", UserID: intPtr(7)}

	tests := []struct {
		name     string
		in       FlowInput
		want     FlowState
		mismatch bool
	}{
		{"error wins over everything", FlowInput{Session: bound, Auth: authAs(7), User: &models.PendingUser{UserID: 7, NextStep: models.NextStepDone}, Err: errors.New("boom")}, FlowError, false},
		{"error wins over missing session", FlowInput{Err: errors.New("boom")}, FlowError, false},
		{"missing session", FlowInput{Auth: authAs(7)}, FlowNoSession, false},
		{"no user no auth", FlowInput{Session: bare}, FlowSessionNoUserNoAuth, false},
		{"no user no auth ignores stale pending user", FlowInput{Session: bare, User: &models.PendingUser{UserID: 3, NextStep: models.NextStepVerifyEmail}}, FlowSessionNoUserNoAuth, false},
		{"bound user no auth", FlowInput{Session: bound}, FlowSessionUserNoAuth, false},
		{"bound user other auth is a mismatch", FlowInput{Session: bound, Auth: authAs(9)}, FlowSessionUserNoAuth, true},
		{"collect email", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: models.NextStepCollectEmail}}, FlowVerifyEmail, false},
		{"verify email", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: models.NextStepVerifyEmail}}, FlowVerifyEmail, false},
		{"verify mobile", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: models.NextStepVerifyMobile}}, FlowVerifyMobile, false},
		{"collect mobile", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: models.NextStepCollectMobile}}, FlowVerifyMobile, false},
		{"attach session", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: models.NextStepAttachSession}}, FlowAttachable, false},
		{"authenticated without pending user", FlowInput{Session: bare, Auth: authAs(9)}, FlowAttachable, false},
		{"already attached", FlowInput{Session: bound, Auth: authAs(7), User: &models.PendingUser{UserID: 7, NextStep: models.NextStepDone}}, FlowDone, false},
		{"attached user still verifying", FlowInput{Session: bound, Auth: authAs(7), User: &models.PendingUser{UserID: 7, NextStep: models.NextStepVerifyMobile}}, FlowVerifyMobile, false},
		{"unknown next step is diagnosed", FlowInput{Session: bare, Auth: authAs(9), User: &models.PendingUser{UserID: 9, NextStep: "SEND_PIGEON"}}, FlowError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveFlow(tc.in)
			if got.State != tc.want {
				t.Fatalf("expected %s, got %s (%+v)", tc.want, got.State, got)
			}
			if got.Mismatch != tc.mismatch {
				t.Fatalf("expected mismatch=%v, got %v", tc.mismatch, got.Mismatch)
			}
			if again := ResolveFlow(tc.in); again != got {
				t.Fatalf("ResolveFlow is not deterministic: %+v vs %+v", got, again)
			}
		})
	}
}

func TestResolveFlow_UnknownStepCarriesDiagnostic(t *testing.T) {
	got := ResolveFlow(FlowInput{
		Session: &models.AppointmentSession{},
		Auth:    authAs(1),
		User:    &models.PendingUser{UserID: 1, NextStep: "SEND_PIGEON"},
	})
	if got.Diagnostic == "" {
		t.Fatal("expected a diagnostic for an unknown next step")
	}
}

func TestMismatch(t *testing.T) {
	session := &models.AppointmentSession{UserID: intPtr(7)}

	if !Mismatch(session, authAs(9)) {
		t.Fatal("expected mismatch for session user 7 and auth user 9")
	}
	if Mismatch(session, authAs(7)) {
		t.Fatal("expected no mismatch for matching users")
	}
	if Mismatch(session, nil) {
		t.Fatal("expected no mismatch without auth")
	}
	if Mismatch(&models.AppointmentSession{}, authAs(9)) {
		t.Fatal("expected no mismatch without a session user")
	}
}

func TestFlowResult_CanAttach(t *testing.T) {
	mismatched := ResolveFlow(FlowInput{Session: &models.AppointmentSession{UserID: intPtr(7)}, Auth: authAs(9)})
	if mismatched.CanAttach() {
		t.Fatal("attach must be disabled on mismatch")
	}
	ready := ResolveFlow(FlowInput{Session: &models.AppointmentSession{}, Auth: authAs(9)})
	if !ready.CanAttach() {
		t.Fatalf("expected attach enabled, got %+v", ready)
	}
}
