package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusDecomposition(t *testing.T) {
	tests := []struct {
		status ProjectStatus
		stage  Stage
		ext    ExtensionState
	}{
		{StatusPending, StagePending, ExtensionNone},
		{StatusAccepted, StageAccepted, ExtensionNone},
		{StatusRejected, StageRejected, ExtensionNone},
		{StatusCompleted, StageCompleted, ExtensionNone},
		{StatusExtensionRequested, StageAccepted, ExtensionRequested},
		{StatusExtensionApproved, StageAccepted, ExtensionApproved},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			if got := tc.status.Stage(); got != tc.stage {
				t.Errorf("Stage() = %q, want %q", got, tc.stage)
			}
			if got := tc.status.Extension(); got != tc.ext {
				t.Errorf("Extension() = %q, want %q", got, tc.ext)
			}

			// Recombining must reproduce the flat value.
			back, err := StatusFor(tc.stage, tc.ext)
			if err != nil {
				t.Fatalf("StatusFor(%q, %q) failed: %v", tc.stage, tc.ext, err)
			}
			if back != tc.status {
				t.Errorf("StatusFor round-trip = %q, want %q", back, tc.status)
			}
		})
	}
}

func TestStatusForRejectsIllegalCombinations(t *testing.T) {
	for _, stage := range []Stage{StagePending, StageRejected, StageCompleted} {
		for _, ext := range []ExtensionState{ExtensionRequested, ExtensionApproved} {
			if _, err := StatusFor(stage, ext); err == nil {
				t.Errorf("StatusFor(%q, %q) should be rejected", stage, ext)
			}
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range AllStatuses {
		if !status.Valid() {
			t.Errorf("%q should be a valid status", status)
		}
	}
	for _, status := range []ProjectStatus{"", "archived", "in progress"} {
		if status.Valid() {
			t.Errorf("%q should not be a valid status", status)
		}
	}
}

func TestCallerForRole(t *testing.T) {
	id := primitive.NewObjectID()
	if _, ok := CallerForRole("admin", id); ok {
		t.Error("unknown roles must be rejected")
	}
	caller, ok := CallerForRole(RoleClient, id)
	if !ok {
		t.Fatal("client role rejected")
	}
	if caller.Role() != RoleClient {
		t.Errorf("expected client role, got %q", caller.Role())
	}
	if _, ok := caller.(ClientCaller); !ok {
		t.Error("client role must produce a ClientCaller")
	}
}
