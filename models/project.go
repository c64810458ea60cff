package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	StatusPending            ProjectStatus = "pending"
	StatusAccepted           ProjectStatus = "accepted"
	StatusRejected           ProjectStatus = "rejected"
	StatusCompleted          ProjectStatus = "completed"
	StatusExtensionRequested ProjectStatus = "deadline_extension_requested"
	StatusExtensionApproved  ProjectStatus = "deadline_extension_approved"
)

// AllStatuses lists every value the status field may hold.
var AllStatuses = []ProjectStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCompleted,
	StatusExtensionRequested,
	StatusExtensionApproved,
}

func (s ProjectStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Stage is the lifecycle position of a project independent of any
// extension negotiation in flight.
type Stage string

const (
	StagePending   Stage = "pending"
	StageAccepted  Stage = "accepted"
	StageRejected  Stage = "rejected"
	StageCompleted Stage = "completed"
)

// ExtensionState is the deadline-negotiation sub-state. Only projects in
// the accepted stage can carry a non-empty extension state.
type ExtensionState string

const (
	ExtensionNone      ExtensionState = "none"
	ExtensionRequested ExtensionState = "requested"
	ExtensionApproved  ExtensionState = "approved"
)

// Stage maps the flat status onto its lifecycle stage. The two extension
// statuses are stages of an accepted project.
func (s ProjectStatus) Stage() Stage {
	switch s {
	case StatusPending:
		return StagePending
	case StatusRejected:
		return StageRejected
	case StatusCompleted:
		return StageCompleted
	default:
		return StageAccepted
	}
}

// Extension maps the flat status onto the negotiation sub-state.
func (s ProjectStatus) Extension() ExtensionState {
	switch s {
	case StatusExtensionRequested:
		return ExtensionRequested
	case StatusExtensionApproved:
		return ExtensionApproved
	default:
		return ExtensionNone
	}
}

// StatusFor recombines a stage and an extension sub-state into the flat
// wire value, rejecting combinations the lifecycle cannot produce (an
// extension negotiation on anything but an accepted project).
func StatusFor(stage Stage, ext ExtensionState) (ProjectStatus, error) {
	if ext != ExtensionNone && stage != StageAccepted {
		return "", fmt.Errorf("stage %q cannot carry extension state %q", stage, ext)
	}
	switch stage {
	case StagePending:
		return StatusPending, nil
	case StageRejected:
		return StatusRejected, nil
	case StageCompleted:
		return StatusCompleted, nil
	case StageAccepted:
		switch ext {
		case ExtensionRequested:
			return StatusExtensionRequested, nil
		case ExtensionApproved:
			return StatusExtensionApproved, nil
		default:
			return StatusAccepted, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", stage)
}

type WorkType string

const (
	WorkTypeShort WorkType = "short"
	WorkTypeLong  WorkType = "long"
)

func (w WorkType) Valid() bool {
	return w == WorkTypeShort || w == WorkTypeLong
}

// DeadlineExtension holds one round of deadline negotiation. Present only
// while a request is pending or after the client answered; cleared when a
// manager rejects the request.
type DeadlineExtension struct {
	RequestedDate time.Time `json:"requestedDate" bson:"requestedDate"`
	Reason        string    `json:"reason" bson:"reason"`
	Approved      bool      `json:"approved" bson:"approved"`
}

type Project struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Client            primitive.ObjectID  `json:"client" bson:"client"`
	Title             string              `json:"title" bson:"title"`
	WorkType          WorkType            `json:"workType" bson:"workType"`
	Deadline          time.Time           `json:"deadline" bson:"deadline"`
	Budget            float64             `json:"budget" bson:"budget"`
	VideoDuration     string              `json:"videoDuration" bson:"videoDuration"`
	Description       string              `json:"description" bson:"description"`
	MaterialLinks     string              `json:"materialLinks" bson:"materialLinks"`
	Status            ProjectStatus       `json:"status" bson:"status"`
	AssignedManager   *primitive.ObjectID `json:"assignedManager" bson:"assignedManager,omitempty"`
	SubmissionLink    string              `json:"submissionLink,omitempty" bson:"submissionLink,omitempty"`
	DeadlineExtension *DeadlineExtension  `json:"deadlineExtension,omitempty" bson:"deadlineExtension,omitempty"`
	CreatedAt         time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// ClientInfo is the client identity slice embedded into manager-facing
// project views.
type ClientInfo struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	WhatsappNumber string             `json:"whatsappNumber" bson:"whatsappNumber"`
}

// ManagerInfo is the manager identity slice embedded into project views.
type ManagerInfo struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
}

// ProjectDetails is a project with its referenced identities populated.
type ProjectDetails struct {
	Project
	ClientInfo  *ClientInfo  `json:"clientInfo,omitempty"`
	ManagerInfo *ManagerInfo `json:"managerInfo,omitempty"`
}
