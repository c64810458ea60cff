package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/logging"
	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/store"
)

// ProjectService owns the project lifecycle: creation, listing, the
// status transitions and the deadline-extension negotiation.
type ProjectService struct {
	Projects store.ProjectStore
	Clients  store.ClientStore
	Managers store.ManagerStore
	Notifier *NotificationService
}

func NewProjectService(projects store.ProjectStore, clients store.ClientStore, managers store.ManagerStore, notifier *NotificationService) *ProjectService {
	return &ProjectService{
		Projects: projects,
		Clients:  clients,
		Managers: managers,
		Notifier: notifier,
	}
}

// CreateProjectInput carries the client-submitted fields. Deadline stays a
// string until validation so a malformed date is a validation error, not a
// decode failure.
type CreateProjectInput struct {
	Title         string  `json:"title"`
	WorkType      string  `json:"workType"`
	Deadline      string  `json:"deadline"`
	Budget        float64 `json:"budget"`
	VideoDuration string  `json:"videoDuration"`
	Description   string  `json:"description"`
	MaterialLinks string  `json:"materialLinks"`
}

// parseDate accepts both plain dates and full timestamps, the two shapes
// the frontend date pickers produce.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (s *ProjectService) CreateProject(ctx context.Context, caller models.Caller, input CreateProjectInput) (*models.Project, error) {
	if _, ok := caller.(models.ClientCaller); !ok {
		return nil, Forbidden("Only clients can create projects")
	}

	switch {
	case input.Title == "":
		return nil, Invalid("Title is required")
	case input.WorkType == "":
		return nil, Invalid("Work type is required")
	case input.Deadline == "":
		return nil, Invalid("Deadline is required")
	case input.VideoDuration == "":
		return nil, Invalid("Video duration is required")
	case input.Description == "":
		return nil, Invalid("Description is required")
	case input.MaterialLinks == "":
		return nil, Invalid("Material links are required")
	}
	if !models.WorkType(input.WorkType).Valid() {
		return nil, Invalid("Work type must be short or long")
	}
	if input.Budget <= 0 {
		return nil, Invalid("Budget must be a positive number")
	}
	deadline, err := parseDate(input.Deadline)
	if err != nil {
		return nil, Invalid("Deadline must be a valid date")
	}

	now := time.Now()
	project := &models.Project{
		Client:        caller.CallerID(),
		Title:         input.Title,
		WorkType:      models.WorkType(input.WorkType),
		Deadline:      deadline,
		Budget:        input.Budget,
		VideoDuration: input.VideoDuration,
		Description:   input.Description,
		MaterialLinks: input.MaterialLinks,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Projects.Insert(ctx, project); err != nil {
		return nil, Internal("Failed to create project")
	}

	logging.Logger.Infof("Project %s created by client %s", project.ID.Hex(), caller.CallerID().Hex())
	return project, nil
}

// GetClientProjects lists the caller's own projects, newest first.
func (s *ProjectService) GetClientProjects(ctx context.Context, caller models.Caller) ([]models.Project, error) {
	if _, ok := caller.(models.ClientCaller); !ok {
		return nil, Forbidden("Access denied")
	}
	projects, err := s.Projects.FindByClient(ctx, caller.CallerID())
	if err != nil {
		return nil, Internal("Failed to fetch projects")
	}
	return projects, nil
}

// GetAllProjects lists every project with the owning client's identity
// populated, newest first. Manager only.
func (s *ProjectService) GetAllProjects(ctx context.Context, caller models.Caller) ([]models.ProjectDetails, error) {
	if _, ok := caller.(models.ManagerCaller); !ok {
		return nil, Forbidden("Access denied")
	}
	projects, err := s.Projects.FindAll(ctx)
	if err != nil {
		return nil, Internal("Failed to fetch projects")
	}

	details := make([]models.ProjectDetails, 0, len(projects))
	for i := range projects {
		details = append(details, models.ProjectDetails{
			Project:    projects[i],
			ClientInfo: s.clientInfo(ctx, projects[i].Client),
		})
	}
	return details, nil
}

// GetProject fetches one project with client and assigned manager
// populated. A client sees only their own projects; a manager sees a
// project while it is still unclaimed or pending, and afterwards only if
// they are the assigned manager.
func (s *ProjectService) GetProject(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.ProjectDetails, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	switch c := caller.(type) {
	case models.ClientCaller:
		if project.Client != c.ID {
			return nil, Forbidden("Access denied")
		}
	case models.ManagerCaller:
		if project.AssignedManager != nil && *project.AssignedManager != c.ID && project.Status != models.StatusPending {
			return nil, Forbidden("Access denied")
		}
	}

	details := &models.ProjectDetails{
		Project:    *project,
		ClientInfo: s.clientInfo(ctx, project.Client),
	}
	if project.AssignedManager != nil {
		details.ManagerInfo = s.managerInfo(ctx, *project.AssignedManager)
	}
	return details, nil
}

// UpdateStatus moves a project to accepted, rejected or completed. The
// first manager to accept becomes the assigned manager and stays assigned
// through every later transition; there is no ownership gate here, so two
// managers racing on a pending project is last-write-wins on status.
func (s *ProjectService) UpdateStatus(ctx context.Context, caller models.Caller, id primitive.ObjectID, status models.ProjectStatus) (*models.Project, error) {
	manager, ok := caller.(models.ManagerCaller)
	if !ok {
		return nil, Forbidden("Only managers can update project status")
	}
	if !settableStatuses[status] {
		return nil, Invalid("Invalid status")
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.StatusAccepted && project.AssignedManager == nil {
		managerID := manager.ID
		project.AssignedManager = &managerID
	}
	project.Status = status

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, project, fmt.Sprintf("Your project %q is now %s", project.Title, status))
	return project, nil
}

// RequestExtension records a manager's ask for a later deadline and parks
// the project in the negotiation state until the client or a manager
// resolves it.
func (s *ProjectService) RequestExtension(ctx context.Context, caller models.Caller, id primitive.ObjectID, newDeadline, reason string) (*models.Project, error) {
	if _, ok := caller.(models.ManagerCaller); !ok {
		return nil, Forbidden("Only managers can request deadline extensions")
	}
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	requestedDate, err := parseDate(newDeadline)
	if err != nil {
		return nil, Invalid("New deadline must be a valid date")
	}

	project.DeadlineExtension = &models.DeadlineExtension{
		RequestedDate: requestedDate,
		Reason:        reason,
		Approved:      false,
	}
	project.Status = models.StatusExtensionRequested

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, project, fmt.Sprintf("A deadline extension to %s was requested for your project %q", requestedDate.Format("2006-01-02"), project.Title))
	return project, nil
}

// RespondExtension is the owning client's answer. Approval moves the
// deadline and the status; refusal reverts to accepted but keeps the
// answered record with approved=false.
func (s *ProjectService) RespondExtension(ctx context.Context, caller models.Caller, id primitive.ObjectID, newDeadline, reason string, approved bool) (*models.Project, error) {
	client, ok := caller.(models.ClientCaller)
	if !ok {
		return nil, Forbidden("Only clients can respond to deadline extensions")
	}
	if approved && newDeadline == "" {
		return nil, Invalid("New deadline is required when approving")
	}

	var requestedDate time.Time
	if newDeadline != "" {
		parsed, err := parseDate(newDeadline)
		if err != nil {
			return nil, Invalid("New deadline must be a valid date")
		}
		requestedDate = parsed
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Client != client.ID {
		return nil, Forbidden("You can only respond to your own projects")
	}

	project.DeadlineExtension = &models.DeadlineExtension{
		RequestedDate: requestedDate,
		Reason:        reason,
		Approved:      approved,
	}
	if approved {
		project.Deadline = requestedDate
		project.Status = models.StatusExtensionApproved
	} else {
		project.Status = models.StatusAccepted
	}

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ApproveExtension is the manager-side approval of an open request.
func (s *ProjectService) ApproveExtension(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Project, error) {
	if _, ok := caller.(models.ManagerCaller); !ok {
		return nil, Forbidden("Only managers can approve deadline extensions")
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasOpenExtensionRequest(project) {
		return nil, StateConflict("No extension request found for this project")
	}

	if project.DeadlineExtension != nil && !project.DeadlineExtension.RequestedDate.IsZero() {
		project.Deadline = project.DeadlineExtension.RequestedDate
	}
	project.Status = models.StatusExtensionApproved

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, project, fmt.Sprintf("The deadline extension for your project %q was approved", project.Title))
	return project, nil
}

// RejectExtension refuses an open request: the project reverts to
// accepted and the extension record is cleared so a later request starts
// clean.
func (s *ProjectService) RejectExtension(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Project, error) {
	if _, ok := caller.(models.ManagerCaller); !ok {
		return nil, Forbidden("Only managers can reject deadline extensions")
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasOpenExtensionRequest(project) {
		return nil, StateConflict("No extension request found for this project")
	}

	project.Status = models.StatusAccepted
	project.DeadlineExtension = nil

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, project, fmt.Sprintf("The deadline extension for your project %q was rejected", project.Title))
	return project, nil
}

// SubmitWork delivers the finished edit. Once a manager is assigned only
// that manager may submit; an unassigned project accepts a submission from
// any manager.
func (s *ProjectService) SubmitWork(ctx context.Context, caller models.Caller, id primitive.ObjectID, submissionLink string) (*models.Project, error) {
	manager, ok := caller.(models.ManagerCaller)
	if !ok {
		return nil, Forbidden("Only managers can submit completed projects")
	}
	if submissionLink == "" {
		return nil, Invalid("Submission link is required")
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.AssignedManager != nil && *project.AssignedManager != manager.ID {
		return nil, Forbidden("Only the assigned manager can submit this project")
	}

	project.SubmissionLink = submissionLink
	project.Status = models.StatusCompleted

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, project, fmt.Sprintf("Your project %q was completed and submitted", project.Title))
	return project, nil
}

func (s *ProjectService) findProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, err := s.Projects.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFound("Project not found")
		}
		return nil, Internal("Failed to fetch project")
	}
	return project, nil
}

// save refreshes updatedAt and writes the whole document back.
func (s *ProjectService) save(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	if err := s.Projects.Replace(ctx, project); err != nil {
		if err == store.ErrNotFound {
			return NotFound("Project not found")
		}
		return Internal("Failed to update project")
	}
	return nil
}

func (s *ProjectService) clientInfo(ctx context.Context, id primitive.ObjectID) *models.ClientInfo {
	client, err := s.Clients.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return &models.ClientInfo{
		ID:             client.ID,
		Name:           client.Name,
		Email:          client.Email,
		WhatsappNumber: client.WhatsappNumber,
	}
}

func (s *ProjectService) managerInfo(ctx context.Context, id primitive.ObjectID) *models.ManagerInfo {
	manager, err := s.Managers.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return &models.ManagerInfo{
		ID:       manager.ID,
		Username: manager.Username,
		Email:    manager.Email,
	}
}

// notifyClient emails the project owner about a lifecycle event. Delivery
// is best effort: failures are logged and never surfaced to the caller.
func (s *ProjectService) notifyClient(ctx context.Context, project *models.Project, message string) {
	if s.Notifier == nil {
		return
	}
	client, err := s.Clients.FindByID(ctx, project.Client)
	if err != nil {
		logging.Logger.Warnf("Notification skipped, client %s not found: %v", project.Client.Hex(), err)
		return
	}
	if err := s.Notifier.Send(client.Email, "Primewave project update", message); err != nil {
		logging.Logger.Warnf("Failed to notify client %s: %v", client.Email, err)
	}
}
