package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/logging"
	"github.com/SamarthKasar123/Primewave/middleware"
	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

// httpStatus maps the service error taxonomy onto response codes.
func httpStatus(err error) int {
	switch services.KindOf(err) {
	case services.KindAuthentication:
		return http.StatusUnauthorized
	case services.KindAuthorization:
		return http.StatusForbidden
	case services.KindValidation, services.KindStateConflict:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Request failed: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func caller(r *http.Request) (models.Caller, bool) {
	return middleware.CallerFrom(r.Context())
}

func projectID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)["id"])
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	var input services.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	project, err := h.Service.CreateProject(r.Context(), c, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetClientProjects(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	projects, err := h.Service.GetClientProjects(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	projects, err := h.Service.GetAllProjects(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	project, err := h.Service.GetProject(r.Context(), c, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	var body struct {
		Status models.ProjectStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	project, err := h.Service.UpdateStatus(r.Context(), c, id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	var body struct {
		NewDeadline string `json:"newDeadline"`
		Reason      string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	project, err := h.Service.RequestExtension(r.Context(), c, id, body.NewDeadline, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) RespondExtension(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	var body struct {
		NewDeadline string `json:"newDeadline"`
		Reason      string `json:"reason"`
		Approved    bool   `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	project, err := h.Service.RespondExtension(r.Context(), c, id, body.NewDeadline, body.Reason, body.Approved)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ApproveExtension(w http.ResponseWriter, r *http.Request) {
	h.extensionVerdict(w, r, h.Service.ApproveExtension)
}

func (h *ProjectHandler) RejectExtension(w http.ResponseWriter, r *http.Request) {
	h.extensionVerdict(w, r, h.Service.RejectExtension)
}

// extensionVerdict is shared by the bodyless approve and reject routes.
func (h *ProjectHandler) extensionVerdict(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, c models.Caller, id primitive.ObjectID) (*models.Project, error)) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	project, err := op(r.Context(), c, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) SubmitWork(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}
	id, err := projectID(r)
	if err != nil {
		writeError(w, services.NotFound("Project not found"))
		return
	}

	var body struct {
		SubmissionLink string `json:"submissionLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	project, err := h.Service.SubmitWork(r.Context(), c, id, body.SubmissionLink)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
