package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/middleware"
	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/services"
	"github.com/SamarthKasar123/Primewave/store"
	"github.com/SamarthKasar123/Primewave/utils"
)

type testServer struct {
	router    *mux.Router
	projects  *store.MemoryProjectStore
	clientID  primitive.ObjectID
	managerID primitive.ObjectID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	projects := store.NewMemoryProjectStore()
	clients := store.NewMemoryClientStore()
	managers := store.NewMemoryManagerStore()
	ctx := context.Background()

	client := &models.Client{Name: "Asha", Email: "asha@example.com", WhatsappNumber: "+911111111111"}
	manager := &models.Manager{Username: "siddharth", Email: "siddharth@primewave.com"}
	if err := clients.Insert(ctx, client); err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	if err := managers.Insert(ctx, manager); err != nil {
		t.Fatalf("seeding manager: %v", err)
	}

	projectService := services.NewProjectService(projects, clients, managers, nil)
	authService := services.NewAuthService(clients, managers, map[string]bool{})

	projectHandler := NewProjectHandler(projectService)
	loginHandler := NewLoginHandler(authService)
	healthHandler := NewHealthHandler(projects)

	r := mux.NewRouter()
	r.HandleFunc("/api/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/api/auth/client/register", loginHandler.RegisterClient).Methods("POST")
	r.HandleFunc("/api/auth/client/login", loginHandler.LoginClient).Methods("POST")
	r.HandleFunc("/api/auth/manager/login", loginHandler.LoginManager).Methods("POST")

	protected := r.PathPrefix("/api/projects").Subrouter()
	protected.Use(middleware.JWTAuth)
	protected.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	protected.HandleFunc("/client/my-projects", projectHandler.GetClientProjects).Methods("GET")
	protected.HandleFunc("/manager/all", projectHandler.GetAllProjects).Methods("GET")
	protected.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	protected.HandleFunc("/{id}/status", projectHandler.UpdateStatus).Methods("PATCH")
	protected.HandleFunc("/{id}/request-extension", projectHandler.RequestExtension).Methods("PATCH")
	protected.HandleFunc("/{id}/respond-extension", projectHandler.RespondExtension).Methods("PATCH")
	protected.HandleFunc("/{id}/extension/approve", projectHandler.ApproveExtension).Methods("PATCH")
	protected.HandleFunc("/{id}/extension/reject", projectHandler.RejectExtension).Methods("PATCH")
	protected.HandleFunc("/{id}/submit", projectHandler.SubmitWork).Methods("PATCH")

	return &testServer{
		router:    r,
		projects:  projects,
		clientID:  client.ID,
		managerID: manager.ID,
	}
}

func (s *testServer) token(t *testing.T, role string, id primitive.ObjectID) string {
	t.Helper()
	token, err := utils.GenerateToken(id.Hex(), role)
	if err != nil {
		t.Fatalf("issuing test token: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"title":         "Promo",
		"workType":      "short",
		"deadline":      "2025-06-01",
		"budget":        100,
		"videoDuration": "1 min",
		"description":   "d",
		"materialLinks": "l",
	}
}

func (s *testServer) createProject(t *testing.T) models.Project {
	t.Helper()
	rec := s.do(t, "POST", "/api/projects", s.token(t, models.RoleClient, s.clientID), createBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	var project models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &project); err != nil {
		t.Fatalf("decoding created project: %v", err)
	}
	return project
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/api/projects"},
		{"GET", "/api/projects/client/my-projects"},
		{"GET", "/api/projects/manager/all"},
		{"PATCH", "/api/projects/507f1f77bcf86cd799439011/status"},
	}
	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			if rec := s.do(t, tc.method, tc.path, "", nil); rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 without token, got %d", rec.Code)
			}
			if rec := s.do(t, tc.method, tc.path, "garbage", nil); rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 with an invalid token, got %d", rec.Code)
			}
		})
	}
}

func TestCreateProjectEndpoint(t *testing.T) {
	t.Run("client gets 201", func(t *testing.T) {
		s := newTestServer(t)
		project := s.createProject(t)
		if project.Status != models.StatusPending {
			t.Errorf("expected pending, got %s", project.Status)
		}
	})

	t.Run("manager gets 403", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, "POST", "/api/projects", s.token(t, models.RoleManager, s.managerID), createBody())
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("missing field gets 400", func(t *testing.T) {
		s := newTestServer(t)
		body := createBody()
		body["title"] = ""
		rec := s.do(t, "POST", "/api/projects", s.token(t, models.RoleClient, s.clientID), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	managerToken := s.token(t, models.RoleManager, s.managerID)

	t.Run("invalid status gets 400", func(t *testing.T) {
		rec := s.do(t, "PATCH", "/api/projects/"+project.ID.Hex()+"/status", managerToken, map[string]string{"status": "archived"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing project gets 404", func(t *testing.T) {
		rec := s.do(t, "PATCH", "/api/projects/"+primitive.NewObjectID().Hex()+"/status", managerToken, map[string]string{"status": "accepted"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("accept gets 200 and assigns the manager", func(t *testing.T) {
		rec := s.do(t, "PATCH", "/api/projects/"+project.ID.Hex()+"/status", managerToken, map[string]string{"status": "accepted"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var updated models.Project
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if updated.Status != models.StatusAccepted {
			t.Errorf("expected accepted, got %s", updated.Status)
		}
		if updated.AssignedManager == nil || *updated.AssignedManager != s.managerID {
			t.Error("manager not assigned on accept")
		}
	})
}

func TestExtensionEndpoints(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	managerToken := s.token(t, models.RoleManager, s.managerID)
	clientToken := s.token(t, models.RoleClient, s.clientID)
	base := "/api/projects/" + project.ID.Hex()

	s.do(t, "PATCH", base+"/status", managerToken, map[string]string{"status": "accepted"})

	t.Run("approve before any request gets 400", func(t *testing.T) {
		rec := s.do(t, "PATCH", base+"/extension/approve", managerToken, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("request then respond", func(t *testing.T) {
		rec := s.do(t, "PATCH", base+"/request-extension", managerToken, map[string]string{"newDeadline": "2025-06-10", "reason": "more time"})
		if rec.Code != http.StatusOK {
			t.Fatalf("request-extension returned %d: %s", rec.Code, rec.Body.String())
		}

		rec = s.do(t, "PATCH", base+"/respond-extension", clientToken, map[string]interface{}{"approved": true})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("approving without newDeadline should be 400, got %d", rec.Code)
		}

		rec = s.do(t, "PATCH", base+"/respond-extension", clientToken, map[string]interface{}{"newDeadline": "2025-06-10", "approved": true})
		if rec.Code != http.StatusOK {
			t.Fatalf("respond-extension returned %d: %s", rec.Code, rec.Body.String())
		}
		var updated models.Project
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if updated.Status != models.StatusExtensionApproved {
			t.Errorf("expected deadline_extension_approved, got %s", updated.Status)
		}
	})

	t.Run("submit", func(t *testing.T) {
		rec := s.do(t, "PATCH", base+"/submit", managerToken, map[string]string{"submissionLink": ""})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("empty link should be 400, got %d", rec.Code)
		}

		rec = s.do(t, "PATCH", base+"/submit", managerToken, map[string]string{"submissionLink": "https://files/x"})
		if rec.Code != http.StatusOK {
			t.Fatalf("submit returned %d: %s", rec.Code, rec.Body.String())
		}
		var updated models.Project
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if updated.Status != models.StatusCompleted || updated.SubmissionLink != "https://files/x" {
			t.Errorf("unexpected submit result: status=%s link=%q", updated.Status, updated.SubmissionLink)
		}
	})
}

func TestListEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.createProject(t)

	t.Run("client listing", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/projects/client/my-projects", s.token(t, models.RoleClient, s.clientID), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var projects []models.Project
		if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
			t.Fatalf("decoding listing: %v", err)
		}
		if len(projects) != 1 {
			t.Errorf("expected 1 project, got %d", len(projects))
		}
	})

	t.Run("manager listing embeds client identity", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/projects/manager/all", s.token(t, models.RoleManager, s.managerID), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var details []models.ProjectDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
			t.Fatalf("decoding listing: %v", err)
		}
		if len(details) != 1 || details[0].ClientInfo == nil || details[0].ClientInfo.Email != "asha@example.com" {
			t.Errorf("client identity missing from manager listing: %+v", details)
		}
	})

	t.Run("wrong role gets 403", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/projects/manager/all", s.token(t, models.RoleClient, s.clientID), nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}

func TestAuthAndHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("register then login", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/client/register", "", map[string]string{
			"name":           "Ravi",
			"email":          "ravi@example.com",
			"password":       "s3cure-Enough",
			"whatsappNumber": "+912222222222",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
		}

		rec = s.do(t, "POST", "/api/auth/client/login", "", map[string]string{
			"email":    "ravi@example.com",
			"password": "s3cure-Enough",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
		}

		rec = s.do(t, "POST", "/api/auth/client/login", "", map[string]string{
			"email":    "ravi@example.com",
			"password": "wrong",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("bad login should be 401, got %d", rec.Code)
		}
	})

	t.Run("health", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("health returned %d", rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding health: %v", err)
		}
		if body["dbConnected"] != true {
			t.Errorf("expected dbConnected=true, got %v", body["dbConnected"])
		}
	})
}
