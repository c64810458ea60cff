package services

import (
	"bufio"
	"context"
	"html"
	"os"
	"time"

	"github.com/SamarthKasar123/Primewave/logging"
	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/store"
	"github.com/SamarthKasar123/Primewave/utils"
)

// AuthService registers clients and authenticates both roles against the
// identity collections.
type AuthService struct {
	Clients   store.ClientStore
	Managers  store.ManagerStore
	BlackList map[string]bool
}

func NewAuthService(clients store.ClientStore, managers store.ManagerStore, blackList map[string]bool) *AuthService {
	return &AuthService{Clients: clients, Managers: managers, BlackList: blackList}
}

// LoadBlackList reads one banned password per line.
func LoadBlackList(filePath string) (map[string]bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	blackList := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		blackList[scanner.Text()] = true
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return blackList, nil
}

type RegisterClientInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	WhatsappNumber string `json:"whatsappNumber"`
}

// AuthResult is the login/registration payload: the token plus the
// identity slice the frontend keeps in session.
type AuthResult struct {
	Token string                 `json:"token"`
	User  map[string]interface{} `json:"user"`
}

func (s *AuthService) RegisterClient(ctx context.Context, input RegisterClientInput) (*AuthResult, error) {
	switch {
	case input.Name == "":
		return nil, Invalid("Name is required")
	case input.Email == "":
		return nil, Invalid("Email is required")
	case input.Password == "":
		return nil, Invalid("Password is required")
	case input.WhatsappNumber == "":
		return nil, Invalid("WhatsApp number is required")
	}
	if s.BlackList[input.Password] {
		return nil, Invalid("Password is too common, choose another one")
	}

	if _, err := s.Clients.FindByEmail(ctx, input.Email); err == nil {
		return nil, Invalid("Client already exists with this email")
	} else if err != store.ErrNotFound {
		return nil, Internal("Failed to check existing clients")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, Internal("Failed to hash password")
	}

	client := &models.Client{
		Name:             html.EscapeString(input.Name),
		Email:            html.EscapeString(input.Email),
		Password:         hashed,
		WhatsappNumber:   html.EscapeString(input.WhatsappNumber),
		RegistrationDate: time.Now(),
	}
	if err := s.Clients.Insert(ctx, client); err != nil {
		return nil, Internal("Failed to register client")
	}

	token, err := utils.GenerateToken(client.ID.Hex(), models.RoleClient)
	if err != nil {
		return nil, Internal("Failed to issue token")
	}

	logging.Logger.Infof("Client %s registered", client.ID.Hex())
	return &AuthResult{
		Token: token,
		User: map[string]interface{}{
			"id":    client.ID.Hex(),
			"name":  client.Name,
			"email": client.Email,
			"role":  models.RoleClient,
		},
	}, nil
}

func (s *AuthService) LoginClient(ctx context.Context, email, password string) (*AuthResult, error) {
	client, err := s.Clients.FindByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, Unauthenticated("Invalid credentials")
		}
		return nil, Internal("Failed to fetch client")
	}
	if !utils.CheckPassword(client.Password, password) {
		return nil, Unauthenticated("Invalid credentials")
	}

	token, err := utils.GenerateToken(client.ID.Hex(), models.RoleClient)
	if err != nil {
		return nil, Internal("Failed to issue token")
	}

	return &AuthResult{
		Token: token,
		User: map[string]interface{}{
			"id":    client.ID.Hex(),
			"name":  client.Name,
			"email": client.Email,
			"role":  models.RoleClient,
		},
	}, nil
}

func (s *AuthService) LoginManager(ctx context.Context, username, password string) (*AuthResult, error) {
	manager, err := s.Managers.FindByUsername(ctx, username)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, Unauthenticated("Invalid credentials")
		}
		return nil, Internal("Failed to fetch manager")
	}
	if !utils.CheckPassword(manager.Password, password) {
		return nil, Unauthenticated("Invalid credentials")
	}

	token, err := utils.GenerateToken(manager.ID.Hex(), models.RoleManager)
	if err != nil {
		return nil, Internal("Failed to issue token")
	}

	return &AuthResult{
		Token: token,
		User: map[string]interface{}{
			"id":       manager.ID.Hex(),
			"username": manager.Username,
			"email":    manager.Email,
			"role":     models.RoleManager,
		},
	}, nil
}
