package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/username/divroutine/backend/src/config"
	"github.com/username/divroutine/backend/src/database"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/model"
	"github.com/username/divroutine/backend/src/security"
	"github.com/username/divroutine/backend/src/security/validation"
	"github.com/username/divroutine/backend/src/services"
	"github.com/username/divroutine/backend/src/utils"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var passwordRegex = regexp.MustCompile(`^.{6,}$`)

type UserHandler struct {
	authService   *security.AuthService
	reportService services.ReportService
}

func NewUserHandler(authService *security.AuthService, reportService services.ReportService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		reportService: reportService,
	}
}

func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	credentials.Email = strings.ToLower(validation.SanitizeText(strings.TrimSpace(credentials.Email)))
	credentials.Password = strings.TrimSpace(credentials.Password)
	credentials.DisplayName = validation.SanitizeText(strings.TrimSpace(credentials.DisplayName))

	if err := validation.ValidateStringNotEmpty(credentials.Email, "Email"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !emailRegex.MatchString(credentials.Email) {
		sendJSONError(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if !passwordRegex.MatchString(credentials.Password) {
		sendJSONError(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringMaxLength(credentials.DisplayName, 50, "Display name"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := model.GetUserByEmail(database.DB, credentials.Email)
	if err == nil {
		sendJSONError(w, "Email address already in use", http.StatusConflict)
		return
	} else if !errors.Is(err, model.ErrUserNotFound) {
		logger.L.Error("Error checking email uniqueness", "error", err)
		sendJSONError(w, "Failed to process registration", http.StatusInternalServerError)
		return
	}

	user := &model.User{
		Email:               credentials.Email,
		DisplayName:         credentials.DisplayName,
		GoalMonthlyDividend: config.Cfg.DefaultGoalMonthlyDividend,
		MonthlyInvestPlan:   config.Cfg.DefaultMonthlyInvestPlan,
	}
	if err := user.HashPassword(credentials.Password); err != nil {
		logger.L.Error("Failed to hash password", "error", err)
		sendJSONError(w, "Failed to process registration", http.StatusInternalServerError)
		return
	}

	if err := user.CreateUser(database.DB); err != nil {
		logger.L.Error("Failed to create user in DB", "error", err)
		sendJSONError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	logger.L.Info("User registered", "userID", user.ID)

	utils.SendJSONResponse(w, map[string]any{
		"message": "User registered successfully.",
		"user":    user,
	}, http.StatusCreated)
}

func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		logger.L.Warn("Invalid request body for login", "error", err)
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	credentials.Email = strings.ToLower(validation.SanitizeText(strings.TrimSpace(credentials.Email)))

	user, err := model.GetUserByEmail(database.DB, credentials.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			logger.L.Warn("Login attempt for unknown email")
		} else {
			logger.L.Error("User lookup by email failed for login", "error", err)
		}
		sendJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := user.CheckPassword(credentials.Password); err != nil {
		logger.L.Warn("Password check failed for login", "userID", user.ID)
		sendJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.authService.GenerateToken(fmt.Sprintf("%d", user.ID))
	if err != nil {
		logger.L.Error("Failed to generate access token", "userID", user.ID, "error", err)
		sendJSONError(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	logger.L.Info("User login successful", "userID", user.ID)

	utils.SendJSONResponse(w, map[string]any{
		"access_token": accessToken,
		"user":         user,
	}, http.StatusOK)
}

func (h *UserHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	user, err := model.GetUserByID(database.DB, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to fetch user settings", "error", err)
		sendJSONError(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}

	utils.SendJSONResponse(w, model.UserSettings{
		GoalMonthlyDividend: user.GoalMonthlyDividend,
		MonthlyInvestPlan:   user.MonthlyInvestPlan,
	}, http.StatusOK)
}

func (h *UserHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var settings model.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if settings.GoalMonthlyDividend < 0 || settings.MonthlyInvestPlan < 0 {
		sendJSONError(w, "Settings must not be negative", http.StatusBadRequest)
		return
	}

	if err := model.UpdateUserSettings(database.DB, userID, settings); err != nil {
		logger.FromContext(r.Context()).Error("Failed to update user settings", "error", err)
		sendJSONError(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	// Goal and plan feed the cached reports.
	h.reportService.InvalidateUserCache(userID)

	utils.SendJSONResponse(w, settings, http.StatusOK)
}
