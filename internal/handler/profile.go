package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/profile"
	"github.com/gitforge/bossquest/internal/reward"
)

// ProfileHandler serves user profile and perk endpoints
type ProfileHandler struct {
	profiles profile.Service
	rewards  reward.Service
}

func NewProfileHandler(profiles profile.Service, rewards reward.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, rewards: rewards}
}

type SaveProfileRequest struct {
	Username     string   `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Level        string   `json:"level"`
	TotalScore   int      `json:"total_score" validate:"min=0"`
	Languages    []string `json:"languages"`
	FocusAreas   []string `json:"focus_areas"`
	RecentTopics []string `json:"recent_topics"`
}

// HandleSaveProfile creates or replaces a user's battle profile
// @Summary Save a user profile
// @Description Registers the profile the challenge generator personalizes against. Level defaults to ROOKIE.
// @Tags profiles
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /profiles [put]
func (h *ProfileHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save profile"); err != nil {
		return
	}

	level := domain.Level(strings.ToUpper(req.Level))
	if req.Level == "" {
		level = domain.LevelRookie
	}
	if !level.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}

	p := &domain.UserProfile{
		Username:     strings.ToLower(req.Username),
		Email:        req.Email,
		Level:        level,
		TotalScore:   req.TotalScore,
		Languages:    req.Languages,
		FocusAreas:   req.FocusAreas,
		RecentTopics: req.RecentTopics,
	}

	if err := h.profiles.UpdateProfile(r.Context(), p); err != nil {
		respondServiceError(w, r, "Save profile", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProfileSavedSuccess})
}

// HandleGetProfile returns a user's battle profile
// @Summary Get a user profile
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{username} [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	p, err := h.profiles.GetProfile(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleGetPerks returns the user's accumulated rewards
// @Summary Get user perks
// @Description XP, badges, titles, streaks and active skill boosts earned from boss battles.
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} domain.UserPerks
// @Router /perks/{username} [get]
func (h *ProfileHandler) HandleGetPerks(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	perks, err := h.rewards.GetPerks(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, "Get perks", err)
		return
	}

	respondJSON(w, http.StatusOK, perks)
}
