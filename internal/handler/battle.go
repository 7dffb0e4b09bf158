package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gitforge/bossquest/internal/battle"
	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/logger"
)

// BattleHandler serves the boss battle endpoints
type BattleHandler struct {
	service battle.Service
}

func NewBattleHandler(service battle.Service) *BattleHandler {
	return &BattleHandler{service: service}
}

type CreateBattleRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleCreateBattle generates a new boss battle for the user's next level
// @Summary Create a boss battle
// @Description Generates a boss challenge for the user's next developer level. Only one active battle per user is allowed.
// @Tags battles
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /battles [post]
func (h *BattleHandler) HandleCreateBattle(w http.ResponseWriter, r *http.Request) {
	var req CreateBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create battle"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	LogRequestFields(log, "username", req.Username)

	b, err := h.service.CreateBattle(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, "Create battle", err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgBattleCreatedSuccess, Data: b})
}

// HandleGetBattle returns a battle by ID, applying lazy expiration
// @Summary Get a boss battle
// @Tags battles
// @Produce json
// @Param battleID path string true "Battle ID"
// @Param username query string true "Requesting username (owner only)"
// @Success 200 {object} domain.Battle
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /battles/{battleID} [get]
func (h *BattleHandler) HandleGetBattle(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "battleID")
	username, ok := GetQueryParam(r, w, "username")
	if !ok {
		return
	}

	b, err := h.service.GetBattle(r.Context(), battleID, username)
	if err != nil {
		respondServiceError(w, r, "Get battle", err)
		return
	}

	respondJSON(w, http.StatusOK, b)
}

type StartBattleRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleStartBattle transitions an initiated battle to the facing state
// @Summary Start a boss battle
// @Tags battles
// @Accept json
// @Produce json
// @Param battleID path string true "Battle ID"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /battles/{battleID}/start [post]
func (h *BattleHandler) HandleStartBattle(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "battleID")

	var req StartBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start battle"); err != nil {
		return
	}

	b, err := h.service.StartBattle(r.Context(), battleID, req.Username)
	if err != nil {
		respondServiceError(w, r, "Start battle", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgBattleStartedSuccess, Data: b})
}

type SubmitSolutionRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Code     string `json:"code" validate:"required"`
	Language string `json:"language" validate:"language"`
}

// HandleSubmitSolution evaluates a submitted solution against the battle's challenge
// @Summary Submit a solution
// @Description Runs the two-stage AI evaluation pipeline and updates the battle state.
// @Tags battles
// @Accept json
// @Produce json
// @Param battleID path string true "Battle ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /battles/{battleID}/submit [post]
func (h *BattleHandler) HandleSubmitSolution(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "battleID")

	var req SubmitSolutionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit solution"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	LogRequestFields(log, "username", req.Username, "battle_id", battleID, "language", req.Language)

	b, err := h.service.SubmitSolution(r.Context(), battleID, req.Username, domain.Submission{
		Code:     req.Code,
		Language: req.Language,
	})
	if err != nil {
		respondServiceError(w, r, "Submit solution", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSolutionScoredSuccess, Data: b})
}

// HandleGetHistory lists a user's battles with summary counts
// @Summary Battle history
// @Tags battles
// @Produce json
// @Param username path string true "Username"
// @Param limit query int false "Maximum battles to return (default 20, max 100)"
// @Success 200 {object} battle.History
// @Router /battles/user/{username} [get]
func (h *BattleHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	limitStr := GetOptionalQueryParam(r, "limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}

	history, err := h.service.GetHistory(r.Context(), username, limit)
	if err != nil {
		respondServiceError(w, r, "Get history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// CleanupResult reports how many battles a sweep expired
type CleanupResult struct {
	Expired int `json:"expired"`
}

// HandleCleanupExpired sweeps overdue battles into the expired state
// @Summary Expire overdue battles
// @Description Admin endpoint. Idempotent; the background sweep performs the same work periodically.
// @Tags admin
// @Produce json
// @Success 200 {object} DataResponse
// @Router /admin/battles/cleanup [post]
func (h *BattleHandler) HandleCleanupExpired(w http.ResponseWriter, r *http.Request) {
	expired, err := h.service.CleanupExpired(r.Context())
	if err != nil {
		respondServiceError(w, r, "Cleanup expired battles", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgCleanupSuccess, Data: CleanupResult{Expired: expired}})
}
