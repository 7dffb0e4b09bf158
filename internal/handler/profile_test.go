package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gitforge/bossquest/internal/domain"
)

// MockProfileService is a mock implementation of profile.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockRewardService is a mock implementation of reward.Service
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) IssueRewards(ctx context.Context, battle *domain.Battle) error {
	args := m.Called(ctx, battle)
	return args.Error(0)
}

func (m *MockRewardService) GetPerks(ctx context.Context, username string) (*domain.UserPerks, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPerks), args.Error(1)
}

func newProfileRouter(profiles *MockProfileService, rewards *MockRewardService) http.Handler {
	h := NewProfileHandler(profiles, rewards)
	r := chi.NewRouter()
	r.Put("/profiles", h.HandleSaveProfile)
	r.Get("/profiles/{username}", h.HandleGetProfile)
	r.Get("/perks/{username}", h.HandleGetPerks)
	return r
}

func TestHandleSaveProfile(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockProfileService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: SaveProfileRequest{
				Username:  "Alice",
				Level:     "explorer",
				Languages: []string{"javascript"},
			},
			setupMock: func(m *MockProfileService) {
				m.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
					return p.Username == "alice" && p.Level == domain.LevelExplorer
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgProfileSavedSuccess,
		},
		{
			name:        "Success - Level Defaults To Rookie",
			requestBody: SaveProfileRequest{Username: "bob"},
			setupMock: func(m *MockProfileService) {
				m.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
					return p.Level == domain.LevelRookie
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid Level",
			requestBody:    SaveProfileRequest{Username: "alice", Level: "GODMODE"},
			setupMock:      func(m *MockProfileService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Username",
			requestBody:    SaveProfileRequest{Level: "ROOKIE"},
			setupMock:      func(m *MockProfileService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfiles := &MockProfileService{}
			tt.setupMock(mockProfiles)

			router := newProfileRouter(mockProfiles, &MockRewardService{})

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("PUT", "/profiles", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockProfiles.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockProfiles := &MockProfileService{}
		mockProfiles.On("GetProfile", mock.Anything, "alice").Return(&domain.UserProfile{
			Username: "alice",
			Level:    domain.LevelBuilder,
		}, nil)

		router := newProfileRouter(mockProfiles, &MockRewardService{})

		req := httptest.NewRequest("GET", "/profiles/alice", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"level":"BUILDER"`)
		mockProfiles.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockProfiles := &MockProfileService{}
		mockProfiles.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		router := newProfileRouter(mockProfiles, &MockRewardService{})

		req := httptest.NewRequest("GET", "/profiles/ghost", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUserNotFoundError)
		mockProfiles.AssertExpectations(t)
	})
}

func TestHandleGetPerks(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRewards := &MockRewardService{}
		mockRewards.On("GetPerks", mock.Anything, "alice").Return(&domain.UserPerks{
			Username: "alice",
			Stats:    domain.BossStats{TotalXP: 1250},
		}, nil)

		router := newProfileRouter(&MockProfileService{}, mockRewards)

		req := httptest.NewRequest("GET", "/perks/alice", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_xp":1250`)
		mockRewards.AssertExpectations(t)
	})
}
