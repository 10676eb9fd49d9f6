package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

func badgeTestRouter(service *MockBadgeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBadgeHandler(service)
	r.GET("/api/badges", h.Counts)
	r.POST("/api/badges/seen", h.Seen)
	return r
}

func TestBadgeCountsEndpoint(t *testing.T) {
	service := new(MockBadgeService)
	service.On("Counts", mock.Anything).Return(models.BadgeCounts{Loans: 3, Kyc: 1}, nil)

	w := performRequest(badgeTestRouter(service), http.MethodGet, "/api/badges", "")

	require.Equal(t, http.StatusOK, w.Code)
	var counts models.BadgeCounts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 3, counts.Loans)
	assert.Equal(t, 1, counts.Kyc)
}

func TestBadgeSeenEndpoint(t *testing.T) {
	service := new(MockBadgeService)
	service.On("MarkSeen", mock.Anything, "loans").Return(nil)

	w := performRequest(badgeTestRouter(service), http.MethodPost, "/api/badges/seen", `{"section":"loans"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestBadgeSeenRejectsUnknownSection(t *testing.T) {
	service := new(MockBadgeService)

	w := performRequest(badgeTestRouter(service), http.MethodPost, "/api/badges/seen", `{"section":"reports"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything)
}
