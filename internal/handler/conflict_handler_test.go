package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/internal/service"
)

type roomSlotStub struct {
	slots []models.RoomSlot
}

func (s *roomSlotStub) ListRoomSlots(ctx context.Context) ([]models.RoomSlot, error) {
	return s.slots, nil
}

func newConflictHandler(plannings []models.PlanningDetail, slots []models.RoomSlot) *ConflictHandler {
	svc := service.NewConflictService(
		&planningListStub{details: plannings},
		&invigilationListStub{},
		&roomSlotStub{slots: slots},
		noopCache(),
		zap.NewNop(),
	)
	return NewConflictHandler(svc)
}

func performGet(t *testing.T, url string, handle gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	c.Request = req

	handle(c)
	return w
}

func spreadPlanning(id, module string, day int, start string) models.PlanningDetail {
	return models.PlanningDetail{
		ID:              id,
		Section:         "A",
		FormationID:     sql.NullString{String: "f1", Valid: true},
		FormationModule: sql.NullString{String: module, Valid: true},
		TimeSlotID:      sql.NullString{String: "t-" + id, Valid: true},
		ExamDate:        sql.NullTime{Time: time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC), Valid: true},
		StartTime:       sql.NullString{String: start, Valid: true},
	}
}

func TestConflictHandlerExamDateSpreadEnvelope(t *testing.T) {
	handler := newConflictHandler([]models.PlanningDetail{
		spreadPlanning("p1", "Analyse 2", 1, "09:00"),
		spreadPlanning("p2", "Analyse 2", 2, "09:00"),
	}, nil)

	w := performGet(t, "/conflicts/exam-dates", handler.ExamDateSpread)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var envelope struct {
		Data struct {
			Conflicts []struct {
				Module    string `json:"module"`
				Conflicts []struct {
					Planning1ID string `json:"planning1_id"`
					Planning2ID string `json:"planning2_id"`
				} `json:"conflicts"`
			} `json:"conflicts"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Conflicts, 1)
	assert.Equal(t, "Analyse 2", envelope.Data.Conflicts[0].Module)
	require.Len(t, envelope.Data.Conflicts[0].Conflicts, 1)
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestConflictHandlerExamDateSpreadCleanMessage(t *testing.T) {
	handler := newConflictHandler(nil, nil)

	w := performGet(t, "/conflicts/exam-dates", handler.ExamDateSpread)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Aucun conflit de dates d'examen détecté", envelope.Data.Message)
}

func TestConflictHandlerRoomDoubleBookings(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	handler := newConflictHandler(nil, []models.RoomSlot{
		{Room: "Amphi A", TimeSlotID: "t1", ExamDate: day, StartTime: "09:00"},
		{Room: "Amphi A", TimeSlotID: "t2", ExamDate: day, StartTime: "09:00"},
	})

	w := performGet(t, "/conflicts/rooms", handler.RoomDoubleBookings)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Conflicts []struct {
				Room string `json:"room"`
			} `json:"conflicts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Conflicts, 1)
	assert.Equal(t, "Amphi A", envelope.Data.Conflicts[0].Room)
}
