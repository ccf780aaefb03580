package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/internal/service"
	"github.com/univ-fsi/surveillance-api/pkg/config"
)

type planningListStub struct {
	details []models.PlanningDetail
}

func (s *planningListStub) ListDetails(ctx context.Context) ([]models.PlanningDetail, error) {
	return s.details, nil
}

type invigilationListStub struct {
	details []models.InvigilationDetail
}

func (s *invigilationListStub) ListDetails(ctx context.Context) ([]models.InvigilationDetail, error) {
	return s.details, nil
}

type teacherRosterStub struct {
	teachers []models.Teacher
}

func (s *teacherRosterStub) ListAll(ctx context.Context) ([]models.Teacher, error) {
	return s.teachers, nil
}

type courseLoadStub struct {
	loads []models.CourseLoad
}

func (s *courseLoadStub) List(ctx context.Context, filter models.CourseLoadFilter) ([]models.CourseLoad, error) {
	return s.loads, nil
}

type formationStub struct {
	formations []models.Formation
}

func (s *formationStub) ListAll(ctx context.Context) ([]models.Formation, error) {
	return s.formations, nil
}

func noopCache() *service.CacheService {
	return service.NewCacheService(nil, service.NewMetricsService(), zap.NewNop(), config.AnalyticsConfig{})
}

func newWorkloadHandler(teachers []models.Teacher, invigilations []models.InvigilationDetail) *WorkloadHandler {
	svc := service.NewWorkloadService(
		&planningListStub{},
		&invigilationListStub{details: invigilations},
		&teacherRosterStub{teachers: teachers},
		&courseLoadStub{},
		&formationStub{},
		noopCache(),
		config.WorkloadConfig{DeviationTolerance: 2, HighDeviation: 4, TargetHighGap: 3, RatioLowBand: 0.8, RatioHighBand: 2.5},
		zap.NewNop(),
	)
	return NewWorkloadHandler(svc)
}

func performBalance(t *testing.T, handler *WorkloadHandler, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Balance(c)
	return w
}

func TestWorkloadBalanceEmptyBodySelectsRatioMode(t *testing.T) {
	handler := newWorkloadHandler([]models.Teacher{{Code: "T001", LastName: "Benali"}}, nil)

	w := performBalance(t, handler, "/workload/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			GlobalMetrics struct {
				Status string `json:"status"`
			} `json:"global_metrics"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "BALANCED", envelope.Data.GlobalMetrics.Status)
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestWorkloadBalanceNegativeTargetRejectedBeforeFetch(t *testing.T) {
	handler := newWorkloadHandler(nil, nil)

	body := []byte(`{"target_surveillances": -1}`)
	w := performBalance(t, handler, "/workload/balance", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestWorkloadBalanceTargetFromQuery(t *testing.T) {
	teachers := []models.Teacher{{Code: "T001", LastName: "Benali"}}
	handler := newWorkloadHandler(teachers, nil)

	w := performBalance(t, handler, "/workload/balance?target=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			GlobalMetrics struct {
				Status string `json:"status"`
			} `json:"global_metrics"`
			TeacherAnalysis []struct {
				Statistics struct {
					Status string `json:"status"`
				} `json:"statistics"`
			} `json:"teacher_analysis"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "NEED_MORE_SURVEILLANCES", envelope.Data.GlobalMetrics.Status)
	require.Len(t, envelope.Data.TeacherAnalysis, 1)
	assert.Equal(t, "BELOW_TARGET", envelope.Data.TeacherAnalysis[0].Statistics.Status)
}

func TestWorkloadBalanceMalformedQueryTarget(t *testing.T) {
	handler := newWorkloadHandler(nil, nil)

	w := performBalance(t, handler, "/workload/balance?target=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkloadBalanceMalformedBody(t *testing.T) {
	handler := newWorkloadHandler(nil, nil)

	w := performBalance(t, handler, "/workload/balance", []byte(`{"target_surveillances": "three"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
