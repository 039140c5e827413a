package controller

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/model"
	"cacei_stats_backend/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	grades      []model.GradeRow
	byCohort    []model.StatusCount
	programs    []string
	err         error
	lastProgram string
	queried     bool
}

func (s *stubStore) GradeRecords(_ context.Context, program, cycle string) ([]model.GradeRow, error) {
	s.queried, s.lastProgram = true, program
	return s.grades, s.err
}

func (s *stubStore) EnrollmentByCycle(_ context.Context, program string) ([]model.EnrollmentRow, error) {
	s.queried = true
	return []model.EnrollmentRow{{Cycle: "2022-SEM-ENE/JUN", Enrolled: 10}}, s.err
}

func (s *stubStore) StatusByLastCycle(context.Context, string) ([]model.StatusCount, error) {
	s.queried = true
	return nil, s.err
}

func (s *stubStore) StatusByCohort(context.Context, string) ([]model.StatusCount, error) {
	s.queried = true
	return s.byCohort, s.err
}

func (s *stubStore) CohortActivity(context.Context, string, string) ([]model.CohortActivityRow, error) {
	s.queried = true
	return nil, s.err
}

func (s *stubStore) CohortStudents(context.Context, string, string) ([]model.StudentRow, error) {
	s.queried = true
	return nil, s.err
}

func (s *stubStore) StudentCycles(context.Context, string, string) ([]model.StudentCycleRow, error) {
	s.queried = true
	return nil, s.err
}

func (s *stubStore) StatusBreakdown(context.Context, string) ([]model.StatusBreakdownRow, error) {
	s.queried = true
	return nil, s.err
}

func (s *stubStore) SubjectNames(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, s.err
}

func (s *stubStore) Programs(_ context.Context, limit int) ([]string, error) {
	s.queried = true
	return s.programs, s.err
}

func (s *stubStore) Cohorts(context.Context, string) ([]string, error) {
	s.queried = true
	return []string{"2022-SEM-AGO/DIC", "2022-SEM-ENE/JUN"}, s.err
}

func (s *stubStore) Ping(context.Context) error { return s.err }

func (s *stubStore) Databases(context.Context) ([]string, error) {
	return []string{"estadistica", "ingenieria"}, s.err
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	stats := service.NewStatsService(store, config.GradingConfig{
		DefaultProgram:     "AEROESPACIAL",
		DefaultThreshold:   6,
		DefaultVariant:     "best_attempt",
		MaxCohortSemesters: 9,
	})
	statsCtrl := NewStatsController(stats)
	metaCtrl := NewMetaController(service.NewMetaService(store, stats))
	healthCtrl := NewHealthController(service.NewHealthService(store, model.SubjectCatalog{}))

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", healthCtrl.HealthCheck)
	api.GET("/meta/programas", metaCtrl.Programs)
	api.GET("/meta/cohortes", metaCtrl.Cohorts)
	api.GET("/meta/variantes", metaCtrl.Variants)
	api.GET("/reprobacion", statsCtrl.FailureByCycle)
	api.GET("/reprobacion_detalle", statsCtrl.FailureBySubject)
	api.GET("/inscritos_por_ciclo", statsCtrl.EnrollmentByCycle)
	api.GET("/desercion_escolar", statsCtrl.DropoutByCohort)
	api.GET("/cohorte", statsCtrl.CohortTracking)
	api.GET("/seguimiento_cohorte_resumen", statsCtrl.CohortSummary)
	api.GET("/cedula_322_detalle", statsCtrl.SubjectAverages)
	return r
}

func get(t *testing.T, r *gin.Engine, target string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestFailureByCycleEndpoint(t *testing.T) {
	store := &stubStore{grades: []model.GradeRow{
		{StudentID: "A1", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "85", GradeLevel: "1"},
		{StudentID: "A2", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "55", GradeLevel: "1"},
	}}
	r := setupRouter(store)

	code, body := get(t, r, "/api/reprobacion?programa_like=civil&aprobatoria=60&contar_no_numericas=true")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "civil", store.lastProgram)

	var report model.FailureReport
	require.NoError(t, json.Unmarshal(body.Data, &report))
	assert.Equal(t, "best_attempt", report.Variant)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 2, report.Rows[0].EvaluatedCount)
	assert.Equal(t, 1, report.Rows[0].FailedCount)
	assert.Equal(t, 60.0, report.Rows[0].ThresholdUsed)
}

func TestParameterErrorsReturn400WithoutQuerying(t *testing.T) {
	for _, target := range []string{
		"/api/reprobacion?aprobatoria=abc",
		"/api/reprobacion?aprobatoria=0",
		"/api/reprobacion?contar_no_numericas=maybe",
		"/api/reprobacion_detalle?variante=unknown",
		"/api/cohorte",
		"/api/cedula_322_detalle",
		"/api/seguimiento_cohorte_resumen?max_semestres=x",
		"/api/desercion_escolar?restar_ri=2",
		"/api/meta/programas?limit=5000",
	} {
		t.Run(target, func(t *testing.T) {
			store := &stubStore{}
			code, body := get(t, setupRouter(store), target)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.False(t, store.queried)
		})
	}
}

func TestQueryErrorsReturn500(t *testing.T) {
	store := &stubStore{err: errors.New("Unknown column 'x'")}
	code, body := get(t, setupRouter(store), "/api/inscritos_por_ciclo")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestDropoutByCohortDefaultsToSubtractingRI(t *testing.T) {
	store := &stubStore{byCohort: []model.StatusCount{
		{Cycle: "2021-SEM-AGO/DIC", Status: "BD", Total: 2},
		{Cycle: "2021-SEM-AGO/DIC", Status: "RI", Total: 1},
		{Cycle: "2021-SEM-AGO/DIC", Status: "ACTIVO", Total: 7},
	}}
	r := setupRouter(store)

	_, body := get(t, r, "/api/desercion_escolar")
	var rows []model.CohortDropoutRow
	require.NoError(t, json.Unmarshal(body.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Dropouts)

	_, body = get(t, r, "/api/desercion_escolar?restar_ri=0")
	require.NoError(t, json.Unmarshal(body.Data, &rows))
	assert.Equal(t, int64(2), rows[0].Dropouts)
}

func TestMetaEndpoints(t *testing.T) {
	store := &stubStore{programs: []string{"INGENIERIA AEROESPACIAL", "INGENIERIA CIVIL"}}
	r := setupRouter(store)

	code, body := get(t, r, "/api/meta/programas")
	require.Equal(t, http.StatusOK, code)
	var programs []string
	require.NoError(t, json.Unmarshal(body.Data, &programs))
	assert.Len(t, programs, 2)

	_, body = get(t, r, "/api/meta/cohortes")
	var cohorts []string
	require.NoError(t, json.Unmarshal(body.Data, &cohorts))
	assert.Equal(t, []string{"2022-SEM-ENE/JUN", "2022-SEM-AGO/DIC"}, cohorts)

	_, body = get(t, r, "/api/meta/variantes")
	var variants []service.VariantInfo
	require.NoError(t, json.Unmarshal(body.Data, &variants))
	assert.Equal(t, "best_attempt", variants[0].Name)
	assert.True(t, variants[0].Default)
}

func TestHealthEndpoint(t *testing.T) {
	code, body := get(t, setupRouter(&stubStore{}), "/api/health")
	require.Equal(t, http.StatusOK, code)
	var status model.HealthStatus
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "none", status.Catalog)

	code, _ = get(t, setupRouter(&stubStore{err: errors.New("refused")}), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
