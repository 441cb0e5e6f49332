package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/db"
	"github.com/jonathan/rainwater-advisor/internal/estimation"
	"github.com/jonathan/rainwater-advisor/internal/schemas"
	"github.com/jonathan/rainwater-advisor/internal/server/ratelimit"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

const scenarioOneJSON = `{
	"roof_area_m2": 150,
	"roof_type": "concrete",
	"location": "Guntur",
	"annual_rainfall_mm": 800,
	"groundwater_depth_m": 15,
	"soil_type": "loam",
	"available_space_m2": 25,
	"num_dwellers": 4
}`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	store, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	s, err := New(Config{
		Store:     store,
		Advisor:   advisor.New(advisor.WithRandomSource(estimation.NoJitter())),
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error  string           `json:"error"`
	Fields []fieldErrorBody `json:"fields"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestRecommendEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/recommend", scenarioOneJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rec := decode[types.Recommendation](t, w)
	assert.Equal(t, types.InjectionWellSystem, rec.SystemType)
	assert.Equal(t, 73, rec.FeasibilityScore)
	assert.Equal(t, 80, rec.Confidence)
	assert.Len(t, rec.AlternativeOptions, 2)
}

func TestRecommendEndpoint_Validation(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"zero dwellers", strings.Replace(scenarioOneJSON, `"num_dwellers": 4`, `"num_dwellers": 0`, 1), "num_dwellers"},
		{"negative roof", strings.Replace(scenarioOneJSON, `"roof_area_m2": 150`, `"roof_area_m2": -1`, 1), "roof_area_m2"},
		{"missing depth", strings.Replace(scenarioOneJSON, `"groundwater_depth_m": 15,`, ``, 1), "groundwater_depth_m"},
		{"malformed", `{"roof_area_m2": `, "input"},
		{"empty body", ``, "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/recommend", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			body := decode[errorBody](t, w)
			assert.NotEmpty(t, body.Error)
			fields := make([]string, 0, len(body.Fields))
			for _, f := range body.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestStructureSpecsEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	body := `{"system_type": "Injection Well System", "input": ` + scenarioOneJSON + `}`
	w := do(t, h, http.MethodPost, "/structure-specs", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	specs := decode[types.StructureSpecs](t, w)
	assert.Equal(t, types.InjectionWellSystem, specs.SystemType)
	assert.Equal(t, 2725680, specs.EstimatedCost)
	assert.Equal(t, 14, specs.InstallationTime)
}

func TestStructureSpecsEndpoint_UnknownType(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/structure-specs", `{"system_type": "moat", "input": `+scenarioOneJSON+`}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "system_type", decode[errorBody](t, w).Fields[0].Field)
}

func TestSweepEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	body := `{"param": "rainfall", "values": [300, 800, 1600], "input": ` + scenarioOneJSON + `}`
	w := do(t, h, http.MethodPost, "/sweep", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[SweepResponse](t, w)
	assert.Equal(t, "rainfall", resp.Param)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, 800.0, resp.Rows[1].Value)
	assert.Equal(t, 73, resp.Rows[1].FeasibilityScore)
}

func TestSweepEndpoint_Errors(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/sweep", `{"param": "colour", "values": [1], "input": `+scenarioOneJSON+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/sweep", `{"param": "rainfall", "values": [], "input": `+scenarioOneJSON+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "values", decode[errorBody](t, w).Fields[0].Field)
}

func TestAssessmentLifecycle(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/assessments", scenarioOneJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[types.Assessment](t, w)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "/assessments/"+created.ID.String(), w.Header().Get("Location"))
	assert.Equal(t, 96000, created.Harvest.PotentialHarvestLiters)

	w = do(t, h, http.MethodGet, "/assessments/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[types.Assessment](t, w)
	assert.Equal(t, created.Recommendation, got.Recommendation)

	w = do(t, h, http.MethodGet, "/assessments?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Assessments []db.AssessmentSummary `json:"assessments"`
		Count       int                    `json:"count"`
	}](t, w)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Assessments[0].ID)

	w = do(t, h, http.MethodDelete, "/assessments/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/assessments/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/assessments/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssessmentEndpoints_BadInput(t *testing.T) {
	_, h := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/assessments/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/assessments/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/assessments?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/assessments?offset=abc", "").Code)
}

func TestAssessmentStream(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/assessments/stream", scenarioOneJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	out := w.Body.String()
	assert.Equal(t, 5, strings.Count(out, "event: step\n"))
	assert.Contains(t, out, `"step":"recommendation"`)
	assert.Contains(t, out, "event: assessment\n")
}

func TestAssessmentStream_InvalidInputIsPlainError(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/assessments/stream", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodOptions, "/recommend", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimitResponse(t *testing.T) {
	store, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	s, err := New(Config{
		Store: store,
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1,
			DefaultWindow: time.Minute,
		},
	})
	require.NoError(t, err)
	defer s.Close()
	h := s.Handler()

	first := do(t, h, http.MethodPost, "/recommend", scenarioOneJSON)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(t, h, http.MethodPost, "/recommend", scenarioOneJSON)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, second)["error"])

	// health stays reachable
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "x", Message: "bad"}, http.StatusBadRequest},
		{"invalid input", &types.InvalidInputError{}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"wrapped not found", errors.Join(errors.New("ctx"), &ErrAssessmentNotFound{ID: uuid.New()}), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
