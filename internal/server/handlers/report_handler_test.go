package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/castline/shopfloor/internal/domain/models"
	"github.com/castline/shopfloor/internal/server/handlers"
	"github.com/castline/shopfloor/internal/server/router"
	"github.com/castline/shopfloor/internal/service/report"
)

// memoryRepo is an in-memory stand-in for the MongoDB repository, good
// enough to exercise day-window and range semantics end to end.
type memoryRepo struct {
	mu   sync.Mutex
	docs []*models.ShiftReport
}

func (m *memoryRepo) Insert(_ context.Context, r *models.ShiftReport) (*models.ShiftReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	clone := *r
	m.docs = append(m.docs, &clone)
	return r, nil
}

func (m *memoryRepo) FindByDay(_ context.Context, start, end time.Time) (*models.ShiftReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if !doc.Date.Before(start) && doc.Date.Before(end) {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) FindAll(_ context.Context) ([]models.ShiftReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ShiftReport, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, *doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memoryRepo) FindRange(_ context.Context, start, end time.Time) ([]models.ShiftReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ShiftReport, 0)
	for _, doc := range m.docs {
		if !doc.Date.Before(start) && doc.Date.Before(end) {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*models.ShiftReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.ID.Hex() == id {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) Replace(_ context.Context, r *models.ShiftReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.docs {
		if doc.ID == r.ID {
			clone := *r
			m.docs[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("no document matched id %s", r.ID.Hex())
}

func (m *memoryRepo) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.docs {
		if doc.ID.Hex() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()
	repo := &memoryRepo{}
	svc := report.NewService(repo, time.UTC, nil)
	h := handlers.NewReportHandler(svc, nil)
	return router.New(h, nil), repo
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Count   *int              `json:"count"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func decodeReport(t *testing.T, data json.RawMessage) models.ShiftReport {
	t.Helper()
	var r models.ShiftReport
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestSectionSubmitCreateThenMerge(t *testing.T) {
	engine, repo := newTestServer(t)

	w, env := do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-02-01","section":"production","productionTable":[{"componentName":"Hub","produced":"50"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	created := decodeReport(t, env.Data)
	require.Len(t, created.ProductionDetails, 1)
	require.Equal(t, "Hub", created.ProductionDetails[0].ComponentName)
	require.Equal(t, 50.0, created.ProductionDetails[0].Produced)
	require.Equal(t, 0.0, created.ProductionDetails[0].Poured)
	require.Equal(t, models.DefaultShift, created.Shift)

	w, env = do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-02-01","section":"delays","delaysTable":[{"delays":"Power cut","durationMinutes":"15"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	merged := decodeReport(t, env.Data)
	require.Equal(t, created.ID, merged.ID)
	require.Len(t, merged.ProductionDetails, 1)
	require.Len(t, merged.Delays, 1)
	require.Equal(t, 15.0, merged.Delays[0].DurationMinutes)

	// One document total.
	require.Len(t, repo.docs, 1)
}

func TestSectionSubmitInvalidDate(t *testing.T) {
	engine, _ := newTestServer(t)

	w, env := do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"yesterday","section":"delays"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	require.Equal(t, "invalid date format", env.Message)
}

func TestBulkCreateValidation(t *testing.T) {
	engine, _ := newTestServer(t)

	w, env := do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-02-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	require.Contains(t, env.Errors, "shift")
	require.Contains(t, env.Errors, "incharge")
}

func TestBulkCreateAllowsDuplicateDays(t *testing.T) {
	engine, repo := newTestServer(t)

	body := `{"date":"2024-02-01","shift":"A","incharge":"Ravi"}`
	for i := 0; i < 2; i++ {
		w, _ := do(t, engine, http.MethodPost, "/api/disamatic-reports", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Len(t, repo.docs, 2)
}

func TestRangeQueryInclusivity(t *testing.T) {
	engine, _ := newTestServer(t)

	for _, day := range []string{"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13"} {
		body := fmt.Sprintf(`{"date":%q,"section":"basicInfo","incharge":"Ravi"}`, day)
		w, _ := do(t, engine, http.MethodPost, "/api/disamatic-reports", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, engine, http.MethodGet,
		"/api/disamatic-reports/range?startDate=2024-01-10&endDate=2024-01-12", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Count)
	require.Equal(t, 3, *env.Count)

	var reports []models.ShiftReport
	require.NoError(t, json.Unmarshal(env.Data, &reports))
	require.Len(t, reports, 3)
	// Newest first.
	require.Equal(t, 12, reports[0].Date.Day())
	require.Equal(t, 10, reports[2].Date.Day())
}

func TestRangeQueryMissingParams(t *testing.T) {
	engine, _ := newTestServer(t)

	w, env := do(t, engine, http.MethodGet, "/api/disamatic-reports/range?startDate=2024-01-10", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, env.Errors, "endDate")
}

func TestGetByDate(t *testing.T) {
	engine, _ := newTestServer(t)

	body := `{"date":"2024-03-05","section":"basicInfo","incharge":"Ravi"}`
	w, _ := do(t, engine, http.MethodPost, "/api/disamatic-reports", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, engine, http.MethodGet, "/api/disamatic-reports/date?date=2024-03-05", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, *env.Count)

	w, env = do(t, engine, http.MethodGet, "/api/disamatic-reports/date?date=2024-03-06", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, *env.Count)

	w, _ = do(t, engine, http.MethodGet, "/api/disamatic-reports/date", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPointOperations(t *testing.T) {
	engine, _ := newTestServer(t)

	w, env := do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-04-01","shift":"A","incharge":"Ravi","members":["Anil","Sunil"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeReport(t, env.Data)
	require.Equal(t, "Anil, Sunil", created.MembersPresent)

	id := created.ID.Hex()

	w, env = do(t, engine, http.MethodGet, "/api/disamatic-reports/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, id, decodeReport(t, env.Data).ID.Hex())

	w, env = do(t, engine, http.MethodPut, "/api/disamatic-reports/"+id,
		`{"date":"2024-04-01","shift":"B","incharge":"Suresh"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeReport(t, env.Data)
	require.Equal(t, "B", updated.Shift)
	require.Equal(t, "Suresh", updated.Incharge)

	w, _ = do(t, engine, http.MethodDelete, "/api/disamatic-reports/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, engine, http.MethodGet, "/api/disamatic-reports/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPointOperationsNotFound(t *testing.T) {
	engine, _ := newTestServer(t)
	missing := primitive.NewObjectID().Hex()

	w, _ := do(t, engine, http.MethodGet, "/api/disamatic-reports/"+missing, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, engine, http.MethodPut, "/api/disamatic-reports/"+missing,
		`{"date":"2024-04-01","shift":"B","incharge":"Suresh"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, engine, http.MethodDelete, "/api/disamatic-reports/"+missing, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListNewestFirst(t *testing.T) {
	engine, _ := newTestServer(t)

	for _, day := range []string{"2024-01-10", "2024-01-12", "2024-01-11"} {
		body := fmt.Sprintf(`{"date":%q,"section":"basicInfo","incharge":"Ravi"}`, day)
		do(t, engine, http.MethodPost, "/api/disamatic-reports", body)
	}

	w, env := do(t, engine, http.MethodGet, "/api/disamatic-reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, *env.Count)

	var reports []models.ShiftReport
	require.NoError(t, json.Unmarshal(env.Data, &reports))
	require.Equal(t, 12, reports[0].Date.Day())
	require.Equal(t, 11, reports[1].Date.Day())
	require.Equal(t, 10, reports[2].Date.Day())
}

func TestEventSectionMergeOverHTTP(t *testing.T) {
	engine, _ := newTestServer(t)

	do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-05-01","section":"maintenance","maintenance":"Oil top-up done"}`)

	w, env := do(t, engine, http.MethodPost, "/api/disamatic-reports",
		`{"date":"2024-05-01","section":"eventSection","significantEvent":"Power failure","maintenance":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	merged := decodeReport(t, env.Data)
	require.Equal(t, "Power failure", merged.SignificantEvent)
	require.Equal(t, "Oil top-up done", merged.Maintenance)
}
