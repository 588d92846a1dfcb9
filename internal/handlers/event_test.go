package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimsight/case-dashboard-service/internal/models"
)

// fakeStore records inserts and serves canned query results.
type fakeStore struct {
	inserted  []models.CaseInsert
	insertErr error

	counts    models.StatusCounts
	countsErr error

	cases    []models.CaseRecord
	casesErr error

	byHospital    []models.HospitalCount
	byHospitalErr error

	byTPA    []models.TPACount
	byTPAErr error
}

func (f *fakeStore) InsertCase(_ context.Context, row models.CaseInsert) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, row)
	return nil
}

func (f *fakeStore) StatusCounts(context.Context) (models.StatusCounts, error) {
	return f.counts, f.countsErr
}

func (f *fakeStore) ListCases(context.Context) ([]models.CaseRecord, error) {
	return f.cases, f.casesErr
}

func (f *fakeStore) SavedByHospital(context.Context) ([]models.HospitalCount, error) {
	return f.byHospital, f.byHospitalErr
}

func (f *fakeStore) SavedByTPA(context.Context) ([]models.TPACount, error) {
	return f.byTPA, f.byTPAErr
}

// fakeNotifier counts broadcasts.
type fakeNotifier struct {
	broadcasts int
}

func (f *fakeNotifier) BroadcastCaseUpdate() {
	f.broadcasts++
}

func newBotRouter(st CaseStore, nt Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterBotRoutes(r, st, nt)
	return r
}

func postBotEvent(t *testing.T, r *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bot/event", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBotEvent_MissingStatusIsAckedAndDropped(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{"tpa": "Acko"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, st.inserted)
	assert.Zero(t, nt.broadcasts)
}

func TestBotEvent_MissingTPAIsAckedAndDropped(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{"status": "PARSED"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, st.inserted)
	assert.Zero(t, nt.broadcasts)
}

func TestBotEvent_UndecodableBodyIsAckedAndDropped(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	req := httptest.NewRequest(http.MethodPost, "/api/bot/event", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, st.inserted)
	assert.Zero(t, nt.broadcasts)
}

func TestBotEvent_SavedEventInsertsRowAndBroadcasts(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{
		"status":      "SAVED",
		"tpa":         "Acko",
		"patientName": "Jane Doe",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.Len(t, st.inserted, 1)
	assert.Equal(t, 1, nt.broadcasts)

	row := st.inserted[0]
	assert.Equal(t, "Jane Doe", row.PatientName)
	assert.Equal(t, "N/A", row.ALNumber)
	assert.Equal(t, "N/A", row.PolicyNumber)
	assert.Equal(t, "N/A", row.HospitalGroup)
	assert.Equal(t, "Acko", row.TPAName)
	assert.Equal(t, "SAVED", row.Status)
	assert.Nil(t, row.ParsedTime)
	require.NotNil(t, row.SavedTime)
}

func TestBotEvent_ParsedEventSetsParsedTimeOnly(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{"status": "PARSED", "tpa": "MediAssist"})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, st.inserted, 1)
	require.NotNil(t, st.inserted[0].ParsedTime)
	assert.Nil(t, st.inserted[0].SavedTime)
}

func TestBotEvent_UnknownStatusStillInserted(t *testing.T) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{"status": "QUEUED", "tpa": "Acko"})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "QUEUED", st.inserted[0].Status)
	assert.Nil(t, st.inserted[0].ParsedTime)
	assert.Nil(t, st.inserted[0].SavedTime)
	assert.Equal(t, 1, nt.broadcasts)
}

func TestBotEvent_InsertFailureReturns500WithoutBroadcast(t *testing.T) {
	st := &fakeStore{insertErr: errors.New("connection reset")}
	nt := &fakeNotifier{}
	r := newBotRouter(st, nt)

	w := postBotEvent(t, r, map[string]any{"status": "SAVED", "tpa": "Acko"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, nt.broadcasts)
}
