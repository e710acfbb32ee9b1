package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctor-dialogue-server/internal/auth"
	"github.com/doctor-dialogue-server/internal/config"
	"github.com/doctor-dialogue-server/internal/domain"
)

// memStore implements store.Store in memory for handler tests.
type memStore struct {
	users         map[string]string
	profiles      map[string]*domain.UserProfile
	prescriptions []domain.PrescriptionRecord
	nextID        int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]string{},
		profiles: map[string]*domain.UserProfile{},
	}
}

func (m *memStore) CreateUser(_ context.Context, username, password string) error {
	if _, ok := m.users[username]; ok {
		return domain.ErrUsernameTaken
	}
	m.users[username] = password
	return nil
}

func (m *memStore) GetPassword(_ context.Context, username string) (string, error) {
	p, ok := m.users[username]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *memStore) SaveProfile(_ context.Context, p *domain.UserProfile) error {
	cp := *p
	m.profiles[p.Username] = &cp
	return nil
}

func (m *memStore) GetProfile(_ context.Context, username string) (*domain.UserProfile, error) {
	p, ok := m.profiles[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) SavePrescription(_ context.Context, rec *domain.PrescriptionRecord) error {
	m.nextID++
	rec.ID = m.nextID
	m.prescriptions = append(m.prescriptions, *rec)
	return nil
}

func (m *memStore) ListPrescriptions(_ context.Context, username string) ([]domain.PrescriptionRecord, error) {
	var out []domain.PrescriptionRecord
	for _, r := range m.prescriptions {
		if r.Username == username {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *memStore) GetPrescription(_ context.Context, username, timestamp string) (*domain.PrescriptionRecord, error) {
	for _, r := range m.prescriptions {
		if r.Username == username && r.Timestamp == timestamp {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) DeletePrescription(_ context.Context, username, timestamp string) error {
	for i, r := range m.prescriptions {
		if r.Username == username && r.Timestamp == timestamp {
			m.prescriptions = append(m.prescriptions[:i], m.prescriptions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) Health(context.Context) error { return nil }
func (m *memStore) Close() error                 { return nil }

// memConditions is an empty catalog; handler tests do not depend on
// seeded conditions.
type memConditions struct{}

func (memConditions) Lookup(context.Context, string, domain.AgeGroup, domain.Severity) ([]domain.ConditionRecord, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.Logging.Level = "error"
	cfg.RateLimit.RequestsPerSecond = 1000
	cfg.RateLimit.Burst = 1000

	st := newMemStore()
	srv := NewServer(Deps{
		Config:  cfg,
		Store:   st,
		Auth:    auth.NewService(st, logger),
		Catalog: memConditions{},
		Logger:  logger,
	})
	return srv, st
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func createSession(t *testing.T, srv *Server, username string) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions",
		map[string]string{"username": username})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Contains(t, body["prompt"], "child (under 18) or an adult")
	return body["session_id"].(string)
}

func TestSessionDialogue(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/answer",
		map[string]any{"text": "adult", "severity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "vitals", body["state"])
	assert.Contains(t, body["prompt"], "vital signs")

	w = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/answer",
		map[string]any{"text": "unknown"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "initial", decode(t, w)["state"])
}

func TestSessionNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/nope/answer",
		map[string]any{"text": "adult"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLastSessionWins(t *testing.T) {
	srv, _ := newTestServer(t)
	first := createSession(t, srv, "alice")
	_ = createSession(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+first+"/answer",
		map[string]any{"text": "adult"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLanguageEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/language",
		map[string]string{"language": "Spanish"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "es", decode(t, w)["code"])

	w = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/language",
		map[string]string{"language": "Klingon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/answer",
		map[string]any{"text": "adult"})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "age_group", body["state"])
}

func TestPrescriptionOnDemand(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	// Before the age group is known, composing is rejected.
	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/prescription", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/answer",
		map[string]any{"text": "adult"})

	w = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/prescription", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prescription for Adult Patient")
}

func TestHistoryEndpoints(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.SavePrescription(context.Background(), &domain.PrescriptionRecord{
		Username: "alice", Text: "take rest", Timestamp: "2025-03-14 09:30:00",
	}))

	w := doJSON(t, srv, http.MethodGet, "/api/v1/prescriptions?username=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "take rest")

	selection := "[2025-03-14 09:30:00]"
	w = doJSON(t, srv, http.MethodGet,
		"/api/v1/prescriptions/export?username=alice&selection="+
			strings.ReplaceAll(selection, " ", "%20"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"),
		"prescription_alice_20250314_093000.txt")
	assert.Contains(t, w.Body.String(), "take rest")
	assert.Contains(t, w.Body.String(), "-- Page 1 of 1 --")

	w = doJSON(t, srv, http.MethodGet,
		"/api/v1/prescriptions/export?username=alice&selection=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/prescriptions",
		map[string]string{"username": "alice", "selection": selection})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/prescriptions",
		map[string]string{"username": "alice", "selection": selection})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageEndpoint_BadUpload(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	fmt.Fprint(fw, "not an image")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestTranscriptWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv, "alice")

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") +
		"/api/v1/sessions/" + id + "/transcript/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var turn domain.Turn
	require.NoError(t, conn.ReadJSON(&turn))
	assert.Equal(t, "Doctor", turn.Speaker)
	assert.Contains(t, turn.Text, "child (under 18) or an adult")
}
