package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretsense/fretsense/internal/buttons"
	"github.com/fretsense/fretsense/internal/capture"
	"github.com/fretsense/fretsense/internal/session"
)

type silentAudio struct{}

func (silentAudio) PlayTone(float64, int64)  {}
func (silentAudio) PlayBeep(float64, int64)  {}
func (silentAudio) StopAll()                 {}
func (silentAudio) SetAmplifierEnabled(bool) {}
func (silentAudio) EmitWarningCue()          {}

func newTestServer() (*Server, *buttons.Scripted, *session.Engine) {
	input := buttons.NewScripted()
	engine := session.New(
		session.DefaultParams(),
		input,
		capture.NewScripted(110.0),
		silentAudio{},
		session.ModeSwitchFunc(func() session.Mode { return session.ModeListenOnly }),
	)
	return NewServer(engine, "127.0.0.1:0"), input, engine
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleStatus(t *testing.T) {
	s, input, engine := newTestServer()

	rec := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snapshot session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, session.StateIdle, snapshot.State)

	input.Press(5)
	engine.Update(0)
	engine.Update(200)
	engine.Update(250)

	rec = get(t, s, "/api/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, session.StateProvidingFeedback, snapshot.State)
	assert.Equal(t, 5, snapshot.TargetString)
	require.NotNil(t, snapshot.Result)
	assert.Equal(t, 110.0, snapshot.Result.TargetFrequency)
}

func TestHandleStrings(t *testing.T) {
	s, _, _ := newTestServer()

	rec := get(t, s, "/api/strings")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []struct {
		Number    int     `json:"number"`
		Note      string  `json:"note"`
		Frequency float64 `json:"frequency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 6)
	assert.Equal(t, "E4", infos[0].Note)
	assert.Equal(t, 82.41, infos[5].Frequency)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
