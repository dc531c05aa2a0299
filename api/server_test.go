package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstop/game/config"
	"nextstop/game/service"
	"nextstop/game/session"
	wstransport "nextstop/transport/websocket"
)

type nullOutbox struct{}

func (nullOutbox) TrySend([]byte) bool { return true }

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()

	configs, err := config.NewManager("")
	require.NoError(t, err)
	registry := session.NewManager(configs)

	cfg := Config{AllowedOrigins: []string{"*"}}
	server := httptest.NewServer(NewServer(cfg, configs, registry, wstransport.NewHandler(registry)))
	t.Cleanup(server.Close)
	return server, registry
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seedSession(t *testing.T, registry *session.Manager, city string) *service.Coordinator {
	t.Helper()

	playerID := uuid.New()
	coord, err := registry.JoinOrCreate(city, playerID)
	require.NoError(t, err)
	coord.AddPlayer(playerID, "seed", nullOutbox{})
	return coord
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	var body map[string]interface{}
	status := getJSON(t, server.URL+"/api/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["sessions"])
}

func TestListCities(t *testing.T) {
	server, _ := newTestServer(t)

	var body struct {
		Cities []config.CityInfo `json:"cities"`
	}
	status := getJSON(t, server.URL+"/api/cities", &body)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Cities, 4)
	assert.Equal(t, "amsterdam", body.Cities[0].City)
}

func TestListSessions(t *testing.T) {
	server, registry := newTestServer(t)

	var empty struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/sessions", &empty))
	assert.Equal(t, 0, empty.Count)

	seedSession(t, registry, "berlin")
	seedSession(t, registry, "paris")

	var body struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/sessions", &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Sessions, 2)
	// Newest first.
	assert.False(t, body.Sessions[0].CreatedAt.Before(body.Sessions[1].CreatedAt))
}

func TestGetSession(t *testing.T) {
	server, registry := newTestServer(t)
	coord := seedSession(t, registry, "madrid")

	var info service.SessionInfo
	status := getJSON(t, server.URL+"/api/sessions/"+coord.ID().String(), &info)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, coord.ID(), info.ID)
	assert.Equal(t, "madrid", info.City)
	assert.Equal(t, 1, info.PlayerCount)
}

func TestGetSessionErrors(t *testing.T) {
	server, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/api/sessions/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/sessions/"+uuid.NewString(), nil))
}

func TestGetGameState(t *testing.T) {
	server, registry := newTestServer(t)
	coord := seedSession(t, registry, "amsterdam")
	require.NoError(t, coord.StartRound())

	var state struct {
		City        string          `json:"city"`
		Round       int             `json:"round"`
		CurrentCard json.RawMessage `json:"current_card"`
		Deck        []interface{}   `json:"deck"`
	}
	status := getJSON(t, server.URL+"/api/sessions/"+coord.ID().String()+"/state", &state)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "amsterdam", state.City)
	assert.NotEmpty(t, state.CurrentCard)
	assert.Len(t, state.Deck, 15)
}

func TestDeleteSession(t *testing.T) {
	server, registry := newTestServer(t)
	coord := seedSession(t, registry, "berlin")

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/sessions/"+coord.ID().String(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, registry.Count())

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketMounted(t *testing.T) {
	server, registry := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	join := service.Message{Type: service.MsgJoinGame, City: "paris", PlayerName: "apitester"}
	data, err := join.Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	// A frame may carry several newline-separated messages.
	first, _, _ := strings.Cut(string(frame), "\n")
	var reply service.Message
	require.NoError(t, json.Unmarshal([]byte(first), &reply))
	assert.Equal(t, service.MsgGameJoined, reply.Type)
	assert.Equal(t, 1, registry.Count())
}
