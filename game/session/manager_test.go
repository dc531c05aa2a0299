package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstop/game/config"
	"nextstop/game/engine"
	"nextstop/game/service"
)

// discardOutbox accepts every message and throws it away.
type discardOutbox struct{}

func (discardOutbox) TrySend([]byte) bool { return true }

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	configs, err := config.NewManager("")
	require.NoError(t, err)
	return NewManager(configs)
}

// join runs one player through matchmaking and seats them.
func join(t *testing.T, m *Manager, city string) (*service.Coordinator, uuid.UUID) {
	t.Helper()
	playerID := uuid.New()
	coord, err := m.JoinOrCreate(city, playerID)
	require.NoError(t, err)
	coord.AddPlayer(playerID, "player", discardOutbox{})
	return coord, playerID
}

// playToEnd drives a single-player game until every window is filled.
func playToEnd(t *testing.T, coord *service.Coordinator, playerID uuid.UUID) {
	t.Helper()
	for rounds := 0; rounds < 100; rounds++ {
		if coord.Ended() {
			return
		}
		require.NoError(t, coord.StartRound())
		if coord.Ended() {
			return
		}

		sheet := coord.Snapshot().Players[playerID]
		for lineID := range sheet.TrainCars {
			if sheet.CanUseLine(lineID) {
				err := coord.Dispatch(playerID, engine.Action{
					Kind:   engine.ActionChooseLine,
					LineID: lineID,
				})
				require.NoError(t, err)
				break
			}
		}
	}
	t.Fatal("Game never ended")
}

func TestJoinOrCreateStartsGame(t *testing.T) {
	m := newTestManager(t)

	coord, playerID := join(t, m, "amsterdam")

	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "amsterdam", coord.City())
	assert.Equal(t, playerID, coord.Snapshot().Conductor)
}

func TestJoinOrCreateFillsOpenSeats(t *testing.T) {
	m := newTestManager(t)

	first, _ := join(t, m, "berlin")
	second, _ := join(t, m, "berlin")

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 2, first.PlayerCount())
}

func TestJoinOrCreateOverflowsToNewSession(t *testing.T) {
	m := newTestManager(t)

	first, _ := join(t, m, "paris")
	for i := 0; i < SessionCapacity-1; i++ {
		coord, _ := join(t, m, "paris")
		assert.Equal(t, first.ID(), coord.ID())
	}
	require.Equal(t, SessionCapacity, first.PlayerCount())

	// Seat seven is a new table.
	seventh, _ := join(t, m, "paris")
	assert.NotEqual(t, first.ID(), seventh.ID())
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, 1, seventh.PlayerCount())
}

func TestJoinOrCreateSeparatesCities(t *testing.T) {
	m := newTestManager(t)

	berlin, _ := join(t, m, "berlin")
	madrid, _ := join(t, m, "madrid")

	assert.NotEqual(t, berlin.ID(), madrid.ID())
	assert.Equal(t, 2, m.Count())
}

func TestJoinOrCreateNormalizesCity(t *testing.T) {
	m := newTestManager(t)

	first, _ := join(t, m, "Madrid")
	second, _ := join(t, m, "madrid")

	assert.Equal(t, first.ID(), second.ID())
}

func TestJoinOrCreateUnknownCity(t *testing.T) {
	m := newTestManager(t)

	_, err := m.JoinOrCreate("atlantis", uuid.New())
	require.ErrorIs(t, err, config.ErrCityNotFound)
	assert.Equal(t, 0, m.Count())
}

func TestJoinOrCreateSkipsEndedGames(t *testing.T) {
	m := newTestManager(t)

	first, playerID := join(t, m, "amsterdam")
	playToEnd(t, first, playerID)

	second, _ := join(t, m, "amsterdam")
	assert.NotEqual(t, first.ID(), second.ID())
}

func TestGetAndDelete(t *testing.T) {
	m := newTestManager(t)
	coord, _ := join(t, m, "berlin")

	got, err := m.Get(coord.ID())
	require.NoError(t, err)
	assert.Equal(t, coord.ID(), got.ID())

	_, err = m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, m.Delete(coord.ID()))
	assert.Equal(t, 0, m.Count())
	assert.ErrorIs(t, m.Delete(coord.ID()), ErrSessionNotFound)
}

func TestRemoveEnded(t *testing.T) {
	m := newTestManager(t)

	ended, playerID := join(t, m, "amsterdam")
	running, _ := join(t, m, "berlin")
	playToEnd(t, ended, playerID)

	assert.Equal(t, 1, m.RemoveEnded())
	assert.Equal(t, 1, m.Count())

	_, err := m.Get(ended.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(running.ID())
	assert.NoError(t, err)
}

func TestListReportsSessions(t *testing.T) {
	m := newTestManager(t)
	join(t, m, "paris")
	join(t, m, "madrid")

	infos := make(map[string]bool)
	for _, coord := range m.List() {
		infos[coord.Info().City] = true
	}
	assert.True(t, infos["paris"])
	assert.True(t, infos["madrid"])
}
