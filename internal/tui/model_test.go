//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// MockTapeSource is a mock implementation of TapeSource.
type MockTapeSource struct{}

func (m *MockTapeSource) Read() (*progrock.StatusUpdate, error) {
	return nil, io.EOF
}

func TestModel_Update_TapeUpdate_AddsPackage(t *testing.T) {
	m := NewModel(&MockTapeSource{})

	_, cmd := m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "elm-lang/core"},
		},
	}})

	require.Len(t, m.packages, 1)
	assert.Equal(t, "elm-lang/core", m.packages[0].Name)
	assert.Equal(t, statusRunning, m.packages[0].Status)
	assert.NotNil(t, cmd)
}

func TestModel_Update_TapeUpdate_Completes(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	m.packages = []PackageState{
		{ID: "1", Name: "elm-lang/core", Status: statusRunning},
		{ID: "2", Name: "elm-lang/html", Status: statusRunning},
	}

	now := timestamppb.New(time.Now())
	reason := "elm-lang/html: checked-out failed: unknown revision"
	m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "elm-lang/core", Completed: now},
			{Id: "2", Name: "elm-lang/html", Completed: now, Error: &reason},
		},
	}})

	assert.Equal(t, statusCompleted, m.packages[0].Status)
	assert.Equal(t, statusFailed, m.packages[1].Status)
	assert.Equal(t, reason, m.packages[1].Err)
}

func TestModel_Update_TapeEndedQuits(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	_, cmd := m.Update(MsgTapeEnded{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Update_CtrlCQuits(t *testing.T) {
	m := NewModel(&MockTapeSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWaitForTape_EndsOnEOF(t *testing.T) {
	msg := WaitForTape(&MockTapeSource{})()
	assert.IsType(t, MsgTapeEnded{}, msg)
}
