package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/history"
	"github.com/rshade/ecotrip/internal/modes"
)

func typeText(m *CompareModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *CompareModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestNewCompareModel(t *testing.T) {
	t.Parallel()

	m := NewCompareModel(context.Background(), CompareModelOptions{
		Theme:    config.ThemeDark,
		Purpose:  modes.PurposeWork,
		Distance: "42",
		From:     "Home",
	})

	require.NotNil(t, m)
	assert.Equal(t, CompareStateEditing, m.state)
	assert.Equal(t, modes.PurposeWork, m.Purpose())
	assert.Equal(t, "42", m.inputs[fieldDistance].Value())
	assert.Equal(t, "Home", m.inputs[fieldFrom].Value())
	assert.Equal(t, fieldDistance, m.focus)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Distance (km)")
	assert.Contains(t, m.View(), "[Work / business]")
}

func TestCompareModel_SubmitAndSave(t *testing.T) {
	t.Parallel()

	var savedFrom, savedTo string
	saveFn := func(_ context.Context, cmp engine.Comparison, from, to string) ([]history.Record, error) {
		savedFrom, savedTo = from, to
		return []history.Record{history.NewRecord(cmp, from, to)}, nil
	}

	m := NewCompareModel(context.Background(), CompareModelOptions{Theme: config.ThemeDark, Save: saveFn})
	typeText(m, "12")
	press(m, tea.KeyTab)
	typeText(m, "Home")
	press(m, tea.KeyTab)
	typeText(m, "Office")
	press(m, tea.KeyTab)
	assert.Equal(t, fieldPurpose, m.focus)

	// Purpose cycles with wrap-around.
	press(m, tea.KeyLeft)
	assert.Equal(t, modes.PurposeLong, m.Purpose())
	press(m, tea.KeyRight)
	assert.Equal(t, modes.PurposeDaily, m.Purpose())

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, CompareStateResult, m.state)
	require.NotNil(t, m.Comparison())
	assert.InDelta(t, 12.0, m.Comparison().DistanceKm, 1e-9)
	assert.Equal(t, modes.PurposeDaily, m.Comparison().Purpose)

	m.Update(cmd())
	assert.Equal(t, "Home", savedFrom)
	assert.Equal(t, "Office", savedTo)
	require.Len(t, m.Recent(), 1)

	view := m.View()
	assert.Contains(t, view, "Home → Office")
	assert.Contains(t, view, "CAR VS. PUBLIC TRANSPORT")

	// Back to the form keeps the history visible.
	press(m, tea.KeyEnter)
	assert.Equal(t, CompareStateEditing, m.state)
	assert.Contains(t, m.View(), "RECENT TRIPS")
}

func TestCompareModel_InvalidDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "blank", input: "", wantErr: engine.ErrDistanceNotNumber},
		{name: "text", input: "far", wantErr: engine.ErrDistanceNotNumber},
		{name: "zero", input: "0", wantErr: engine.ErrDistanceNotPositive},
		{name: "negative", input: "-4", wantErr: engine.ErrDistanceNotPositive},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewCompareModel(context.Background(), CompareModelOptions{Distance: tt.input})
			press(m, tea.KeyTab)

			cmd := press(m, tea.KeyEnter)
			assert.Nil(t, cmd)
			assert.Equal(t, CompareStateEditing, m.state)
			require.ErrorIs(t, m.inputErr, tt.wantErr)
			assert.Equal(t, fieldDistance, m.focus)
			assert.Nil(t, m.Comparison())
			assert.Contains(t, m.View(), m.inputErr.Error())
		})
	}
}

func TestCompareModel_SaveFailureShown(t *testing.T) {
	t.Parallel()

	m := NewCompareModel(context.Background(), CompareModelOptions{
		Distance: "5",
		Save: func(context.Context, engine.Comparison, string, string) ([]history.Record, error) {
			return nil, errors.New("disk full")
		},
	})
	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, CompareStateResult, m.state)
	assert.Contains(t, m.View(), "trip not saved to history: disk full")
}

func TestCompareModel_Quit(t *testing.T) {
	t.Parallel()

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewCompareModel(context.Background(), CompareModelOptions{})
		cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, CompareStateQuitting, m.state)
		assert.Empty(t, m.View())
	}

	m := NewCompareModel(context.Background(), CompareModelOptions{Distance: "3"})
	press(m, tea.KeyEnter)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, CompareStateQuitting, m.state)
}

func TestCompareModel_ToggleTheme(t *testing.T) {
	t.Parallel()

	store := config.NewThemeStore(nil, nil)
	m := NewCompareModel(context.Background(), CompareModelOptions{
		Theme:       store.Get(),
		ToggleTheme: store.Toggle,
	})

	press(m, tea.KeyCtrlT)
	assert.Equal(t, config.ThemeLight, m.theme)
	assert.Equal(t, LightPalette, m.renderer.Styles().Palette)

	failing := NewCompareModel(context.Background(), CompareModelOptions{
		ToggleTheme: func() (config.Theme, error) { return config.ThemeDark, errors.New("read-only") },
	})
	press(failing, tea.KeyCtrlT)
	assert.Contains(t, failing.View(), "theme not saved: read-only")
}

func TestCompareModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := NewCompareModel(context.Background(), CompareModelOptions{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
