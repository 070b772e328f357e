package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

type loadCompleteMsg struct {
	results []catalog.Result
	elapsed time.Duration
}

type loadErrorMsg struct {
	err error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CreateLoadCommand creates a tea command that parses the investigations
func CreateLoadCommand(ctx context.Context, investigations []model.Investigation, workers int, opts parser.Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		results, err := catalog.ParseAll(ctx, investigations, workers, opts)
		if err != nil {
			return loadErrorMsg{err: err}
		}
		return loadCompleteMsg{results: results, elapsed: time.Since(start)}
	}
}
