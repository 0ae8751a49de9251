package tui

import (
	"io"

	"github.com/charmbracelet/bubbletea"
)

// Start attaches to feed and renders progress to out until the feed is
// closed. The returned function waits for the renderer to exit.
func Start(feed *Feed, out io.Writer, opts ...tea.ProgramOption) func() error {
	feed.Attach()

	opts = append([]tea.ProgramOption{
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, opts...)
	program := tea.NewProgram(NewModel(feed), opts...)

	done := make(chan error, 1)
	go func() {
		_, err := program.Run()
		done <- err
	}()

	return func() error {
		return <-done
	}
}
