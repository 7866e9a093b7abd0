package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type deliberationDoneMsg struct {
	err error
}

type deliberationProgressMsg struct {
	state     domain.State
	iteration int
}

type deliberationSpinnerModel struct {
	spinner       spinner.Model
	topic         string
	maxIterations int
	state         domain.State
	iteration     int
	run           tea.Cmd
	err           error
	done          bool
}

func newDeliberationSpinnerModel(topic string, maxIterations int, run tea.Cmd) deliberationSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return deliberationSpinnerModel{
		spinner:       s,
		topic:         topic,
		maxIterations: maxIterations,
		state:         domain.StateInit,
		run:           run,
	}
}

func (m deliberationSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m deliberationSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case deliberationProgressMsg:
		m.state = msg.state
		m.iteration = msg.iteration
		return m, nil
	case deliberationDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m deliberationSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label())
}

func (m deliberationSpinnerModel) label() string {
	switch {
	case m.state == domain.StateInit:
		return fmt.Sprintf("Convening the board on %q...", m.topic)
	case m.iteration > 0 && m.state != domain.StateSynthesize:
		return fmt.Sprintf("Deliberating: %s (iteration %d/%d)...", stageLabel(m.state), m.iteration, m.maxIterations)
	default:
		return fmt.Sprintf("Deliberating: %s...", stageLabel(m.state))
	}
}

func stageLabel(state domain.State) string {
	if phase, ok := state.Phase(); ok {
		return string(phase)
	}
	return string(state)
}

// runDeliberationSpinner shows a spinner on output while run executes. The
// observer handed to run moves the label along with each state transition.
func runDeliberationSpinner(ctx context.Context, output io.Writer, topic string, maxIterations int, run func(context.Context, application.Observer) error) error {
	var p *tea.Program
	observer := func(event application.Event) {
		if event.Kind == application.EventTransition && p != nil {
			p.Send(deliberationProgressMsg{state: event.To, iteration: event.Iteration})
		}
	}

	runCmd := func() tea.Msg {
		return deliberationDoneMsg{err: run(ctx, observer)}
	}

	p = tea.NewProgram(
		newDeliberationSpinnerModel(topic, maxIterations, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(deliberationSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
