// Cuckaroo29 Solver: GPU-Accelerated Cuckoo Cycle Proof-of-Work Client
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opencuckoo/cuckaroo29/internal/config"
	"github.com/opencuckoo/cuckaroo29/internal/solver"
	"github.com/opencuckoo/cuckaroo29/internal/solver/controller"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00")).
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4B5563")).
			Padding(0, 1)

	curveBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9CA3AF")).
			Padding(1, 2)

	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
)

var configPath = flag.String("config", "solver.yaml", "path to solver tuning YAML")

type tickMsg time.Time

type solveDoneMsg struct {
	proof solver.Proof42
	err   error
}

type model struct {
	s        *solver.Solver
	start    time.Time
	done     bool
	err      error
	snapshot controller.StatsSnapshot
	curve    viewport.Model
}

func newModel() model {
	curve := viewport.New(60, 10)
	curve.Style = curveBoxStyle

	cfg, err := config.LoadSolverConfig(*configPath)
	if err != nil {
		return model{err: err, curve: curve}
	}
	return model{
		s:     solver.New(cfg),
		start: time.Now(),
		curve: curve,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickEvery(), solveOnce(m.s))
}

func tickEvery() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func solveOnce(s *solver.Solver) tea.Cmd {
	return func() tea.Msg {
		job, err := solver.Prepare([]byte("monitor-benchmark"), 0)
		if err != nil {
			return solveDoneMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		proof, err := s.Solve(ctx, job)
		return solveDoneMsg{proof: proof, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tickMsg:
		if m.s != nil {
			m.snapshot = m.s.Stats()
		}
		m.curve.SetContent(renderSurvivorCurve(m.snapshot))
		if m.done {
			return m, nil
		}
		m.curve, cmd = m.curve.Update(msg)
		return m, tea.Batch(cmd, tickEvery())
	case solveDoneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	}

	m.curve, cmd = m.curve.Update(msg)
	return m, cmd
}

func (m model) View() string {
	header := headerStyle.Render("Cuckaroo29 Solver Monitor")
	elapsed := time.Since(m.start).Round(time.Second)

	var body string
	switch {
	case m.err != nil && !m.done:
		body = errorStyle.Render(fmt.Sprintf("startup error: %v", m.err))
	case m.done && m.err != nil:
		body = errorStyle.Render(fmt.Sprintf("no cycle found after %s: %v", elapsed, m.err))
	case m.done:
		body = progressStyle.Render(fmt.Sprintf("cycle found after %s", elapsed))
	default:
		body = infoStyle.Render(fmt.Sprintf("solving... %s elapsed, %d rounds run",
			elapsed, m.snapshot.RoundsRun))
	}

	footer := footerStyle.Render("q: quit, ↑/↓: scroll curve")

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		header, body, m.curve.View(), footer)
}

func renderSurvivorCurve(snap controller.StatsSnapshot) string {
	if len(snap.SurvivorCurve) == 0 {
		return "no trim rounds completed yet"
	}
	out := "Survivors per trim round:\n"
	for i, count := range snap.SurvivorCurve {
		out += fmt.Sprintf("  round %3d: %d\n", i+1, count)
	}
	if snap.Overflowed > 0 {
		out += errorStyle.Render(fmt.Sprintf("\nbucket overflow: %d edges dropped\n", snap.Overflowed))
	}
	return out
}

func main() {
	flag.Parse()

	p := tea.NewProgram(newModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		os.Exit(1)
	}
}
