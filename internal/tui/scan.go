// Package tui provides the live scan visualizer shown during
// `cubematch scan --watch`, built the same way a bubbletea solve
// recorder would be: a small model driving a background command and a
// tick loop.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubematch"
	"github.com/SeamusWaldron/cubematch/internal/capture"
	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

type tickMsg time.Time

type scanResultMsg struct {
	frame capture.Frame
	face  string
	err   error
}

// ScanModel drives one scan-and-match cycle in an alt-screen TUI.
type ScanModel struct {
	device capture.Device
	table  *cubematch.Table
	opts   []cubematch.Option

	startTime time.Time
	elapsed   time.Duration
	done      bool
	quitting  bool

	frame capture.Frame
	face  string
	err   error
}

// NewScanModel builds a model that scans device once it runs, matching
// against table.
func NewScanModel(device capture.Device, table *cubematch.Table, opts ...cubematch.Option) *ScanModel {
	return &ScanModel{device: device, table: table, opts: opts}
}

// Result returns the outcome of the scan after the program exits: the
// raw frame sampled, the resolved face string (empty on failure), and
// any error.
func (m *ScanModel) Result() (capture.Frame, string, error) {
	return m.frame, m.face, m.err
}

func (m *ScanModel) Init() tea.Cmd {
	m.startTime = time.Now()
	return tea.Batch(m.runScan(), m.tickCmd())
}

func (m *ScanModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *ScanModel) runScan() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		frame, err := m.device.Scan(ctx)
		if err != nil {
			return scanResultMsg{err: err}
		}

		var bgrs [geometry.NumFacelets]cubematch.BGR
		for i, c := range frame {
			bgrs[i] = cubematch.BGR{B: c[0], G: c[1], R: c[2]}
		}

		face, err := cubematch.Match(m.table, bgrs, m.opts...)
		return scanResultMsg{frame: frame, face: face, err: err}
	}
}

func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		if !m.done {
			m.elapsed = time.Since(m.startTime)
			return m, m.tickCmd()
		}

	case scanResultMsg:
		m.done = true
		m.frame = msg.frame
		m.face = msg.face
		m.err = msg.err
	}

	return m, nil
}

func (m *ScanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubematch scan"))
	b.WriteString("\n\n")

	if !m.done {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Scanning... (%.1fs)", m.elapsed.Seconds())))
		b.WriteString("\n\n")
	} else if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Scan failed: %v", m.err)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(resultStyle.Render("Match succeeded"))
		b.WriteString("\n")
		b.WriteString(faceStyle.Render(formatFaceString(m.face)))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("q=quit"))
	b.WriteString("\n")

	return b.String()
}

// formatFaceString breaks the flat 54-character result into its six
// 9-character faces, one per line, in U,R,F,D,L,B order.
func formatFaceString(s string) string {
	if len(s) != geometry.NumFacelets {
		return s
	}
	var b strings.Builder
	labels := "URFDLB"
	for f := 0; f < 6; f++ {
		b.WriteString(fmt.Sprintf("%c: %s\n", labels[f], s[f*9:f*9+9]))
	}
	return strings.TrimRight(b.String(), "\n")
}
