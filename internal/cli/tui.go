package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/KyleKincer/tableyeah/pkg/gesture"
	"github.com/KyleKincer/tableyeah/pkg/observability"
	"github.com/KyleKincer/tableyeah/pkg/sched"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
	"github.com/KyleKincer/tableyeah/pkg/viewport"
)

// Terminal cells are not square, so the viewport transform runs in a
// virtual pixel space and each cell samples one point of it.
const (
	cellPxW = 10.0
	cellPxH = 24.0

	labelCols  = 14
	headerRows = 1
	footerRows = 2
)

// Timeline styles
var (
	styleBar         = lipgloss.NewStyle().Foreground(colorCyan)
	styleBarConflict = lipgloss.NewStyle().Foreground(colorRed)
	styleBarSelected = lipgloss.NewStyle().Foreground(colorGreen)
	styleBarDragged  = lipgloss.NewStyle().Foreground(colorDim)
	styleRowLabel    = lipgloss.NewStyle().Foreground(colorGray)
	styleRowHovered  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleNowLine     = lipgloss.NewStyle().Foreground(colorYellow)
	styleRuler       = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for browsing a day sheet interactively.
func (c *CLI) tuiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui <day-sheet.json>",
		Short: "Browse a day sheet interactively",
		Long: `Browse a day sheet on a zoomable, pannable timeline.

Tap a reservation to select it. Press and hold to pick it up, then drop
it on another table's row to reassign it; dropping on the unassigned
row or between rows cancels the drag. Reassignments apply in memory
until saved with 's'.

Keys: arrows/hjkl pan, +/- zoom, 0 reset, s save, esc deselect, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTui(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runTui executes the tui command.
func (c *CLI) runTui(ctx context.Context, sheetPath string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	sheet, err := timeline.ReadDaySheetFile(sheetPath)
	if err != nil {
		return err
	}

	model := newTimelineModel(ctx, sheet, sheetPath, cfg.Policy(), cfg.Window())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The now-line only needs minute resolution; a scheduler tick keeps
	// it honest while the user is idle.
	ticker := sched.NewTicker()
	cancel := ticker.Schedule(time.Minute, func(now time.Time) {
		p.Send(nowMsg{at: now})
	})
	defer cancel()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(timelineModel); ok && m.dirty {
		printWarning("unsaved reassignments discarded")
	}
	return nil
}

// =============================================================================
// Messages
// =============================================================================

// nowMsg moves the now-line.
type nowMsg struct{ at time.Time }

// pressTickMsg drives long-press promotion while a press is held still.
type pressTickMsg struct{ at time.Time }

// =============================================================================
// dragOutcome - Callback Bridge
// =============================================================================

// dragOutcome collects controller callbacks fired during one Update call.
// The model is copied by value on every update, so the controller writes
// through this shared pointer and Update drains it afterwards.
type dragOutcome struct {
	selected *string
	reassign *gesture.Reassignment
}

func (o *dragOutcome) reset() {
	o.selected = nil
	o.reassign = nil
}

// =============================================================================
// timelineModel - Interactive Timeline
// =============================================================================

// timelineModel is the bubbletea model for the interactive timeline view.
type timelineModel struct {
	ctx       context.Context
	sheet     timeline.DaySheet
	sheetPath string
	policy    timeline.TurnTimePolicy
	window    timeline.ServiceWindow

	layout  *timeline.Layout
	dropped []timeline.Dropped
	tr      viewport.Transform

	drag    *gesture.DragController
	outcome *dragOutcome

	width    int
	height   int
	now      time.Time
	selected string
	dirty    bool
	status   string
}

// newTimelineModel builds the initial model; the transform is sized on
// the first WindowSizeMsg.
func newTimelineModel(ctx context.Context, sheet timeline.DaySheet, sheetPath string, policy timeline.TurnTimePolicy, window timeline.ServiceWindow) timelineModel {
	layout, dropped := timeline.Build(sheet, policy, window)

	outcome := &dragOutcome{}
	drag := gesture.NewDragController(gesture.Callbacks{
		OnSelect:   func(id string) { outcome.selected = &id },
		OnReassign: func(r gesture.Reassignment) { outcome.reassign = &r },
	})

	status := fmt.Sprintf("%d reservations", layout.BarCount())
	if len(dropped) > 0 {
		status = fmt.Sprintf("%s, %d dropped", status, len(dropped))
	}

	return timelineModel{
		ctx:       ctx,
		sheet:     sheet,
		sheetPath: sheetPath,
		policy:    policy,
		window:    window,
		layout:    layout,
		dropped:   dropped,
		drag:      drag,
		outcome:   outcome,
		now:       time.Now(),
		status:    status,
	}
}

func (m timelineModel) Init() tea.Cmd {
	return nil
}

// hitTester snapshots the current layout and transform for event handling.
func (m timelineModel) hitTester() *viewport.HitTester {
	return viewport.NewHitTester(m.layout, m.tr)
}

// pressTick schedules the next long-press check.
func pressTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return pressTickMsg{at: t}
	})
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tr = m.sizedTransform()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pressTickMsg:
		if m.drag.State() == gesture.StateIdle {
			return m, nil
		}
		m.drag.Tick(msg.at, m.hitTester())
		return m, pressTick()

	case nowMsg:
		m.now = msg.at
		return m, nil
	}
	return m, nil
}

// sizedTransform builds a transform for the current terminal size,
// preserving zoom and pan where one already exists.
func (m timelineModel) sizedTransform() viewport.Transform {
	canvasRows := m.height - footerRows
	if canvasRows < headerRows+1 {
		canvasRows = headerRows + 1
	}
	viewW := float64(m.width) * cellPxW
	viewH := float64(canvasRows) * cellPxH

	// At scale 1 the whole service window fits the visible area.
	labelW := labelCols * cellPxW
	headerH := headerRows * cellPxH
	contentW := viewW - labelW
	if contentW < cellPxW {
		contentW = cellPxW
	}

	tr := viewport.NewTransform(labelW, headerH, viewW, viewH, contentW, m.layout.TotalHeight())
	if m.tr.Scale != 0 {
		tr.Scale = m.tr.Scale
		tr.TranslateX = m.tr.TranslateX
		tr.TranslateY = m.tr.TranslateY
	}
	return tr.ClampPan()
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const panStep = 4 * cellPxW

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if id := m.drag.DraggedReservation(); id != "" {
			observability.Gesture().OnDragCancelled(m.ctx, id)
		}
		m.drag.Cancel()
		m.selected = ""
		return m, nil
	case "left", "h":
		m.tr = m.tr.PanBy(panStep, 0)
	case "right", "l":
		m.tr = m.tr.PanBy(-panStep, 0)
	case "up", "k":
		m.tr = m.tr.PanBy(0, cellPxH)
	case "down", "j":
		m.tr = m.tr.PanBy(0, -cellPxH)
	case "+", "=":
		m.tr = m.zoomAtCenter(m.tr.Scale * 1.25)
	case "-", "_":
		m.tr = m.zoomAtCenter(m.tr.Scale / 1.25)
	case "0":
		m.tr.Scale = 0 // force reset
		m.tr = m.sizedTransform()
	case "s":
		return m.save()
	}
	return m, nil
}

// zoomAtCenter zooms around the middle of the visible timeline area.
func (m timelineModel) zoomAtCenter(scale float64) viewport.Transform {
	fx := m.tr.LabelWidth + (m.tr.ViewportWidth-m.tr.LabelWidth)/2
	fy := m.tr.HeaderHeight + (m.tr.ViewportHeight-m.tr.HeaderHeight)/2
	return m.tr.ZoomAt(fx, fy, scale)
}

func (m timelineModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sx := (float64(msg.X) + 0.5) * cellPxW
	sy := (float64(msg.Y) + 0.5) * cellPxH

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.tr = m.tr.ZoomAt(sx, sy, m.tr.Scale*1.1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.tr = m.tr.ZoomAt(sx, sy, m.tr.Scale/1.1)
		return m, nil
	}

	var (
		phase gesture.Phase
		cmd   tea.Cmd
	)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		phase = gesture.PhaseDown
		cmd = pressTick()
	case tea.MouseActionMotion:
		phase = gesture.PhaseMove
	case tea.MouseActionRelease:
		phase = gesture.PhaseUp
	default:
		return m, nil
	}

	m.drag.Handle(gesture.PointerEvent{Phase: phase, X: sx, Y: sy, At: time.Now()}, m.hitTester())
	return m.drainOutcome(), cmd
}

// drainOutcome applies callbacks collected during the last Handle call.
func (m timelineModel) drainOutcome() timelineModel {
	if m.outcome.selected != nil {
		m.selected = *m.outcome.selected
		m.status = "selected " + m.selected
		observability.Gesture().OnSelect(m.ctx, m.selected)
	}
	if m.outcome.reassign != nil {
		observability.Gesture().OnReassign(m.ctx, m.outcome.reassign.ReservationID, m.outcome.reassign.TargetTableID)
		m = m.applyReassignment(*m.outcome.reassign)
	}
	m.outcome.reset()
	return m
}

// applyReassignment moves a reservation to its target table and runs a
// fresh layout pass.
func (m timelineModel) applyReassignment(r gesture.Reassignment) timelineModel {
	for i := range m.sheet.Reservations {
		if m.sheet.Reservations[i].ID == r.ReservationID {
			m.sheet.Reservations[i].TableIDs = []int{r.TargetTableID}
			break
		}
	}
	m.layout, m.dropped = timeline.Build(m.sheet, m.policy, m.window)
	m.tr = m.sizedTransform()
	m.dirty = true
	m.status = fmt.Sprintf("moved %s to table %d", r.ReservationID, r.TargetTableID)
	return m
}

// save writes the (possibly reassigned) day sheet back to its file.
func (m timelineModel) save() (tea.Model, tea.Cmd) {
	data, err := timeline.MarshalDaySheet(m.sheet)
	if err != nil {
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	if err := os.WriteFile(m.sheetPath, data, 0o644); err != nil {
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	m.dirty = false
	m.status = "saved " + m.sheetPath
	return m, nil
}

// =============================================================================
// View
// =============================================================================

func (m timelineModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "sizing..."
	}

	ht := m.hitTester()
	canvasRows := m.height - footerRows
	nowCol := m.nowColumn()

	var b strings.Builder
	b.WriteString(m.renderRuler())
	b.WriteString("\n")

	prevRow := -1
	for line := headerRows; line < canvasRows; line++ {
		sy := (float64(line) + 0.5) * cellPxH

		rowIdx, inRow := ht.RowAtScreenY(sy)
		b.WriteString(m.renderLabelCell(ht, rowIdx, inRow, prevRow))
		if inRow {
			prevRow = rowIdx
		}

		for col := labelCols; col < m.width; col++ {
			sx := (float64(col) + 0.5) * cellPxW
			b.WriteString(m.renderCell(ht, sx, sy, col == nowCol))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return b.String()
}

// renderLabelCell renders the fixed label column for one line. A row's
// label appears on its first visible line only.
func (m timelineModel) renderLabelCell(ht *viewport.HitTester, rowIdx int, inRow bool, prevRow int) string {
	if !inRow || rowIdx == prevRow {
		return strings.Repeat(" ", labelCols)
	}
	row := ht.Row(rowIdx)
	label := row.Label()
	if len(label) > labelCols-2 {
		label = label[:labelCols-2]
	}
	padded := fmt.Sprintf(" %-*s", labelCols-1, label)
	if rowIdx == m.drag.HoveredRow() {
		return styleRowHovered.Render(padded)
	}
	return styleRowLabel.Render(padded)
}

// renderCell samples one canvas cell against the hit tester.
func (m timelineModel) renderCell(ht *viewport.HitTester, sx, sy float64, onNowLine bool) string {
	hit, ok := ht.HitTest(sx, sy)
	if !ok {
		if onNowLine {
			return styleNowLine.Render("┆")
		}
		return " "
	}

	switch {
	case hit.ReservationID == m.drag.DraggedReservation():
		return styleBarDragged.Render("█")
	case hit.ReservationID == m.selected:
		return styleBarSelected.Render("█")
	case hit.Bar.Conflict:
		return styleBarConflict.Render("█")
	default:
		return styleBar.Render("█")
	}
}

// renderRuler draws the hour marks across the header line.
func (m timelineModel) renderRuler() string {
	cells := make([]byte, m.width)
	for i := range cells {
		cells[i] = ' '
	}

	total := m.window.TotalMinutes()
	for hour := m.window.StartHour; hour <= m.window.EndHour; hour++ {
		pct := float64((hour-m.window.StartHour)*60) / float64(total) * 100
		cx := pct / 100 * m.tr.ContentWidth
		sx, _ := m.tr.ContentToScreen(cx, 0)
		col := int(sx / cellPxW)
		if col < labelCols || col >= m.width-2 {
			continue
		}
		copy(cells[col:], fmt.Sprintf("%02d:00", hour%24))
	}
	return styleRuler.Render(string(cells))
}

// nowColumn returns the canvas column of the now-line, or -1 when the
// current time is outside the service window or off screen.
func (m timelineModel) nowColumn() int {
	pct, ok := timeline.NowPercent(m.now, m.window)
	if !ok {
		return -1
	}
	cx := pct / 100 * m.tr.ContentWidth
	sx, _ := m.tr.ContentToScreen(cx, 0)
	col := int(sx / cellPxW)
	if col < labelCols || col >= m.width {
		return -1
	}
	return col
}

// renderStatus draws the two footer lines: state and key help.
func (m timelineModel) renderStatus() string {
	state := m.status
	if m.drag.State() == gesture.StateDragging {
		state = "dragging " + m.drag.DraggedReservation()
		if row := m.drag.HoveredRow(); row >= 0 {
			state += " over " + m.hitTester().Row(row).Label()
		}
	}
	if m.dirty {
		state += StyleWarning.Render(" [unsaved]")
	}

	help := StyleDim.Render("arrows pan · +/- zoom · 0 reset · hold+drag reassign · s save · q quit")
	return StyleValue.Render(state) + "\n" + help
}
