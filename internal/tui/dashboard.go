// Package tui renders the password console as a full-screen terminal
// dashboard: a password input with live strength feedback, the activity log,
// and the simulated threat telemetry panels.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"passguard/internal/console"
)

const logTailLines = 20

var scoreColors = [...]string{"red", "orangered", "yellow", "green", "lime"}

type Dashboard struct {
	app       *tview.Application
	analyzer  *console.Analyzer
	generator *console.Generator
	telemetry *console.Telemetry
	log       *console.TerminalLog

	input        *tview.InputField
	strengthView *tview.TextView
	logView      *tview.TextView
	attackView   *tview.TextView
	liveView     *tview.TextView
	statsView    *tview.TextView
}

func NewDashboard(analyzer *console.Analyzer, generator *console.Generator, telemetry *console.Telemetry, log *console.TerminalLog) *Dashboard {
	d := &Dashboard{
		app:       tview.NewApplication(),
		analyzer:  analyzer,
		generator: generator,
		telemetry: telemetry,
		log:       log,
	}
	d.build()
	return d
}

func (d *Dashboard) build() {
	d.input = tview.NewInputField().
		SetLabel("Password: ").
		SetMaskCharacter('*').
		SetFieldWidth(40)
	d.input.SetChangedFunc(func(text string) {
		d.analyzer.SetPassword(text)
	})
	d.input.SetBorder(true).SetTitle(" PASSGUARD SECURITY CONSOLE ")

	d.strengthView = newPanel(" STRENGTH ANALYSIS ")
	d.logView = newPanel(" TERMINAL ")
	d.attackView = newPanel(" LIVE ATTACK FEED ")
	d.liveView = newPanel(" LIVE PASSWORD CHECKS ")
	d.statsView = newPanel(" GLOBAL THREAT STATS ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.input, 3, 0, true).
		AddItem(d.strengthView, 8, 0, false).
		AddItem(d.logView, 0, 1, false)
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.statsView, 6, 0, false).
		AddItem(d.attackView, 0, 2, false).
		AddItem(d.liveView, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 3, true).
		AddItem(right, 0, 2, false)

	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlG:
			go d.generator.Generate()
			return nil
		case tcell.KeyEscape:
			d.app.Stop()
			return nil
		}
		return event
	})

	d.app.SetRoot(root, true)
}

// Run blocks until the user quits. Redraw hooks fire from analyzer, generator
// and telemetry goroutines, so they go through QueueUpdateDraw.
func (d *Dashboard) Run() error {
	d.refresh()
	return d.app.Run()
}

func (d *Dashboard) Stop() {
	d.app.Stop()
}

// Redraw is safe to call from any goroutine.
func (d *Dashboard) Redraw() {
	d.app.QueueUpdateDraw(d.refresh)
}

func (d *Dashboard) refresh() {
	d.refreshStrength()
	d.refreshLog()
	d.refreshStats()
	d.refreshAttacks()
	d.refreshLiveChecks()
	if generated := d.generator.Generated(); generated != "" && d.input.GetText() != d.analyzer.Password() {
		d.input.SetText(d.analyzer.Password())
	}
}

func (d *Dashboard) refreshStrength() {
	strength := d.analyzer.Strength()
	var b strings.Builder
	if d.analyzer.Analyzing() {
		fmt.Fprintf(&b, "[yellow]Analyzing...[-]\n\n")
	}
	label := console.StrengthLabel(strength.Score)
	color := scoreColors[console.ClampScore(strength.Score)]
	fmt.Fprintf(&b, "[%s]%s[-]  %s\n\n", color, label, strengthBar(strength.Score))
	if console.IsSecure(strength.Score) {
		b.WriteString("[green]Protection: SECURE[-]\n")
	} else {
		b.WriteString("[red]Protection: AT RISK[-]\n")
	}
	for _, line := range strength.Feedback {
		fmt.Fprintf(&b, "[gray]- %s[-]\n", tview.Escape(line))
	}
	b.WriteString("\n[gray]Ctrl-G generate, Esc quit[-]")
	d.strengthView.SetText(b.String())
}

func strengthBar(score int) string {
	filled := console.ClampScore(score) + 1
	return strings.Repeat("█", filled*4) + strings.Repeat("░", (5-filled)*4)
}

func (d *Dashboard) refreshLog() {
	lines := d.log.Tail(logTailLines)
	escaped := make([]string, 0, len(lines))
	for _, line := range lines {
		escaped = append(escaped, tview.Escape(line))
	}
	d.logView.SetText(strings.Join(escaped, "\n"))
	d.logView.ScrollToEnd()
}

func (d *Dashboard) refreshStats() {
	stats := d.telemetry.Stats()
	d.statsView.SetText(fmt.Sprintf(
		"Attacks today:         [red]%d[-]\n"+
			"Passwords compromised: [red]%d[-]\n"+
			"Active threats:        [orange]%d[-]\n"+
			"Weak passwords:        [yellow]%d[-]",
		stats.AttacksToday, stats.PasswordsCompromised,
		stats.ActiveThreats, stats.WeakPasswords))
}

func (d *Dashboard) refreshAttacks() {
	var b strings.Builder
	for _, attack := range d.telemetry.Attacks() {
		status := "[red]BREACH[-]"
		if attack.Blocked {
			status = "[green]BLOCKED[-]"
		}
		fmt.Fprintf(&b, "%s [%s]%s[-] %s -> %s (%d attempts) %s\n",
			attack.Timestamp.Format("15:04:05"),
			severityColor(attack.Severity), attack.Severity,
			tview.Escape(attack.Origin), tview.Escape(attack.Target),
			attack.Attempts, status)
	}
	d.attackView.SetText(b.String())
}

func (d *Dashboard) refreshLiveChecks() {
	var b strings.Builder
	for _, check := range d.telemetry.LiveChecks() {
		color := "red"
		if check.Result == "SECURE" {
			color = "green"
		}
		fmt.Fprintf(&b, "%s %s [%s]%s[-] %s\n",
			check.Timestamp.Format("15:04:05"),
			tview.Escape(console.MaskPassword(check.Password)),
			color, check.Result,
			tview.Escape(check.Location))
	}
	d.liveView.SetText(b.String())
}

func severityColor(severity console.Severity) string {
	switch severity {
	case console.SeverityCritical:
		return "red"
	case console.SeverityHigh:
		return "orange"
	default:
		return "yellow"
	}
}

func newPanel(title string) *tview.TextView {
	tv := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	tv.SetBorder(true).SetTitle(title).SetTitleColor(tcell.ColorAqua).SetBorderColor(tcell.ColorGray)
	return tv
}
