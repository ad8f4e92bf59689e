// Package tui provides the interactive Bubble Tea forecast dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwolters/budgetcast/internal/cli"
	"github.com/mwolters/budgetcast/internal/forecast"
	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/sims"
)

// Loader fetches the budget snapshot the dashboard projects from. When
// refresh is true the loader bypasses any local cache.
type Loader func(ctx context.Context, refresh bool) (*model.Snapshot, error)

// Options configures the dashboard.
type Options struct {
	Loader   Loader
	SimsDir  string
	Days     int
	Currency string
	Theme    string
}

// dataMsg is sent when the snapshot and simulation sets finish loading.
type dataMsg struct {
	snap *model.Snapshot
	sets []sims.Set
	err  error
}

// series is one projected balance line: the baseline or a simulation set.
type series struct {
	name string
	days []model.LedgerDay
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	th   Theme

	snap   *model.Snapshot
	sets   []sims.Set
	series []series
	active int

	days int

	width    int
	height   int
	loaded   bool
	fetching bool
	err      error
	showHelp bool

	spinner spinner.Model
}

// New creates the dashboard model.
func New(opts Options) App {
	if opts.Days < 1 {
		opts.Days = 300
	}
	th := themeByName(opts.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(th.Accent)

	return App{
		opts:    opts,
		th:      th,
		days:    opts.Days,
		spinner: sp,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, loadCmd(a.opts, false))
}

func loadCmd(opts Options, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		snap, err := opts.Loader(ctx, refresh)
		if err != nil {
			return dataMsg{err: err}
		}
		sets, err := sims.Load(opts.SimsDir)
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{snap: snap, sets: sets}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.loaded && !a.fetching {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case dataMsg:
		a.fetching = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.loaded = true
		a.snap = msg.snap
		a.sets = msg.sets
		a.recompute()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit

	case "tab", "right", "l":
		if len(a.series) > 0 {
			a.active = (a.active + 1) % len(a.series)
		}
	case "shift+tab", "left", "h":
		if len(a.series) > 0 {
			a.active = (a.active + len(a.series) - 1) % len(a.series)
		}

	case "+", "=":
		a.days += 30
		a.recompute()
	case "-", "_":
		if a.days > 30 {
			a.days -= 30
			a.recompute()
		}

	case "r":
		if !a.fetching {
			a.fetching = true
			return a, tea.Batch(a.spinner.Tick, loadCmd(a.opts, true))
		}

	case "?":
		a.showHelp = !a.showHelp
	}
	return a, nil
}

// recompute projects the baseline plus one series per simulation set.
func (a *App) recompute() {
	if a.snap == nil {
		return
	}

	project := func(events []model.Simulation) []model.LedgerDay {
		return forecast.Project(forecast.Input{
			Accounts:    a.snap.Accounts,
			Categories:  a.snap.Categories,
			Scheduled:   a.snap.Scheduled,
			Simulations: events,
			DaysAhead:   a.days,
		})
	}

	a.series = a.series[:0]
	a.series = append(a.series, series{name: "Actual Balance", days: project(nil)})
	for _, set := range a.sets {
		a.series = append(a.series, series{name: set.Name, days: project(set.Events)})
	}
	if a.active >= len(a.series) {
		a.active = 0
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(a.th.Red).Padding(1, 2)
		return errStyle.Render("error: "+a.err.Error()) + "\n\n  press r to retry, q to quit\n"
	}
	if !a.loaded {
		return fmt.Sprintf("\n  %s loading budget data...\n", a.spinner.View())
	}
	if a.width < 40 || a.height < 12 {
		return "\n  terminal too small\n"
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderSummary())
	b.WriteString("\n\n")

	chartH := a.height - 14
	if chartH < 4 {
		chartH = 4
	}
	if chartH > 16 {
		chartH = 16
	}
	cur := a.series[a.active]
	values, labels := dailyBalances(cur.days, a.days)
	b.WriteString(BalanceChart(values, labels, a.width-2, chartH, a.th))
	b.WriteString("\n\n")
	b.WriteString(a.renderUpcoming(cur))
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a App) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(a.th.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(a.th.TextMuted)
	accentStyle := lipgloss.NewStyle().Bold(true).Foreground(a.th.Accent)

	parts := make([]string, 0, len(a.series))
	for i, s := range a.series {
		if i == a.active {
			parts = append(parts, accentStyle.Render("["+s.name+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(s.name))
		}
	}

	age := ""
	if a.snap != nil {
		age = mutedStyle.Render("  synced " + cli.FormatRelativeAge(a.snap.FetchedAt))
	}
	if a.fetching {
		age += "  " + a.spinner.View()
	}

	return " " + titleStyle.Render("budgetcast") + age + "\n " + strings.Join(parts, mutedStyle.Render(" · "))
}

func (a App) renderSummary() string {
	labelStyle := lipgloss.NewStyle().Foreground(a.th.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(a.th.TextPrimary)
	lowStyle := lipgloss.NewStyle().Foreground(a.th.Orange)

	cur := a.series[a.active]
	if len(cur.days) == 0 {
		return " " + labelStyle.Render("no projected changes in horizon")
	}

	start := cur.days[0].Balance
	end := cur.days[len(cur.days)-1].Balance
	low, lowDate := start, cur.days[0].Date
	for _, d := range cur.days {
		if d.Balance < low {
			low, lowDate = d.Balance, d.Date
		}
	}

	cell := func(label, value string, style lipgloss.Style) string {
		return labelStyle.Render(label+" ") + style.Render(value)
	}
	return " " + cell("now", cli.FormatMoney(start, a.opts.Currency), valStyle) +
		"   " + cell(fmt.Sprintf("in %dd", a.days), cli.FormatMoney(end, a.opts.Currency), valStyle) +
		"   " + cell("lowest", cli.FormatMoney(low, a.opts.Currency)+" on "+lowDate, lowStyle)
}

// renderUpcoming lists the next few balance changes for the active series.
func (a App) renderUpcoming(cur series) string {
	dimStyle := lipgloss.NewStyle().Foreground(a.th.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(a.th.TextMuted)
	simStyle := lipgloss.NewStyle().Foreground(a.th.Yellow)

	const maxRows = 5
	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("upcoming") + "\n")

	rows := 0
	for _, day := range cur.days {
		for _, c := range day.Changes {
			if rows >= maxRows {
				return b.String()
			}
			if c.Reason == "Initial Balance" {
				continue
			}
			amount := cli.FormatSignedMoney(c.Amount, a.opts.Currency)
			line := fmt.Sprintf(" %s  %-10s %s", day.Date, amount, c.Reason)
			if c.Category != "" {
				line += mutedStyle.Render(" · " + c.Category)
			}
			if c.IsSimulation {
				line = simStyle.Render(line)
			}
			b.WriteString(line + "\n")
			rows++
		}
	}
	return b.String()
}

func (a App) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(a.th.TextDim)
	if a.showHelp {
		return dimStyle.Render(" tab/←→ series · +/- horizon · r refresh · ? help · q quit")
	}
	return dimStyle.Render(" ? help · q quit")
}

// dailyBalances expands a sparse ledger into one balance per day, carrying
// the running balance across days without changes.
func dailyBalances(days []model.LedgerDay, daysAhead int) ([]float64, []string) {
	if len(days) == 0 {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", days[0].Date)
	if err != nil {
		values := make([]float64, len(days))
		labels := make([]string, len(days))
		for i, d := range days {
			values[i], labels[i] = d.Balance, d.Date
		}
		return values, labels
	}

	byDate := make(map[string]float64, len(days))
	for _, d := range days {
		byDate[d.Date] = d.Balance
	}

	values := make([]float64, 0, daysAhead+1)
	labels := make([]string, 0, daysAhead+1)
	balance := days[0].Balance
	for offset := 0; offset <= daysAhead; offset++ {
		date := start.AddDate(0, 0, offset).Format("2006-01-02")
		if v, ok := byDate[date]; ok {
			balance = v
		}
		values = append(values, balance)
		labels = append(labels, date[5:]) // MM-DD
	}
	return values, labels
}
