package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/fw/internal/outcome"
	"github.com/raphi011/fw/internal/ui/styles"
)

// progressUpdate is sent to update the progress bar
type progressUpdate struct {
	current int
	message string
}

// ProgressBar wraps a Bubbletea progress bar for simple non-interactive use.
// With a known total it draws a bar and a done/total counter; with a total
// of zero it is indeterminate and draws a spinner next to the message.
type ProgressBar struct {
	program   *tea.Program
	out       io.Writer
	updateCh  chan progressUpdate
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	total     int
	label     string
	current   int
	message   string
}

// progressBarModel is the internal Bubbletea model
type progressBarModel struct {
	progress progress.Model
	spinner  spinner.Model
	total    int
	current  int
	message  string
	updateCh chan progressUpdate
	quit     bool
}

func (m progressBarModel) indeterminate() bool {
	return m.total <= 0
}

func (m progressBarModel) Init() tea.Cmd {
	if m.indeterminate() {
		return tea.Batch(m.spinner.Tick, m.waitForUpdate())
	}
	return m.waitForUpdate()
}

func (m progressBarModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m progressBarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case progressUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		if m.indeterminate() {
			m.spinner, cmd = m.spinner.Update(msg)
		} else {
			m.progress, cmd = m.progress.Update(msg)
		}
		return m, cmd
	}
}

func (m progressBarModel) View() tea.View {
	if m.quit || m.message == "" {
		return tea.NewView("")
	}

	// ⣾ Listing github repositories: page 3, 240 found
	if m.indeterminate() {
		return tea.NewView(m.spinner.View() + " " + m.message)
	}

	percent := float64(m.current) / float64(m.total)

	// [████████░░░░░░░░]  3/12 api: updated
	bar := m.progress.ViewAs(percent)
	return tea.NewView(fmt.Sprintf("%s %*d/%d %s", bar, digits(m.total), m.current, m.total, m.message))
}

func digits(n int) int {
	return len(fmt.Sprint(n))
}

// NewProgressBar creates a new progress bar with the given total and message,
// rendering to out once started.
func NewProgressBar(total int, message string, out io.Writer) *ProgressBar {
	return &ProgressBar{
		out:      out,
		updateCh: make(chan progressUpdate, 10),
		done:     make(chan struct{}),
		total:    total,
		label:    message,
		message:  message,
	}
}

// NewActivity creates an indeterminate progress indicator for work whose
// size is unknown up front, like listing a forge's repositories page by page.
func NewActivity(message string, out io.Writer) *ProgressBar {
	return NewProgressBar(0, message, out)
}

// Start begins the progress bar display.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return
	}

	prog := progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle

	model := progressBarModel{
		progress: prog,
		spinner:  sp,
		total:    p.total,
		current:  p.current,
		message:  p.message,
		updateCh: p.updateCh,
	}

	// No input: key presses must not stop a running sync, and stdin stays
	// free for the commands being run.
	p.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(p.out),
		tea.WithColorProfile(colorprofile.Detect(p.out, os.Environ())),
	)
	p.isRunning = true

	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
}

// SetProgress updates the current progress and message.
func (p *ProgressBar) SetProgress(current int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.message = message
	if !p.isRunning {
		return
	}

	// Drops the update if the channel is full; the next one catches up.
	select {
	case p.updateCh <- progressUpdate{current: current, message: message}:
	default:
	}
}

// Observe reports a finished unit of work. Its signature matches
// executor.ProgressFunc so the bar can be passed to executor.WithProgress.
func (p *ProgressBar) Observe(done, total int, o outcome.Outcome) {
	p.SetProgress(done, o.Project+": "+o.Describe())
}

// Page reports that another page of a paginated listing arrived. Its
// signature matches forge.PageFunc.
func (p *ProgressBar) Page(page, found int) {
	p.SetProgress(page, fmt.Sprintf("%s: page %d, %d found", p.label, page, found))
}

// Stop stops the progress bar and clears the line.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	// Closed under the mutex so SetProgress never sends on a closed channel.
	close(p.updateCh)
	p.mu.Unlock()

	if p.program != nil {
		p.program.Quit()
	}

	select {
	case <-p.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(p.out, "\r\033[K")
}

// Total returns the total count for the progress bar.
func (p *ProgressBar) Total() int {
	return p.total
}

// Current returns the last reported progress.
func (p *ProgressBar) Current() (int, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.message
}
