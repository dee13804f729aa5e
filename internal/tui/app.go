package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nishantpatil/placenet/internal/guard"
	"github.com/nishantpatil/placenet/internal/session"
	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// Public routes render for anyone; everything else goes through the guard.
const (
	routeLogin    = "/login"
	routeRegister = "/register"
)

// sessionReadyMsg fires once the startup trust check resolves.
type sessionReadyMsg struct {
	id *domain.Identity
}

type loggedOutMsg struct{}

// EventMsg wraps a realtime push for delivery into the program loop. Main
// sends these via Program.Send from the realtime manager's sink.
type EventMsg struct {
	Event domain.Event
}

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	session *session.Store

	route   string // current path, "" while the session check is in flight
	pending string // path requested before the session resolved
	from    string // post-login return path

	login        loginModel
	register     registerModel
	dashboard    dashboardModel
	jobs         jobsModel
	applications applicationsModel
	interviews   interviewsModel
	profile      profileModel
	recruiter    recruiterModel
	admin        adminModel
	adminIvs     adminInterviewsModel

	notif     notificationsModel
	notifOpen bool
	toasts    []toast

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the root TUI application. baseURL is the portal address,
// used for share links.
func NewApp(c *client.Client, s *session.Store, baseURL string) App {
	return App{
		client:       c,
		session:      s,
		login:        newLoginModel(s, c),
		register:     newRegisterModel(s),
		dashboard:    newDashboardModel(c),
		jobs:         newJobsModel(c, baseURL),
		applications: newApplicationsModel(c),
		interviews:   newInterviewsModel(c),
		profile:      newProfileModel(c),
		recruiter:    newRecruiterModel(c),
		admin:        newAdminModel(c),
		adminIvs:     newAdminInterviewsModel(c),
		notif:        newNotificationsModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), toastTickCmd(), a.initSession())
}

func (a App) initSession() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		s.Initialize(context.Background())
		return sessionReadyMsg{id: s.Current()}
	}
}

func (a App) logout() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		s.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// navigate evaluates the guard for a path and moves there, following
// redirects. Public routes bounce authenticated users to their home.
func (a App) navigate(path string) (App, tea.Cmd) {
	if path == routeLogin || path == routeRegister {
		if id := a.session.Current(); id != nil {
			return a.navigate(id.Role.HomeRoute())
		}
		a.route = path
		if path == routeLogin {
			a.login = newLoginModel(a.session, a.client)
			a.login.from = a.from
		} else {
			a.register = newRegisterModel(a.session)
		}
		return a, nil
	}

	d := guard.Decide(a.session.Loading(), a.session.Current(), guard.Lookup(path))
	switch d.Outcome {
	case guard.OutcomeLoading:
		a.pending = path
		a.route = ""
		return a, nil
	case guard.OutcomeRedirectLogin:
		a.from = d.From
		return a.navigate(guard.LoginRoute)
	case guard.OutcomeRedirectHome:
		return a.navigate(d.RedirectTo)
	}

	a.route = path
	return a, a.pageInit(path)
}

// pageInit reloads the page model for a freshly entered route.
func (a *App) pageInit(path string) tea.Cmd {
	switch path {
	case "/dashboard":
		return a.dashboard.Init()
	case "/jobs":
		return a.jobs.Init()
	case "/student/applications":
		return a.applications.Init()
	case "/student/mock-interviews":
		return a.interviews.Init()
	case "/student/profile":
		return a.profile.Init()
	case "/recruiter/dashboard":
		return a.recruiter.Init()
	case "/admin/dashboard":
		return a.admin.Init()
	case "/admin/interviews":
		return a.adminIvs.Init()
	}
	return nil
}

func (a App) pushToast(severity domain.Severity, message string) App {
	a.toasts = append(a.toasts, newToast(severity, message))
	return a
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.jobs, _ = a.jobs.Update(bodyMsg)
		a.applications, _ = a.applications.Update(bodyMsg)
		a.interviews, _ = a.interviews.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		a.recruiter, _ = a.recruiter.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		a.adminIvs, _ = a.adminIvs.Update(bodyMsg)
		a.notif, _ = a.notif.Update(bodyMsg)
		a.login, _ = a.login.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		// Forms blink their cursor off this tick too.
		a.login, _ = a.login.Update(msg)
		a.register, _ = a.register.Update(msg)
		a.interviews, _ = a.interviews.Update(msg)
		a.profile, _ = a.profile.Update(msg)
		a.recruiter, _ = a.recruiter.Update(msg)
		a.adminIvs, _ = a.adminIvs.Update(msg)
		return a, shimmerTickCmd()

	case toastTickMsg:
		a.toasts = pruneToasts(a.toasts, time.Time(msg))
		return a, toastTickCmd()

	case sessionReadyMsg:
		target := a.pending
		a.pending = ""
		if target == "" {
			if msg.id != nil {
				target = msg.id.Role.HomeRoute()
			} else {
				target = routeLogin
			}
		}
		app, cmd := a.navigate(target)
		if msg.id != nil {
			return app, tea.Batch(cmd, app.notif.load())
		}
		return app, cmd

	case loginResultMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		target := a.from
		a.from = ""
		if target == "" {
			target = msg.id.Role.HomeRoute()
		}
		app := a.pushToast(domain.SeveritySuccess, "welcome back, "+msg.id.Name)
		app, cmd := app.navigate(target)
		return app, tea.Batch(cmd, app.notif.load())

	case registerResultMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.register, cmd = a.register.Update(msg)
			return a, cmd
		}
		app := a.pushToast(domain.SeveritySuccess, "account created")
		app, cmd := app.navigate(msg.id.Role.HomeRoute())
		return app, tea.Batch(cmd, app.notif.load())

	case loggedOutMsg:
		a.notifOpen = false
		a.notif = newNotificationsModel(a.client)
		app := a.pushToast(domain.SeverityInfo, "signed out")
		app, cmd := app.navigate(routeLogin)
		return app, cmd

	case EventMsg:
		return a.handleEvent(msg.Event)

	case notificationsLoadedMsg, notificationReadMsg:
		var cmd tea.Cmd
		a.notif, cmd = a.notif.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.notifOpen {
			var cmd tea.Cmd
			a.notif, cmd = a.notif.Update(msg)
			if a.notif.closed {
				a.notifOpen = false
				a.notif.closed = false
			}
			return a, cmd
		}
		if app, cmd, handled := a.handleGlobalKey(msg.String()); handled {
			return app, cmd
		}
	}

	return a.routeMsg(msg)
}

// handleGlobalKey processes app-level keys that work on any page while not
// editing a form.
func (a App) handleGlobalKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit, true
	case "ctrl+n":
		if a.session.Current() != nil {
			a.notifOpen = true
			return a, a.notif.load(), true
		}
	case "ctrl+o":
		if a.session.Current() != nil {
			return a, a.logout(), true
		}
	case "ctrl+r":
		if a.route == routeLogin {
			return a.navWrap(routeRegister)
		}
	case "ctrl+l":
		if a.route == routeRegister {
			return a.navWrap(routeLogin)
		}
	}
	if a.isEditing() {
		return a, nil, false
	}
	switch key {
	case "q":
		return a, tea.Quit, true
	default:
		id := a.session.Current()
		if id == nil {
			return a, nil, false
		}
		for _, t := range roleTabs(id.Role) {
			if t.key == key {
				if a.route == t.path {
					return a, nil, true
				}
				return a.navWrap(t.path)
			}
		}
	}
	return a, nil, false
}

func (a App) navWrap(path string) (App, tea.Cmd, bool) {
	app, cmd := a.navigate(path)
	return app, cmd, true
}

// handleEvent surfaces a realtime push: a severity toast, plus a resync of
// whatever data it invalidates.
func (a App) handleEvent(ev domain.Event) (App, tea.Cmd) {
	var cmds []tea.Cmd
	switch ev.Kind {
	case domain.EventJobPosted:
		message := ev.Message
		if message == "" {
			message = "a new job was just posted"
		}
		a = a.pushToast(domain.SeverityInfo, message)
		if a.route == "/jobs" {
			cmds = append(cmds, a.jobs.load())
		}
		if a.route == "/dashboard" {
			cmds = append(cmds, a.dashboard.load())
		}
	default:
		if ev.Message != "" {
			a = a.pushToast(ev.Severity, ev.Message)
		}
		// A pushed notification means the durable list changed server side.
		cmds = append(cmds, a.notif.load())
	}
	return a, tea.Batch(cmds...)
}

// routeMsg forwards a message to the active page model.
func (a App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case routeLogin:
		a.login, cmd = a.login.Update(msg)
	case routeRegister:
		a.register, cmd = a.register.Update(msg)
	case "/dashboard":
		a.dashboard, cmd = a.dashboard.Update(msg)
	case "/jobs":
		a.jobs, cmd = a.jobs.Update(msg)
	case "/student/applications":
		a.applications, cmd = a.applications.Update(msg)
	case "/student/mock-interviews":
		a.interviews, cmd = a.interviews.Update(msg)
	case "/student/profile":
		a.profile, cmd = a.profile.Update(msg)
	case "/recruiter/dashboard":
		a.recruiter, cmd = a.recruiter.Update(msg)
	case "/admin/dashboard":
		a.admin, cmd = a.admin.Update(msg)
	case "/admin/interviews":
		a.adminIvs, cmd = a.adminIvs.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.route {
	case routeLogin, routeRegister:
		return true
	case "/student/mock-interviews":
		return a.interviews.editing()
	case "/student/profile":
		return a.profile.editing()
	case "/recruiter/dashboard":
		return a.recruiter.editing()
	case "/admin/interviews":
		return a.adminIvs.editing()
	}
	return false
}

type tabEntry struct {
	key  string
	name string
	path string
}

// roleTabs is each role's navigation set; tab keys 1..n switch pages.
func roleTabs(r domain.Role) []tabEntry {
	switch r {
	case domain.RoleStudent:
		return []tabEntry{
			{"1", "Dashboard", "/dashboard"},
			{"2", "Jobs", "/jobs"},
			{"3", "Applications", "/student/applications"},
			{"4", "Interviews", "/student/mock-interviews"},
			{"5", "Profile", "/student/profile"},
		}
	case domain.RoleRecruiter:
		return []tabEntry{
			{"1", "Dashboard", "/recruiter/dashboard"},
		}
	default:
		return []tabEntry{
			{"1", "Overview", "/admin/dashboard"},
			{"2", "Interviews", "/admin/interviews"},
		}
	}
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Identity line below the logo
	idLine := ""
	if id := a.session.Current(); id != nil {
		parts := []string{
			normalStyle.Render(id.Name),
			RoleStyle(id.Role).Render(string(id.Role)),
		}
		if !id.Verified {
			parts = append(parts, warningStyle.Render("pending verification"))
		}
		if u := a.notif.unread(); u > 0 {
			parts = append(parts, badgeStyle.Render(fmt.Sprintf("● %d", u)))
		}
		idLine = strings.Join(parts, metaStyle.Render(" · "))
	}
	if idLine != "" {
		idWidth := lipgloss.Width(idLine)
		idPad := (a.width - idWidth) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + idLine
	} else {
		header += "\n"
	}

	tabBar := a.renderTabs()
	body, help := a.bodyAndHelp()

	if ts := renderToasts(a.toasts); ts != "" {
		body = ts + body
	}

	// Chrome budget: header(2) + tabs(1) + blank(1) + help(1) = 5 lines + body
	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, tabBar, body, help)
}

func (a App) renderTabs() string {
	id := a.session.Current()
	if id == nil {
		return ""
	}
	tabs := roleTabs(id.Role)
	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.path == a.route {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}

func (a App) bodyAndHelp() (string, string) {
	if a.notifOpen {
		return a.notif.View(), " " + a.notif.helpKeys()
	}

	switch a.route {
	case "":
		return " " + dimStyle.Render("checking session...") + "\n", " " + helpEntry("ctrl+c", "quit")
	case routeLogin:
		return a.login.View(), " " + a.login.helpKeys()
	case routeRegister:
		return a.register.View(), " " + a.register.helpKeys()
	case "/dashboard":
		return a.dashboard.View(), a.pageHelp(a.dashboard.helpKeys())
	case "/jobs":
		return a.jobs.View(), a.pageHelp(a.jobs.helpKeys())
	case "/student/applications":
		return a.applications.View(), a.pageHelp(a.applications.helpKeys())
	case "/student/mock-interviews":
		return a.interviews.View(), a.pageHelp(a.interviews.helpKeys())
	case "/student/profile":
		return a.profile.View(), a.pageHelp(a.profile.helpKeys())
	case "/recruiter/dashboard":
		return a.recruiter.View(), a.pageHelp(a.recruiter.helpKeys())
	case "/admin/dashboard":
		return a.admin.View(), a.pageHelp(a.admin.helpKeys())
	case "/admin/interviews":
		return a.adminIvs.View(), a.pageHelp(a.adminIvs.helpKeys())
	}
	return "", " " + helpEntry("q", "quit")
}

func (a App) pageHelp(pageKeys string) string {
	return " " + pageKeys + "  " + helpEntry("ctrl+n", "inbox") + "  " + helpEntry("ctrl+o", "sign out") + "  " + helpEntry("q", "quit")
}
