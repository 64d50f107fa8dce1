package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	"github.com/pawsitive/mathcat/internal/screens/badges"
	"github.com/pawsitive/mathcat/internal/screens/catalog"
	practicescreen "github.com/pawsitive/mathcat/internal/screens/practice"
	"github.com/pawsitive/mathcat/internal/screens/progress"
	tutorscreen "github.com/pawsitive/mathcat/internal/screens/tutor"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

// profileLoadedMsg carries the player profile for the dashboard.
type profileLoadedMsg struct {
	Profile *practice.Profile
	Err     error
}

// HomeScreen is the main menu and player dashboard.
type HomeScreen struct {
	env     screen.Env
	menu    components.Menu
	profile *practice.Profile
	err     error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Hint: "mixed problems", Action: push(func() screen.Screen {
			return practicescreen.New(env, practicescreen.Options{})
		})},
		{Label: "WEAK SPOTS", Hint: "problems picked for you", Action: push(func() screen.Screen {
			return practicescreen.New(env, practicescreen.Options{Weak: true})
		})},
		{Label: "STANDARDS", Hint: "choose a topic", Action: push(func() screen.Screen {
			return catalog.New(env)
		})},
		{Label: "BADGES", Action: push(func() screen.Screen {
			return badges.New(env)
		})},
		{Label: "PROGRESS", Action: push(func() screen.Screen {
			return progress.New(env)
		})},
		{Label: "ASK THE TUTOR", Disabled: env.Chat == nil, Action: push(func() screen.Screen {
			return tutorscreen.New(env)
		})},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads the dashboard after returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	return func() tea.Msg {
		prof, err := h.env.Practice.Profile(context.Background(), h.env.UserID)
		return profileLoadedMsg{Profile: prof, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(profileLoadedMsg); ok {
		h.profile, h.err = msg.Profile, msg.Err
		if h.profile == nil {
			return h, nil
		}
		st := screen.StatusMsg{
			Level:  h.profile.Level.Level,
			XP:     h.profile.Player.XP,
			Streak: h.profile.Player.CurrentStreak,
		}
		return h, func() tea.Msg { return st }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 26 || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, components.Centered(renderBanner(compact), cw))

	if h.profile != nil {
		variant := mascotFor(h.profile)
		if !compact {
			sections = append(sections, components.Centered(RenderMascot(variant), cw))
		}
		sections = append(sections, components.Centered(theme.Body.Render(greeting(variant)), cw))
		sections = append(sections, renderLevelCard(h.profile, cw))
		if !compact {
			sections = append(sections, renderGoals(h.profile.Goals, cw))
		}
	} else if h.err != nil {
		sections = append(sections, components.Centered(
			theme.Incorrect.Render("Couldn't load your progress: "+h.err.Error()), cw))
	}

	sections = append(sections, components.Card(h.menu.View(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascotFor picks the mascot mood from today's goals and streak.
func mascotFor(p *practice.Profile) MascotVariant {
	done, started := true, false
	for _, g := range p.Goals {
		done = done && g.Completed
		started = started || g.Current > 0
	}
	switch {
	case done || p.Player.CurrentStreak >= 5:
		return MascotCelebrating
	case !started:
		return MascotSleepy
	default:
		return MascotIdle
	}
}

func renderLevelCard(p *practice.Profile, cw int) string {
	lvl := p.Level
	title := theme.Title.
		Render(fmt.Sprintf("%s Level %d · %s", lvl.Icon, lvl.Level, lvl.Title))

	var xpLine string
	if lvl.Top() {
		xpLine = theme.Hint.Render(fmt.Sprintf("%d XP · top level reached!", p.Player.XP))
	} else {
		xpLine = theme.Hint.Render(fmt.Sprintf("%d / %d XP to level %d", p.XP.Current, p.XP.Needed, lvl.Level+1))
	}
	bar := components.NewProgressBar("", float64(p.XP.Percentage)/100, true, cw-6)
	bar.Color = theme.Primary

	stats := theme.Body.Render(fmt.Sprintf("🔥 streak %d   🏆 best %d   🏅 %d/%d badges",
		p.Player.CurrentStreak, p.Player.BestStreak, len(p.Player.Badges), len(rewards.Badges)))

	return components.BorderedCard(strings.Join([]string{title, bar.View(), xpLine, stats}, "\n"), cw, theme.Primary)
}

func renderGoals(goals []rewards.DailyGoal, cw int) string {
	lines := []string{theme.Section.Render("Today's goals")}
	for _, g := range goals {
		mark := theme.Hint.Render("○")
		name := theme.Body.Render(g.Name)
		if g.Completed {
			mark = theme.Correct.Render("✓")
			name = theme.Correct.Render(g.Name)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, name,
			theme.Hint.Render(fmt.Sprintf("%d/%d · +%d XP", g.Current, g.Target, g.XPReward))))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}
