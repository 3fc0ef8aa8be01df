package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/google/uuid"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

// Config controls how the shared browser process is launched.
type Config struct {
	Headless bool
	Bin      string
	Stealth  bool
}

// PageInfo describes a page after navigation.
type PageInfo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type session struct {
	id   string
	page *rod.Page
}

// Manager owns the browser process and the session arena. Sessions are
// keyed by opaque generated ids and disposed only through Close; there
// is no idle collection.
type Manager struct {
	cfg Config
	log logging.Logger

	mu       sync.Mutex
	browser  *rod.Browser
	sessions map[string]*session
}

func NewManager(cfg Config, log logging.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		log:      log.WithName("browser"),
		sessions: make(map[string]*session),
	}
}

// Open creates a new session, optionally navigating to url, and returns
// its id.
func (m *Manager) Open(ctx context.Context, url string) (string, error) {
	id, err := m.openSession()
	if err != nil {
		return "", err
	}
	if url != "" {
		if _, err := m.Navigate(ctx, id, url); err != nil {
			_ = m.Close(id)
			return "", err
		}
	}
	return id, nil
}

// Navigate loads url in the session's page and reports where it ended
// up.
func (m *Manager) Navigate(ctx context.Context, id, url string) (PageInfo, error) {
	s, err := m.get(id)
	if err != nil {
		return PageInfo{}, err
	}
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return PageInfo{}, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		m.log.Debug("wait load gave up", "session", id, "error", err)
	}
	info, err := page.Info()
	if err != nil {
		return PageInfo{}, fmt.Errorf("page info: %w", err)
	}
	return PageInfo{URL: info.URL, Title: info.Title}, nil
}

// Click clicks the first element matching selector.
func (m *Manager) Click(ctx context.Context, id, selector string) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("find %q: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

// Fill replaces the value of the first element matching selector.
func (m *Manager) Fill(ctx context.Context, id, selector, value string) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("find %q: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select %q: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// Eval runs script (a JavaScript function, e.g. "() => document.title")
// in the session's page and returns the JSON-encoded result.
func (m *Manager) Eval(ctx context.Context, id, script string) (string, error) {
	s, err := m.get(id)
	if err != nil {
		return "", err
	}
	res, err := s.page.Context(ctx).Eval(script)
	if err != nil {
		return "", fmt.Errorf("eval: %w", err)
	}
	return res.Value.JSON("", ""), nil
}

// Screenshot captures the session's page as PNG bytes.
func (m *Manager) Screenshot(ctx context.Context, id string, fullPage bool) ([]byte, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	data, err := s.page.Context(ctx).Screenshot(fullPage, nil)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close disposes the session's page and forgets the id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown session id %q", id)
	}
	m.log.Debug("session closed", "session", id)
	if err := s.page.Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	return nil
}

// Shutdown disposes every session and the browser process itself.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if err := s.page.Close(); err != nil {
			m.log.Error(err, "closing page", "session", id)
		}
		delete(m.sessions, id)
	}
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.log.Error(err, "closing browser")
		}
		m.browser = nil
	}
}

// SessionCount reports how many sessions are live.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) openSession() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.ensureBrowser()
	if err != nil {
		return "", err
	}

	var page *rod.Page
	if m.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}

	id := uuid.NewString()
	m.sessions[id] = &session{id: id, page: page}
	m.log.Debug("session opened", "session", id)
	return id, nil
}

// ensureBrowser launches the browser process on first use. The caller
// must hold mu.
func (m *Manager) ensureBrowser() (*rod.Browser, error) {
	if m.browser != nil {
		return m.browser, nil
	}

	l := launcher.New().Headless(m.cfg.Headless)
	if m.cfg.Bin != "" {
		l = l.Bin(m.cfg.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	m.browser = b
	m.log.Info("browser launched", "headless", m.cfg.Headless, "stealth", m.cfg.Stealth)
	return b, nil
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session id %q", id)
	}
	return s, nil
}
