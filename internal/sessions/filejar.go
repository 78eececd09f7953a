package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"
)

// FileJar is an http.CookieJar that mirrors the cookies of one service to a
// JSON file. Cookies set for other hosts are kept in memory only.
type FileJar struct {
	mu      sync.Mutex
	service *url.URL
	path    string
	inner   *cookiejar.Jar
	log     *slog.Logger
}

// Open loads the session stored for serviceURL under dir, if any.
func Open(dir, serviceURL string, log *slog.Logger) (*FileJar, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("parse service url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service url %q has no host", serviceURL)
	}
	if log == nil {
		log = slog.Default()
	}
	inner, _ := cookiejar.New(nil)
	j := &FileJar{
		service: u,
		path:    filepath.Join(dir, fileName(u)),
		inner:   inner,
		log:     log,
	}

	rec, err := j.read()
	if err != nil {
		return nil, err
	}
	if rec != nil {
		cookies := make([]*http.Cookie, 0, len(rec.Cookies))
		for _, c := range rec.Cookies {
			cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
		}
		inner.SetCookies(u, cookies)
	}
	return j, nil
}

// Path returns the file the session is stored in.
func (j *FileJar) Path() string {
	return j.path
}

// Cookies implements http.CookieJar.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar. A failed write is logged; the
// cookies stay usable for the current run.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	if u.Host != j.service.Host {
		return
	}
	if err := j.write(); err != nil {
		j.log.Warn("persist session failed", "path", j.path, "error", err)
	}
}

// Clear forgets the session in memory and on disk.
func (j *FileJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner, _ = cookiejar.New(nil)
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Load returns the stored record, or nil when there is none.
func (j *FileJar) Load() (*Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

// write atomically rewrites the session file using a temp file + rename.
func (j *FileJar) write() error {
	rec := Record{
		Service:   j.service.String(),
		UpdatedAt: time.Now(),
	}
	for _, c := range j.inner.Cookies(j.service) {
		rec.Cookies = append(rec.Cookies, Cookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session tmp: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

func (j *FileJar) read() (*Record, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &rec, nil
}

// fileName maps a service URL to a file name, e.g. 127.0.0.1_5000.json.
func fileName(u *url.URL) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' {
			return r
		}
		return '_'
	}, u.Host)
	return name + ".json"
}
