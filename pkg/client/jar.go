package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// storedCookie is the on-disk shape of one session cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// SaveCookies persists the jar's cookies for the API host to path (0600).
// A browser keeps its cookie store for us; a CLI has to do this itself.
func (c *Client) SaveCookies(path string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("client.SaveCookies: parse base url: %w", err)
	}
	var stored []storedCookie
	for _, ck := range c.jar.Cookies(u) {
		stored = append(stored, storedCookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Path:    ck.Path,
			Domain:  ck.Domain,
			Expires: ck.Expires,
		})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("client.SaveCookies: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("client.SaveCookies: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("client.SaveCookies: write: %w", err)
	}
	return nil
}

// LoadCookies restores previously saved cookies into the jar. A missing or
// unreadable file is not an error; the session simply starts logged out.
func (c *Client) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("client.LoadCookies: read: %w", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupt cookie file: drop it rather than carry broken state.
		os.Remove(path) //nolint:errcheck // best-effort cleanup
		return nil
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("client.LoadCookies: parse base url: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	now := time.Now()
	for _, sc := range stored {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:    sc.Name,
			Value:   sc.Value,
			Path:    sc.Path,
			Domain:  sc.Domain,
			Expires: sc.Expires,
		})
	}
	c.jar.SetCookies(u, cookies)
	return nil
}

// ClearCookies drops the in-memory jar and removes the persisted file.
func (c *Client) ClearCookies(path string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("client.ClearCookies: parse base url: %w", err)
	}
	// Expire everything currently in the jar for the API host.
	for _, ck := range c.jar.Cookies(u) {
		c.jar.SetCookies(u, []*http.Cookie{{Name: ck.Name, Value: "", Expires: time.Unix(0, 0), MaxAge: -1}})
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("client.ClearCookies: remove: %w", err)
	}
	return nil
}
