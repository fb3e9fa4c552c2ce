package store

import (
	"database/sql"
	"net/http"
	"net/url"
	"time"
)

// Jar is an http.CookieJar persisted in the store's cookies table. It keys
// cookies by (host, name, path), which is sufficient for a client that only
// ever talks to the one backend host.
type Jar struct {
	db *sql.DB
}

var _ http.CookieJar = (*Jar)(nil)

// SetCookies stores the cookies from a response. Cookies with MaxAge < 0 or
// an expiry in the past are removed, matching jar semantics.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	host := u.Hostname()

	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}

		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}

		expired := c.MaxAge < 0 || (!expires.IsZero() && expires.Before(time.Now()))
		if expired {
			j.db.Exec("DELETE FROM cookies WHERE host = ? AND name = ? AND path = ?", host, c.Name, path)
			continue
		}

		var expiresAt any
		if !expires.IsZero() {
			expiresAt = expires
		}

		// Errors here degrade to a missing cookie on the next request,
		// which the caller observes as an unauthenticated response.
		j.db.Exec(`
			INSERT INTO cookies (host, name, value, path, expires, secure, http_only)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(host, name, path) DO UPDATE SET
				value = excluded.value, expires = excluded.expires,
				secure = excluded.secure, http_only = excluded.http_only
		`, host, c.Name, c.Value, path, expiresAt, c.Secure, c.HttpOnly)
	}
}

// Cookies returns the unexpired cookies stored for the URL's host.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	rows, err := j.db.Query(
		"SELECT name, value, path, expires FROM cookies WHERE host = ?", u.Hostname())
	if err != nil {
		return nil
	}
	defer rows.Close()

	var cookies []*http.Cookie
	now := time.Now()

	for rows.Next() {
		var (
			name, value, path string
			expires           sql.NullTime
		)
		if err := rows.Scan(&name, &value, &path, &expires); err != nil {
			continue
		}
		if expires.Valid && expires.Time.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: path})
	}

	return cookies
}
