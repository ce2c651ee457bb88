package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lostfound-server/internal/model"
)

const jdbcPrefix = "jdbc:"

// ParseDSN turns a database URL into a pgx connection config.
//
// Accepted forms are keyword/value strings (host=db user=app), native
// postgres:// and postgresql:// URLs, JDBC URLs (jdbc:postgresql://...) and
// generic URLs whose scheme starts with "postgres". Credentials in the URL
// are percent-decoded and the query string is passed through unchanged.
func ParseDSN(raw string) (*pgx.ConnConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &model.ConfigurationError{Reason: "database url is empty"}
	}

	if !strings.Contains(raw, "://") {
		cfg, err := pgx.ParseConfig(raw)
		if err != nil {
			return nil, &model.ConfigurationError{Reason: "malformed connection string", Err: err}
		}
		return cfg, nil
	}

	u, err := url.Parse(strings.TrimPrefix(raw, jdbcPrefix))
	if err != nil {
		return nil, &model.ConfigurationError{Reason: "malformed database url", Err: redactURLError(err)}
	}
	if u.Scheme == "" {
		return nil, &model.ConfigurationError{Reason: "database url has no scheme"}
	}
	if !strings.HasPrefix(strings.ToLower(u.Scheme), "postgres") {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("unsupported database scheme %q", u.Scheme)}
	}

	// The user stays in the URL so a password file is searched for that user.
	native := url.URL{
		Scheme:   "postgres",
		User:     u.User,
		Host:     u.Host,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}

	cfg, err := pgx.ParseConfig(native.String())
	if err != nil {
		return nil, &model.ConfigurationError{Reason: "malformed database url", Err: err}
	}

	return cfg, nil
}

// RedactDSN masks the password of a database URL so it can be logged.
func RedactDSN(raw string) string {
	trimmed := strings.TrimSpace(raw)
	prefix := ""
	if strings.HasPrefix(trimmed, jdbcPrefix) {
		prefix = jdbcPrefix
		trimmed = strings.TrimPrefix(trimmed, jdbcPrefix)
	}

	if !strings.Contains(trimmed, "://") {
		return redactKeywordValue(trimmed)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "<unparsable database url>"
	}

	return prefix + u.Redacted()
}

func redactKeywordValue(dsn string) string {
	fields := strings.Fields(dsn)
	for i, field := range fields {
		if key, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

// url.Parse echoes the whole input, password included, in its error.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
