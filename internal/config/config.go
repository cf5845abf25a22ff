// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix namespaces every variable the server reads.
const EnvPrefix = "POSTER_MCP_"

// Conf is a namespaced view over environment variables (e.g. "LOG_").
type Conf struct{ prefix string }

// New returns a root Conf (no prefix).
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix.
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully-qualified variable name for k.
func (c Conf) Key(k string) string { return c.prefix + k }

// Get returns the trimmed variable or def if it is unset or empty.
func (c Conf) Get(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.Key(key)))
	if v == "" {
		return def
	}
	return v
}

// GetInt returns the variable parsed as an int, or def if it is unset.
func (c Conf) GetInt(key string, def int) (int, error) {
	s := c.Get(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Errorf("invalid int %s=%q: %w", c.Key(key), s, err)
	}
	return v, nil
}

// GetFloat returns the variable parsed as a float64, or def if it is unset.
func (c Conf) GetFloat(key string, def float64) (float64, error) {
	s := c.Get(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def, fmt.Errorf("invalid float %s=%q: %w", c.Key(key), s, err)
	}
	return v, nil
}

// GetBool parses "1", "true" or "yes" as true, with def when unset.
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.Get(key, ""))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}
