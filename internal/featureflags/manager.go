// Package featureflags evaluates the FEATURE_FLAGS setting, e.g.
// "summary_cache=on,photo_thumbnails=25%,strict_captcha=off".
package featureflags

import (
	"hash/fnv"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

const (
	// PhotoThumbnails renders a webp thumbnail next to the page 1 photo.
	PhotoThumbnails = "photo_thumbnails"
	// SummaryCache serves /printform from the Redis summary cache.
	SummaryCache = "summary_cache"
	// StrictCaptcha requires the submitted captcha to match the session copy.
	StrictCaptcha = "strict_captcha"
)

// rule is one parsed flag value. percent is 0..100; on and off are 100 and 0.
type rule struct {
	raw     string
	percent int
}

// Manager is an immutable parsed flag set.
type Manager struct {
	rules map[string]rule
}

// NewManager parses raw. Entries without '=' or with an unknown value are skipped.
func NewManager(raw string) *Manager {
	m := &Manager{rules: map[string]rule{}}
	for entry := range strings.SplitSeq(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" {
			continue
		}
		if r, ok := parseRule(value); ok {
			m.rules[name] = r
		}
	}
	return m
}

func parseRule(value string) (rule, bool) {
	switch value {
	case "on", "true", "1":
		return rule{raw: value, percent: 100}, true
	case "off", "false", "0":
		return rule{raw: value, percent: 0}, true
	}
	pct, ok := strings.CutSuffix(value, "%")
	if !ok {
		return rule{}, false
	}
	n, err := strconv.Atoi(pct)
	if err != nil {
		return rule{}, false
	}
	return rule{raw: value, percent: min(max(n, 0), 100)}, true
}

// Enabled reports whether name is on for userID. Partial rollouts hash the
// flag name with the user id, so one user always lands in the same bucket,
// and anonymous callers (userID 0) are never inside a partial rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}
	switch r.percent {
	case 0:
		return false
	case 100:
		return true
	}
	return userID != 0 && bucket(name, userID) < r.percent
}

// Raw returns the configured values keyed by flag name.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.rules))
	for name, r := range m.rules {
		out[name] = r.raw
	}
	return out
}

// Snapshot evaluates every configured flag for userID.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

// String lists the flags in name order as name=value pairs.
func (m *Manager) String() string {
	raw := m.Raw()
	parts := make([]string, 0, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		parts = append(parts, name+"="+raw[name])
	}
	return strings.Join(parts, ",")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name string, userID uint) int {
	h := fnv.New32a()
	h.Write([]byte(normalize(name)))
	h.Write([]byte{':'})
	h.Write(strconv.AppendUint(nil, uint64(userID), 10))
	return int(h.Sum32() % 100)
}

// Registry holds the live Manager so a config reload can replace it.
type Registry struct {
	current atomic.Pointer[Manager]
}

func NewRegistry(raw string) *Registry {
	r := &Registry{}
	r.Reload(raw)
	return r
}

// Reload swaps in flags parsed from raw and returns them.
func (r *Registry) Reload(raw string) *Manager {
	m := NewManager(raw)
	r.current.Store(m)
	return m
}

// Enabled evaluates name against the current flags. A nil registry has every flag off.
func (r *Registry) Enabled(name string, userID uint) bool {
	if r == nil {
		return false
	}
	return r.current.Load().Enabled(name, userID)
}
