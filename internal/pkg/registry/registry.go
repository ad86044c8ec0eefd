package registry

import (
	"log/slog"
	"sync"

	"github.com/dmarkin/scorestream/internal/pkg/bus"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

// Registry owns the per-provider snapshots, the fingerprint table used for
// change detection, and the completed-status guard. It is constructed at
// startup and handed to the scheduler (writer side) and the API/merge layers
// (reader side); there is no package-level state.
//
// Only one goroutine ever writes a given provider's snapshot (the provider's
// own poll cycle), and snapshots are replaced wholesale, so readers never see
// a half-updated record; the mutex covers the interleaving of readers with
// that single writer.
type Registry struct {
	mu        sync.RWMutex
	snapshots map[models.Source][]models.Match

	// fingerprints gate event emission, keyed by source+id. Pruned to the
	// ids present in the current snapshot each cycle.
	fingerprints map[models.Source]map[string]string

	// completed pins ids that reached the terminal status. A provider
	// re-reporting such an id as live must not resurrect it.
	completed map[models.Source]map[string]bool

	events *bus.Bus
}

func New(events *bus.Bus) *Registry {
	return &Registry{
		snapshots:    make(map[models.Source][]models.Match),
		fingerprints: make(map[models.Source]map[string]string),
		completed:    make(map[models.Source]map[string]bool),
		events:       events,
	}
}

// SetSnapshot replaces a provider's snapshot wholesale and emits change
// events for records whose fingerprint differs from the previous cycle.
// Records seen for the first time record their fingerprint silently, so a
// cold start never floods subscribers.
func (r *Registry) SetSnapshot(source models.Source, matches []models.Match) {
	r.mu.Lock()

	prev := r.fingerprints[source]
	if prev == nil {
		prev = make(map[string]string)
	}
	done := r.completed[source]
	if done == nil {
		done = make(map[string]bool)
		r.completed[source] = done
	}

	next := make(map[string]string, len(matches))
	snapshot := make([]models.Match, 0, len(matches))
	var changed []models.ChangeEvent

	for i := range matches {
		m := matches[i]
		if done[m.ID] && m.Status != models.StatusCompleted {
			// Terminal status is immutable for this id+source.
			m.Status = models.StatusCompleted
		}
		if m.Status == models.StatusCompleted {
			done[m.ID] = true
		}

		fp := models.Fingerprint(&m)
		prevFP, seen := prev[m.ID]
		if seen && prevFP != fp {
			ev := models.ChangeEvent{Source: source, ID: m.ID, Match: m}
			if prevStatus := statusPart(prevFP); prevStatus != string(m.Status) {
				ev.StatusChanged = true
				ev.PrevStatus = models.Status(prevStatus)
			}
			changed = append(changed, ev)
		}
		next[m.ID] = fp
		snapshot = append(snapshot, m)
	}

	r.snapshots[source] = snapshot
	r.fingerprints[source] = next
	r.mu.Unlock()

	// Publish outside the lock; the bus never blocks.
	for _, ev := range changed {
		r.events.Publish(bus.TopicScores, ev)
		r.events.Publish(bus.MatchTopic(source, ev.ID), ev)
	}
	if len(changed) > 0 {
		slog.Debug("Snapshot produced change events", "source", source, "events", len(changed), "matches", len(snapshot))
	}
}

// Snapshot returns a copy of the provider's current snapshot.
func (r *Registry) Snapshot(source models.Source) []models.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := r.snapshots[source]
	out := make([]models.Match, len(snapshot))
	copy(out, snapshot)
	return out
}

// MatchByID looks a match up in the provider's current snapshot.
func (r *Registry) MatchByID(source models.Source, id string) (models.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.snapshots[source] {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}

// External returns copies of all external snapshots in merge priority order.
func (r *Registry) External() [][]models.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([][]models.Match, 0, len(models.ExternalSources))
	for _, source := range models.ExternalSources {
		snapshot := r.snapshots[source]
		cp := make([]models.Match, len(snapshot))
		copy(cp, snapshot)
		out = append(out, cp)
	}
	return out
}

// statusPart extracts the status field from a fingerprint.
func statusPart(fp string) string {
	for i := len(fp) - 1; i >= 0; i-- {
		if fp[i] == '|' {
			return fp[i+1:]
		}
	}
	return fp
}
