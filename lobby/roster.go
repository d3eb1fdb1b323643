package lobby

import (
	"golang.org/x/exp/slices"
)

// Entry is one tracked user and their ready flag.
type Entry struct {
	UserID string
	Ready  bool
}

// Roster maps user IDs to ready status, keeping the order users joined in.
// Joining again overwrites the flag without moving the user.
type Roster struct {
	order []string
	ready map[string]bool
}

func NewRoster() *Roster {
	return &Roster{ready: map[string]bool{}}
}

// Join tracks userID as not ready.
func (r *Roster) Join(userID string) {
	if _, ok := r.ready[userID]; !ok {
		r.order = append(r.order, userID)
	}
	r.ready[userID] = false
}

// Leave drops userID whatever its ready state. It reports whether the user was tracked.
func (r *Roster) Leave(userID string) bool {
	if _, ok := r.ready[userID]; !ok {
		return false
	}
	delete(r.ready, userID)
	if i := slices.Index(r.order, userID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// SetReady updates a tracked user. Untracked users are ignored.
func (r *Roster) SetReady(userID string, ready bool) bool {
	if _, ok := r.ready[userID]; !ok {
		return false
	}
	r.ready[userID] = ready
	return true
}

func (r *Roster) Has(userID string) bool {
	_, ok := r.ready[userID]
	return ok
}

func (r *Roster) Len() int { return len(r.order) }

// Entries returns every tracked user in join order.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry{UserID: id, Ready: r.ready[id]})
	}
	return out
}

// Filter returns the entries whose users are in live, in join order. The
// roster itself is left untouched.
func (r *Roster) Filter(live []string) []Entry {
	out := make([]Entry, 0, len(live))
	for _, id := range r.order {
		if slices.Contains(live, id) {
			out = append(out, Entry{UserID: id, Ready: r.ready[id]})
		}
	}
	return out
}

// AllReady reports whether entries is non-empty and every entry is ready.
func AllReady(entries []Entry) bool {
	if len(entries) == 0 {
		return false
	}
	return !slices.ContainsFunc(entries, func(e Entry) bool { return !e.Ready })
}
