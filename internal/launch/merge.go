package launch

import (
	"encoding/json"
	"fmt"
)

// GroupSet is an ordered map of groups keyed by id. Iteration follows
// first-insertion order.
type GroupSet struct {
	order []string
	byID  map[string]Group
}

// NewGroupSet builds a set by upserting groups in order.
func NewGroupSet(groups ...Group) *GroupSet {
	s := &GroupSet{byID: make(map[string]Group, len(groups))}
	for _, g := range groups {
		s.Upsert(g)
	}
	return s
}

// Upsert overlays g onto the group with the same id, or appends g when the
// id is new. Only fields set on g replace existing values.
func (s *GroupSet) Upsert(g Group) {
	if s.byID == nil {
		s.byID = make(map[string]Group)
	}
	existing, ok := s.byID[g.ID]
	if !ok {
		s.order = append(s.order, g.ID)
		s.byID[g.ID] = g
		return
	}
	g.MergeTo(&existing)
	s.byID[g.ID] = existing
}

// Get returns the group with the given id.
func (s *GroupSet) Get(id string) (Group, bool) {
	if s == nil {
		return Group{}, false
	}
	g, ok := s.byID[id]
	return g, ok
}

// Len returns the number of groups.
func (s *GroupSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns group ids in order.
func (s *GroupSet) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Groups returns the groups in order.
func (s *GroupSet) Groups() []Group {
	if s == nil {
		return nil
	}
	out := make([]Group, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Clone returns an independent copy.
func (s *GroupSet) Clone() *GroupSet {
	if s == nil {
		return nil
	}
	return NewGroupSet(s.Groups()...)
}

// MarshalJSON writes the set as an array.
func (s *GroupSet) MarshalJSON() ([]byte, error) {
	groups := s.Groups()
	if groups == nil {
		groups = []Group{}
	}
	return json.Marshal(groups)
}

// UnmarshalJSON reads an array of groups. Repeated ids are upserted.
func (s *GroupSet) UnmarshalJSON(data []byte) error {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}
	for i, g := range groups {
		if g.ID == "" {
			return fmt.Errorf("group %d has no id", i)
		}
	}
	*s = *NewGroupSet(groups...)
	return nil
}

// Merge overlays override onto base. Port, console, excludes and runtime
// executable are replaced when set on override. Groups are upserted by id:
// base groups keep their positions and new override groups are appended in
// override order. Neither argument is modified.
func Merge(base, override Config) Config {
	out := base
	out.Groups = base.Groups.Clone()

	if override.Port != nil {
		out.Port = override.Port
	}
	if override.Console != nil {
		out.Console = override.Console
	}
	if override.Excludes != nil {
		out.Excludes = override.Excludes
	}
	if override.RuntimeExecutable != nil {
		out.RuntimeExecutable = override.RuntimeExecutable
	}

	if override.Groups != nil {
		if out.Groups == nil {
			out.Groups = NewGroupSet()
		}
		for _, g := range override.Groups.Groups() {
			out.Groups.Upsert(g)
		}
	}
	return out
}

// MergeAll folds configs left to right, most specific last.
func MergeAll(configs ...Config) Config {
	var out Config
	for _, c := range configs {
		out = Merge(out, c)
	}
	return out
}
