package catalog

// ─── Cascading Selection ────────────────────────────────────────────────────
// Each level's selector narrows the next. Changing a level clears every
// level below it; for cardio the group is pinned to CardioGroup instead.

// Selection is the category/type/group/name chosen for one entry.
type Selection struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Group    string `json:"group"`
	Name     string `json:"name"`
}

func defaultGroup(category string) string {
	if IsCardio(category) {
		return CardioGroup
	}
	return ""
}

// WithCategory picks a category and resets type, group and name.
func (s Selection) WithCategory(category string) Selection {
	return Selection{Category: category, Group: defaultGroup(category)}
}

// WithType picks a type and resets group and name.
func (s Selection) WithType(typ string) Selection {
	s.Type = typ
	s.Group = defaultGroup(s.Category)
	s.Name = ""
	return s
}

// WithGroup picks a group and resets name.
func (s Selection) WithGroup(grp string) Selection {
	s.Group = grp
	s.Name = ""
	return s
}

// WithName picks an exercise name.
func (s Selection) WithName(name string) Selection {
	s.Name = name
	return s
}

// Expand returns one selection per exercise of the chosen group, in
// catalog order. It is empty when the group has nothing to expand to.
func (s Selection) Expand() []Selection {
	names := ExercisesFor(s.Category, s.Type, s.Group)
	out := make([]Selection, 0, len(names))
	for _, n := range names {
		out = append(out, Selection{Category: s.Category, Type: s.Type, Group: s.Group, Name: n})
	}
	return out
}
