// Package catalog holds the fixed exercise taxonomy:
// Category → Type → Group → exercise names.
//
// The tree is built once from Go literals and never mutated. Lookups are
// total: an unknown or unselected key yields an empty slice.
package catalog

// ─── Categories ─────────────────────────────────────────────────────────────

// Category is the top level of the taxonomy.
type Category int

const (
	Strength Category = iota
	Cardio
	Mobility
)

var categoryNames = [...]string{
	Strength: "Strength",
	Cardio:   "Cardio",
	Mobility: "Mobility",
}

// String returns the display name used in stored entries.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return ""
	}
	return categoryNames[c]
}

// ParseCategory resolves a display name.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// CardioGroup is the single group every cardio type carries.
const CardioGroup = "-"

// SelectAll is the name-selector value that expands an entry into every
// exercise of its group.
const SelectAll = "__all__"

// IsCardio reports whether category names the cardio branch.
func IsCardio(category string) bool { return category == Cardio.String() }

// ─── Tree ───────────────────────────────────────────────────────────────────

// GroupNode is the leaf level: an ordered list of exercise names.
type GroupNode struct {
	Name      string
	Exercises []string
}

// TypeNode holds the groups of one training type.
type TypeNode struct {
	Name   string
	Groups []GroupNode
}

// CategoryNode holds the types of one category.
type CategoryNode struct {
	Category Category
	Types    []TypeNode
}

func group(name string, exercises ...string) GroupNode {
	return GroupNode{Name: name, Exercises: exercises}
}

func kind(name string, groups ...GroupNode) TypeNode {
	return TypeNode{Name: name, Groups: groups}
}

// cardioKind builds a cardio type; the group level is always CardioGroup.
func cardioKind(name string, exercises ...string) TypeNode {
	return TypeNode{Name: name, Groups: []GroupNode{group(CardioGroup, exercises...)}}
}

// Catalog is the full taxonomy, indexed by Category.
var Catalog = [...]CategoryNode{
	Strength: {
		Category: Strength,
		Types: []TypeNode{
			kind("Push",
				group("Chest", "Bench Press", "Incline Dumbbell Press", "Cable Fly", "Push Up"),
				group("Shoulder", "Overhead Press", "Lateral Raise", "Rear Delt Fly"),
				group("Tricep", "Tricep Pushdown", "Skull Crusher", "Dip"),
			),
			kind("Pull",
				group("Back", "Deadlift", "Pull Up", "Barbell Row", "Lat Pulldown", "Seated Cable Row"),
				group("Bicep", "Barbell Curl", "Hammer Curl", "Preacher Curl"),
			),
			kind("Legs",
				group("Quads", "Back Squat", "Leg Press", "Leg Extension", "Bulgarian Split Squat"),
				group("Hamstrings", "Romanian Deadlift", "Leg Curl"),
				group("Glutes", "Hip Thrust", "Cable Kickback"),
				group("Calves", "Standing Calf Raise", "Seated Calf Raise"),
			),
			kind("Core",
				group("Abs", "Plank", "Hanging Leg Raise", "Cable Crunch", "Ab Wheel"),
			),
		},
	},
	Cardio: {
		Category: Cardio,
		Types: []TypeNode{
			cardioKind("LISS", "Treadmill", "Stair Master", "Elliptical"),
			cardioKind("HIIT", "Sprints", "Rowing Intervals", "Assault Bike"),
			cardioKind("Sport", "Basketball", "Soccer", "Tennis", "Swimming"),
		},
	},
	Mobility: {
		Category: Mobility,
		Types: []TypeNode{
			kind("Stretching",
				group("Upper Body", "Doorway Chest Stretch", "Cross-Body Shoulder Stretch"),
				group("Lower Body", "Hamstring Stretch", "Hip Flexor Stretch", "Pigeon Pose"),
			),
			kind("Yoga",
				group("Flow", "Sun Salutation", "Vinyasa"),
				group("Restorative", "Child's Pose", "Legs Up The Wall"),
			),
		},
	},
}

// ─── Lookups ────────────────────────────────────────────────────────────────

// Categories returns the category names in tree order.
func Categories() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames[:])
	return out
}

func findType(category, typ string) *TypeNode {
	c, ok := ParseCategory(category)
	if !ok {
		return nil
	}
	types := Catalog[c].Types
	for i := range types {
		if types[i].Name == typ {
			return &types[i]
		}
	}
	return nil
}

// TypesFor returns the type names under category.
func TypesFor(category string) []string {
	c, ok := ParseCategory(category)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(Catalog[c].Types))
	for _, t := range Catalog[c].Types {
		out = append(out, t.Name)
	}
	return out
}

// GroupsFor returns the group names under category/typ.
func GroupsFor(category, typ string) []string {
	t := findType(category, typ)
	if t == nil {
		return []string{}
	}
	out := make([]string, 0, len(t.Groups))
	for _, g := range t.Groups {
		out = append(out, g.Name)
	}
	return out
}

// ExercisesFor returns the exercise names under category/typ/group.
func ExercisesFor(category, typ, grp string) []string {
	t := findType(category, typ)
	if t == nil {
		return []string{}
	}
	for _, g := range t.Groups {
		if g.Name == grp {
			out := make([]string, len(g.Exercises))
			copy(out, g.Exercises)
			return out
		}
	}
	return []string{}
}
