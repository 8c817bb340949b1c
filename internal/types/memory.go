package types

// CanonicalMemory is the structured profile accumulated about the user.
// Set-valued fields only ever grow; Name is write-once.
type CanonicalMemory struct {
	Name              string      `json:"name"`
	Preferences       Preferences `json:"preferences"`
	Goals             []string    `json:"goals"`
	Health            Health      `json:"health"`
	Favorites         Favorites   `json:"favorites"`
	PastExperiences   []string    `json:"pastExperiences"`
	PersonalityTraits []string    `json:"personalityTraits"`
	LearningGoals     []string    `json:"learningGoals"`
	EmotionalState    []string    `json:"emotionalState"`
	Skills            []string    `json:"skills"`
	LifeMilestones    []string    `json:"lifeMilestones"`
	ImportantDates    []string    `json:"importantDates"`
	MemoryNotes       []string    `json:"memoryNotes"`
}

// Preferences groups things the user enjoys or avoids.
type Preferences struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
}

// Health groups allergies, diets and conditions.
type Health struct {
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Conditions          []string `json:"conditions"`
}

// Favorites groups favourite things by category.
type Favorites struct {
	Books    []string `json:"books"`
	Movies   []string `json:"movies"`
	Foods    []string `json:"foods"`
	Music    []string `json:"music"`
	Holidays []string `json:"holidays"`
}

// ListField names one set-valued field of CanonicalMemory by its JSON path.
type ListField struct {
	Path string
	Ref  func(m *CanonicalMemory) *[]string
}

// ListFields enumerates every set-valued field in schema order.
var ListFields = []ListField{
	{"preferences.likes", func(m *CanonicalMemory) *[]string { return &m.Preferences.Likes }},
	{"preferences.dislikes", func(m *CanonicalMemory) *[]string { return &m.Preferences.Dislikes }},
	{"goals", func(m *CanonicalMemory) *[]string { return &m.Goals }},
	{"health.allergies", func(m *CanonicalMemory) *[]string { return &m.Health.Allergies }},
	{"health.dietaryRestrictions", func(m *CanonicalMemory) *[]string { return &m.Health.DietaryRestrictions }},
	{"health.conditions", func(m *CanonicalMemory) *[]string { return &m.Health.Conditions }},
	{"favorites.books", func(m *CanonicalMemory) *[]string { return &m.Favorites.Books }},
	{"favorites.movies", func(m *CanonicalMemory) *[]string { return &m.Favorites.Movies }},
	{"favorites.foods", func(m *CanonicalMemory) *[]string { return &m.Favorites.Foods }},
	{"favorites.music", func(m *CanonicalMemory) *[]string { return &m.Favorites.Music }},
	{"favorites.holidays", func(m *CanonicalMemory) *[]string { return &m.Favorites.Holidays }},
	{"pastExperiences", func(m *CanonicalMemory) *[]string { return &m.PastExperiences }},
	{"personalityTraits", func(m *CanonicalMemory) *[]string { return &m.PersonalityTraits }},
	{"learningGoals", func(m *CanonicalMemory) *[]string { return &m.LearningGoals }},
	{"emotionalState", func(m *CanonicalMemory) *[]string { return &m.EmotionalState }},
	{"skills", func(m *CanonicalMemory) *[]string { return &m.Skills }},
	{"lifeMilestones", func(m *CanonicalMemory) *[]string { return &m.LifeMilestones }},
	{"importantDates", func(m *CanonicalMemory) *[]string { return &m.ImportantDates }},
	{"memoryNotes", func(m *CanonicalMemory) *[]string { return &m.MemoryNotes }},
}

// NewMemory returns an empty memory with every list allocated, optionally
// seeded with a known display name.
func NewMemory(name string) CanonicalMemory {
	m := CanonicalMemory{Name: name}
	m.Normalize()
	return m
}

// Normalize replaces nil lists with empty ones so the serialized form always
// carries every key.
func (m *CanonicalMemory) Normalize() {
	for _, f := range ListFields {
		if ref := f.Ref(m); *ref == nil {
			*ref = []string{}
		}
	}
}

// Clone returns a deep copy.
func (m CanonicalMemory) Clone() CanonicalMemory {
	out := CanonicalMemory{Name: m.Name}
	for _, f := range ListFields {
		src := *f.Ref(&m)
		dst := make([]string, len(src))
		copy(dst, src)
		*f.Ref(&out) = dst
	}
	return out
}
