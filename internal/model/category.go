package model

// Default categories seed every new plan and can never be deleted.
var defaultCategories = []string{"office", "home", "coding", "learning", "projects"}

// DefaultCategories returns a fresh copy of the seed category set.
func DefaultCategories() []string {
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// IsDefaultCategory reports whether name is one of the protected seeds.
func IsDefaultCategory(name string) bool {
	for _, c := range defaultCategories {
		if c == name {
			return true
		}
	}
	return false
}
