package store

import (
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
)

// AddCategory adds a tag to the category set. Adding an existing category is
// a no-op; comparison is case-sensitive, callers are expected to lowercase.
func (s *Store) AddCategory(name string) {
	s.mutate("add_category", func() map[string]any {
		for _, c := range s.categories {
			if c == name {
				return nil
			}
		}
		next := cloneStrings(s.categories)
		next = append(next, name)
		s.categories = next
		return map[string]any{storage.KeyCategories: next}
	})
}

// DeleteCategory removes a user-added tag. The five seed categories cannot
// be deleted. Tasks referencing the removed tag keep it dangling unless the
// strip policy is enabled.
func (s *Store) DeleteCategory(name string) {
	s.mutate("delete_category", func() map[string]any {
		if model.IsDefaultCategory(name) {
			s.logger.Debug("Refusing to delete default category", zap.String("category", name))
			return nil
		}

		next := make([]string, 0, len(s.categories))
		found := false
		for _, c := range s.categories {
			if c == name {
				found = true
				continue
			}
			next = append(next, c)
		}
		if !found {
			return nil
		}
		s.categories = next

		entries := map[string]any{storage.KeyCategories: next}
		if s.stripTags {
			nextTasks := cloneTasks(s.tasks)
			for i, t := range nextTasks {
				if t.Category == name {
					nextTasks[i].Category = ""
				}
			}
			s.tasks = nextTasks
			entries[storage.KeyTasks] = nextTasks
		}
		return entries
	})
}
