package timeline

import "sync"

// Category is the visual family of a timeline marker
type Category string

const (
	CategoryBoundary Category = "boundary"
	CategoryWicket   Category = "wicket"
	CategoryShot     Category = "shot"
	// CategoryOther is used for every event type that has not been registered
	CategoryOther Category = "other"
)

// ParseCategory reads a category name as written in configuration
func ParseCategory(name string) (Category, bool) {
	switch c := Category(name); c {
	case CategoryBoundary, CategoryWicket, CategoryShot, CategoryOther:
		return c, true
	}
	return "", false
}

// Classifier maps event types to marker categories.
// The table is open: callers may register new event types at any time.
type Classifier struct {
	mu         sync.RWMutex
	categories map[string]Category
}

// NewClassifier creates a classifier preloaded with the cricket event types
func NewClassifier() *Classifier {
	return &Classifier{
		categories: map[string]Category{
			"boundary":    CategoryBoundary,
			"wicket":      CategoryWicket,
			"shot_played": CategoryShot,
			"shot":        CategoryShot,
		},
	}
}

// Register maps an event type to a category, replacing any previous mapping
func (c *Classifier) Register(eventType string, category Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories[eventType] = category
}

// Classify returns the category for an event type, or CategoryOther
func (c *Classifier) Classify(eventType string) Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if category, ok := c.categories[eventType]; ok {
		return category
	}
	return CategoryOther
}
