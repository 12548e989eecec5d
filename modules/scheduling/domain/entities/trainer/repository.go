package trainer

import (
	"context"
	"fmt"
)

var ErrNotFound = fmt.Errorf("trainer not found")

// Repository is the trainer directory. All lookups are case-insensitive
// and return the first match in directory order (ascending id); "nothing
// found" is ErrNotFound, never a fabricated entry.
type Repository interface {
	GetAll(ctx context.Context) ([]Trainer, error)
	// GetByExactName matches the concatenated "first last" full name.
	GetByExactName(ctx context.Context, name string) (Trainer, error)
	// GetByNameParts matches entries whose first name contains first and
	// whose last name contains last.
	GetByNameParts(ctx context.Context, first, last string) (Trainer, error)
	// GetBySubstring matches text against either name column.
	GetBySubstring(ctx context.Context, text string) (Trainer, error)
}
