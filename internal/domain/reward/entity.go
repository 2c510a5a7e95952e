package reward

import (
	"time"

	"github.com/google/uuid"
)

// Reward is an awarded tier for a user. Rows are immutable once created and
// unique per (user, tier).
type Reward struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Tier        int       `db:"tier" json:"tier"`
	Brand       string    `db:"brand" json:"brand"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
