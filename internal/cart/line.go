package cart

import (
	"time"

	"github.com/google/uuid"
)

// Line is one requested recipe bound to a destination class. Lines are keyed
// by (RecipeID, ClassID); adding the same recipe for the same class bumps the
// quantity instead of appending.
type Line struct {
	RecipeID     uuid.UUID  `json:"recipe_id"`
	RecipeName   string     `json:"recipe_name"`
	ClassID      uuid.UUID  `json:"class_id"`
	ClassName    string     `json:"class_name"`
	Quantity     int        `json:"quantity"`
	Notes        string     `json:"notes,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
}

func (l Line) matches(recipeID, classID uuid.UUID) bool {
	return l.RecipeID == recipeID && l.ClassID == classID
}
