package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocumentBuildsWithoutError(t *testing.T) {
	prep := uint32(15)
	r := Recipe{
		UUID:         uuid.New(),
		ID:           42,
		Name:         "Weeknight Chili",
		Ingredients:  []string{"beans", "tomato"},
		Instructions: []string{"simmer"},
		Features: Features{
			NumIngredients:     2,
			InstructionsLength: 1,
			PrepTime:           &prep,
		},
	}

	doc := ToDocument(r)
	require.NotNil(t, doc)
	assert.Equal(t, "id", StoredIDFieldName)
	assert.Equal(t, "Filterable_field_id", IDFieldName)
}

func TestToCardAndToInfoProjectFeatures(t *testing.T) {
	cal := uint32(300)
	r := Recipe{
		Name:   "Soup",
		UUID:   uuid.New(),
		Images: []string{"a.jpg", "b.jpg"},
		Features: Features{
			NumIngredients: 5,
			Calories:       &cal,
		},
	}

	card := ToCard(r)
	assert.Equal(t, "a.jpg", *card.Image)
	assert.Equal(t, uint8(5), card.NumIngredients)
	assert.Equal(t, &cal, card.Calories)

	info := ToInfo(r)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, info.Images)
	assert.Equal(t, uint8(5), info.NumIngredients)
}
