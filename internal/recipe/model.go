// Package recipe is the domain record type this search service indexes:
// a recipe with free-text fields plus a numeric feature block that
// pkg/feature derives a schema, filter and aggregation surface from.
package recipe

import "github.com/google/uuid"

// Features is the record's feature block: the fields pkg/feature.Derive
// walks to build the schema/filter/aggregation triad. Every field here
// is numeric or an optional numeric, per the derivation framework's
// contract.
type Features struct {
	NumIngredients     uint8
	InstructionsLength uint32

	PrepTime  *uint32
	TotalTime *uint32
	CookTime  *uint32

	Calories       *uint32
	FatContent     *float32
	CarbContent    *float32
	ProteinContent *float32

	DietLowcarb    *float32
	DietVegetarian *float32
	DietVegan      *float32
	DietKeto       *float32
	DietPaleo      *float32
}

// Recipe is the full record persisted in the record store and indexed
// for search.
type Recipe struct {
	UUID uuid.UUID `json:"uuid"`
	ID   uint64    `json:"recipe_id"`

	Name     string `json:"name"`
	CrawlURL string `json:"crawl_url"`

	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Images       []string `json:"images"`

	SimilarRecipeIDs []uint64 `json:"similar_recipe_ids"`

	Features Features `json:"features"`
}

// GetID and GetUUID satisfy the record store's identity requirements.
func (r Recipe) GetID() uint64      { return r.ID }
func (r Recipe) GetUUID() uuid.UUID { return r.UUID }

// Card is the compact projection returned in search result pages.
type Card struct {
	Name     string    `json:"name"`
	UUID     uuid.UUID `json:"uuid"`
	CrawlURL string    `json:"crawl_url"`

	NumIngredients     uint8  `json:"num_ingredients"`
	InstructionsLength uint32 `json:"instructions_length"`

	Image     *string `json:"image,omitempty"`
	TotalTime *uint32 `json:"total_time,omitempty"`
	Calories  *uint32 `json:"calories,omitempty"`
}

// Info is the full-detail projection returned by direct UUID lookup.
type Info struct {
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	CrawlURL string    `json:"crawl_url"`

	NumIngredients uint8    `json:"num_ingredients"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
	Images         []string `json:"images,omitempty"`

	TotalTime *uint32 `json:"total_time,omitempty"`
	Calories  *uint32 `json:"calories,omitempty"`
}

// ToCard projects a full record into its search-result card.
func ToCard(r Recipe) Card {
	var image *string
	if len(r.Images) > 0 {
		image = &r.Images[0]
	}
	return Card{
		Name:               r.Name,
		UUID:               r.UUID,
		CrawlURL:           r.CrawlURL,
		NumIngredients:     r.Features.NumIngredients,
		InstructionsLength: r.Features.InstructionsLength,
		Image:              image,
		TotalTime:          r.Features.TotalTime,
		Calories:           r.Features.Calories,
	}
}

// ToInfo projects a full record into its direct-lookup detail view.
func ToInfo(r Recipe) Info {
	return Info{
		UUID:           r.UUID,
		Name:           r.Name,
		CrawlURL:       r.CrawlURL,
		Images:         r.Images,
		Ingredients:    r.Ingredients,
		Instructions:   r.Instructions,
		NumIngredients: r.Features.NumIngredients,
		TotalTime:      r.Features.TotalTime,
		Calories:       r.Features.Calories,
	}
}
