// Package domain holds DTOs for catalog http and service contracts
package domain

// WatchedGame is one row of the watched list
type WatchedGame struct {
	AppID     int64  `json:"appid"`
	Name      string `json:"name"`
	LastCount int64  `json:"last_count"`
}

// Game is the full metadata record served by the API
type Game struct {
	AppID              int64    `json:"appid"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	HeaderImageURL     string   `json:"header_image_url"`
	BackgroundImageURL string   `json:"background_image_url"`
	ReleaseDate        string   `json:"release_date"`
	Price              float64  `json:"price"`
	IsFree             bool     `json:"is_free"`
	Genres             []string `json:"genres"`
	Categories         []string `json:"categories"`
}

// MetadataWrite is the ingestion shape for the enrich job
type MetadataWrite struct {
	AppID              int64
	Name               string
	Description        string
	HeaderImageURL     string
	BackgroundImageURL string
	ReleaseDate        string
	Price              float64
	IsFree             bool
	Genres             []string
	Categories         []string
}

// TagsBatchInput is the body of POST /api/games/tags/batch
type TagsBatchInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=100,unique,dive,gt=0,lt=10000000"`
}

// GameTags are the relationship sets for one id
type GameTags struct {
	Genres     []string `json:"genres"`
	Categories []string `json:"categories"`
}

// TagsBatchOutput maps each requested id to its tags
type TagsBatchOutput struct {
	Tags map[int64]GameTags `json:"tags"`
}
