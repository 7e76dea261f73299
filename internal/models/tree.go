package models

import "encoding/json"

// Tree represents a Christmas tree listed in the catalog
type Tree struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Size        string   `json:"size"`
	Price       float64  `json:"price"`
	HeightFt    *float64 `json:"height_ft,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	InStock     bool     `json:"in_stock"`
}

// UnmarshalJSON also accepts the older "id" and "image" field names
func (t *Tree) UnmarshalJSON(data []byte) error {
	type tree Tree
	aux := struct {
		*tree
		LegacyID    string `json:"id"`
		LegacyImage string `json:"image"`
	}{tree: (*tree)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.LegacyID
	}
	if t.ImageURL == "" {
		t.ImageURL = aux.LegacyImage
	}
	return nil
}

// TreeList is the GET /api/trees response body
type TreeList struct {
	Items []Tree `json:"items"`
}

// SeedRequest is the POST /api/admin/seed request body
type SeedRequest struct {
	Overwrite bool `json:"overwrite"`
}

// SeedResponse reports how many trees a seed run inserted or replaced
type SeedResponse struct {
	Inserted int `json:"inserted"`
}
