package catalog

import "net/url"

// TreesPath is the catalog endpoint relative to the backend base URL
const TreesPath = "/api/trees"

// Query translates criteria into catalog request parameters.
// Only the size is sent; text matching is always done locally.
func Query(c Criteria) url.Values {
	params := url.Values{}
	if c.Size != "" && c.Size != SizeAll {
		params.Set("size", string(c.Size))
	}
	return params
}
