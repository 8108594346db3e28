package adsdomain

// SearchRequest é o corpo de googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

// SearchResponse traz uma página de resultados. Cada resultado é um objeto
// aninhado por recurso, ex: {"campaign": {"id": "1"}, "metrics": {"clicks": "3"}}
type SearchResponse struct {
	Results       []map[string]interface{} `json:"results"`
	NextPageToken string                   `json:"nextPageToken"`
	FieldMask     string                   `json:"fieldMask"`
}

type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}
