package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns the singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService indexes catalog products into Elasticsearch. Optional:
// when ELASTICSEARCH_HOST is unset the service is disabled and all
// lookups fall back to the database.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "conputodo_catalog"
	}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &SearchService{index: index}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether an Elasticsearch client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// searchDoc is the indexed projection of a product.
type searchDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PriceUSD    float64  `json:"price_usd"`
	Status      string   `json:"status"`
	InStock     bool     `json:"in_stock"`
}

// IndexProduct upserts one product document into the index.
func (s *SearchService) IndexProduct(ctx context.Context, p *catalogEntity.Product) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	doc := searchDoc{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    p.Category,
		Brand:       p.Brand,
		SKU:         p.SKU,
		Description: p.Description,
		Tags:        p.TagList(),
		PriceUSD:    p.PriceUSD,
		Status:      p.Status,
		InStock:     p.Stock > 0,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(p.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}

// DeleteProduct removes a product from the index (permanent delete path).
func (s *SearchService) DeleteProduct(ctx context.Context, id string) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	res, err := s.client.Delete(
		s.index,
		id,
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete error: %s", res.String())
	}
	return nil
}

// Search queries the index and returns matching product ids plus the
// total hit count. Only published products are matched.
func (s *SearchService) Search(ctx context.Context, query string, size, page int) ([]string, int, error) {
	if s.client == nil {
		return nil, 0, fmt.Errorf("elasticsearch not configured")
	}
	if size <= 0 {
		size = 20
	}
	if page <= 0 {
		page = 1
	}

	body := map[string]interface{}{
		"from": (page - 1) * size,
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"title^3", "sku^2", "brand^2", "description", "tags"},
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"status": catalogEntity.StatusPublished}},
				},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		if id := strings.TrimSpace(hit.ID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, esResp.Hits.Total.Value, nil
}
