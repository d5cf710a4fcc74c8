package application

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

const (
	productsCacheKey = "products:all"
	productsGenKey   = "products:gen"
)

// ProductIndexMapping is the Elasticsearch index body for mirrored products.
const ProductIndexMapping = `{
  "mappings": {
    "properties": {
      "name":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "category":    {"type": "keyword"},
      "image":       {"type": "keyword", "index": false},
      "price":       {"type": "double"},
      "description": {"type": "text"}
    }
  }
}`

type ProductService struct {
	Repo            repo.ProductRepository
	Images          ImageStore
	Redis           *redis.Client
	CacheTTL        time.Duration
	ES              *elasticsearch.Client
	ESProductsIndex string
	Logger          *logrus.Logger
}

func NewProductService(r repo.ProductRepository, images ImageStore, rdb *redis.Client, cacheTTL time.Duration, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Repo:            r,
		Images:          images,
		Redis:           rdb,
		CacheTTL:        cacheTTL,
		ES:              es,
		ESProductsIndex: esIndex,
		Logger:          logger,
	}
}

type ProductInput struct {
	Name        string
	Category    string
	Image       string
	Price       float64
	Description string
}

func (s *ProductService) Upload(ctx context.Context, in ProductInput) (*entity.Product, error) {
	image, uploaded := storeImage(ctx, s.Images, s.Logger, "products", in.Image)
	p := &entity.Product{
		Name:        in.Name,
		Category:    in.Category,
		Image:       image,
		Price:       in.Price,
		Description: in.Description,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if uploaded {
			discardImage(ctx, s.Images, s.Logger, image)
		}
		return nil, err
	}
	productUploadsTotal.Add(1)

	s.invalidate(ctx)
	s.indexProduct(ctx, p)
	return p, nil
}

// List returns every product. The Redis copy is served when present; any
// cache error falls through to the store. The cache is refilled only if no
// upload happened between reading the generation and writing the snapshot.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	gen := ""
	if s.Redis != nil {
		var cached []entity.Product
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, productsCacheKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", productsCacheKey).Warn("product cache read failed")
		}
		if ok && cached != nil {
			return cached, nil
		}
		if err == nil {
			gen, err = helpers.RedisGeneration(ctx, s.Redis, productsGenKey)
			if err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("key", productsGenKey).Warn("product cache generation read failed")
			}
		}
	}

	products, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if gen != "" {
		if _, err := helpers.RedisSetJSONIfGeneration(ctx, s.Redis, productsCacheKey, productsGenKey, gen, products, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", productsCacheKey).Warn("product cache write failed")
		}
	}
	return products, nil
}

// invalidate bumps the generation before dropping the snapshot, so fills
// started earlier are discarded.
func (s *ProductService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisBump(ctx, s.Redis, productsGenKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", productsGenKey).Warn("product cache generation bump failed")
	}
	if err := helpers.RedisDel(ctx, s.Redis, productsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", productsCacheKey).Warn("product cache invalidate failed")
	}
}

// indexProduct mirrors p into Elasticsearch. Failures are logged only.
func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	doc := map[string]any{
		"name":        p.Name,
		"category":    p.Category,
		"image":       p.Image,
		"price":       p.Price,
		"description": p.Description,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID.Hex()).Warn("es encode failed")
		}
		return
	}
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID.Hex(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID.Hex()).Warn("es index response error")
	}
}
