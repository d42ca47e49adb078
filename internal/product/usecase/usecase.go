package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/cache"
	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/product"
	"github.com/fekuna/omnipos-menu-service/internal/product/dto"
	"github.com/fekuna/omnipos-menu-service/internal/search"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

const productIndex = "products"

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"available": { "type": "boolean" },
			"category_id": { "type": "long" },
			"price": { "type": "scaled_float", "scaling_factor": 100 }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

// NewProductUseCase wires the product usecase. cache and es may be nil.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now}, Available: true}
	applyInput(p, input)

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, uc.storageError("create product", input.CategoryID, err)
	}

	go uc.invalidateCatalogCache(context.Background())
	go uc.syncToElastic(context.Background(), *p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("find product", err)
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	cacheKey, err := generateCacheKey(filters)
	if err == nil {
		var cached []model.Product
		if found, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	var products []model.Product
	if filters.SearchQuery != "" && uc.es != nil {
		products, err = uc.searchElastic(ctx, filters)
		if err != nil {
			// fall through to the database
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
			products = nil
		}
	}

	if products == nil {
		products, err = uc.repo.FindAll(ctx, filters)
		if err != nil {
			return nil, apperror.Persistence("list products", err)
		}
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, products, cache.DefaultTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return products, nil
}

// searchElastic ranks ids by relevance, then loads the rows from the database
// so prices and availability are never stale.
func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     f.SearchQuery,
				"fields":    []string{"name^3", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
		"size":    100,
	}
	if f.Limit > 0 {
		q["size"] = f.Limit
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		if id, err := strconv.ParseInt(hit.ID, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}

	rows, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if f.Available != nil && p.Available != *f.Available {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validateInput(&input.CreateProductInput); err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	applyInput(p, &input.CreateProductInput)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, uc.storageError("update product", input.CategoryID, err)
	}

	go uc.invalidateCatalogCache(context.Background())
	go uc.syncToElastic(context.Background(), *p)

	return p, nil
}

func (uc *productUseCase) SetAvailability(ctx context.Context, id int64, available bool) (*model.Product, error) {
	ok, err := uc.repo.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, apperror.Persistence("update product availability", err)
	}
	if !ok {
		return nil, apperror.NotFound("product", id)
	}

	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	go uc.invalidateCatalogCache(context.Background())
	go uc.syncToElastic(context.Background(), *p)

	return p, nil
}

// DeleteProduct removes the product. Past orders keep their line item snapshots.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Persistence("delete product", err)
	}
	if !ok {
		return apperror.NotFound("product", id)
	}

	go uc.invalidateCatalogCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, strconv.FormatInt(id, 10)); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := uc.repo.FindAll(ctx, &dto.ProductFilters{})
	if err != nil {
		return apperror.Persistence("list products", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Produtos")
	if err != nil {
		return err
	}

	headers := []string{"ID", "Nome", "Descrição", "Preço", "Preço de custo", "Disponível", "Quantidade", "Unidade", "Categoria", "Criado em"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(deref(p.Description))
		row.AddCell().SetString(p.Price.StringFixed(2))
		if p.CostPrice.Valid {
			row.AddCell().SetString(p.CostPrice.Decimal.StringFixed(2))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetValue(p.Available)
		if p.Quantity != nil {
			row.AddCell().SetValue(*p.Quantity)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(deref(p.Unit))
		if p.CategoryID != nil {
			row.AddCell().SetValue(*p.CategoryID)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

func (uc *productUseCase) storageError(op string, categoryID *int64, err error) error {
	if categoryID != nil && database.IsForeignKeyViolation(err) {
		return apperror.NotFound("category", *categoryID)
	}
	return apperror.Persistence(op, err)
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, productIndex, productMapping)

	doc := map[string]interface{}{
		"name":        p.Name,
		"description": deref(p.Description),
		"available":   p.Available,
		"category_id": p.CategoryID,
		"price":       p.Price.InexactFloat64(),
	}
	if err := uc.es.Index(ctx, productIndex, strconv.FormatInt(p.ID, 10), doc); err != nil {
		uc.logger.Error("failed to index product", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateCatalogCache(ctx context.Context) {
	for _, pattern := range []string{cache.PatternProducts, cache.PatternMenu} {
		if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
			uc.logger.Warn("failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func validateInput(in *dto.CreateProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("product name is required")
	}
	if in.Price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return apperror.Validation("cost price must not be negative")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return apperror.Validation("quantity must not be negative")
	}
	return nil
}

func applyInput(p *model.Product, in *dto.CreateProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.CostPrice = decimal.NullDecimal{}
	if in.CostPrice != nil {
		p.CostPrice = decimal.NewNullDecimal(in.CostPrice.Round(2))
	}
	p.Image = in.Image
	if in.Available != nil {
		p.Available = *in.Available
	}
	p.Quantity = in.Quantity
	p.Unit = in.Unit
	p.CategoryID = in.CategoryID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
