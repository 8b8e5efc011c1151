package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/pkg/cache"
	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = 5 * time.Minute
)

// CatalogService owns product reads and mutations, including the image
// handling around them: resolving an upload vs an external URL on create,
// and best-effort cleanup of the uploaded file on delete.
type CatalogService struct {
	repo          *repositories.ProductRepository
	disk          storage.Disk
	uploadsRoot   string // directory on disk where images land
	uploadsPrefix string // URL prefix stored in the image column
}

func NewCatalogService(repo *repositories.ProductRepository, disk storage.Disk, uploadsRoot, uploadsPrefix string) *CatalogService {
	return &CatalogService{
		repo:          repo,
		disk:          disk,
		uploadsRoot:   strings.Trim(uploadsRoot, "/"),
		uploadsPrefix: "/" + strings.Trim(uploadsPrefix, "/"),
	}
}

// List returns all products, serving from the Redis cache when warm.
func (s *CatalogService) List() ([]models.Product, error) {
	var products []models.Product
	if cache.Get(productListCacheKey, &products) {
		metrics.CacheHits.WithLabelValues(productListCacheKey).Inc()
		return products, nil
	}
	metrics.CacheMisses.WithLabelValues(productListCacheKey).Inc()

	products, err := s.repo.All()
	if err != nil {
		return nil, err
	}

	if err := cache.Set(productListCacheKey, products, productListCacheTTL); err != nil {
		logger.Warn("catalog: cache set failed", "error", err)
	}
	return products, nil
}

// CreateInput carries the already-validated fields of a product-creation
// request. Image resolution order: uploaded file, then ImageURL, then "".
type CreateInput struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
}

// Create persists a new product. When upload is non-nil its file is stored
// first and its derived URL wins over ImageURL.
func (s *CatalogService) Create(in CreateInput, upload *Upload) (models.Product, error) {
	image := in.ImageURL
	if upload != nil {
		stored, err := s.SaveUpload(upload.Filename, upload.Content)
		if err != nil {
			return models.Product{}, fmt.Errorf("catalog: store upload: %w", err)
		}
		image = stored
	}

	product := models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Image:       image,
		Description: in.Description,
	}
	if err := s.repo.Create(&product); err != nil {
		return models.Product{}, err
	}

	metrics.ProductsCreated.Inc()
	s.invalidateListCache()
	return product, nil
}

// Delete removes a product row, then best-effort deletes any uploaded image
// file it pointed at. The row delete and the file delete are not atomic; a
// failed file delete is logged and swallowed, never surfaced.
func (s *CatalogService) Delete(id uint) error {
	product, err := s.repo.Find(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()
	s.invalidateListCache()

	if name, ok := s.uploadedFileName(product.Image); ok && s.disk != nil {
		if err := s.disk.Delete(path.Join(s.uploadsRoot, name)); err != nil {
			logger.Warn("catalog: orphaned upload not deleted", "product_id", id, "file", name, "error", err)
		}
	}

	return nil
}

// Upload is an in-flight uploaded image file.
type Upload struct {
	Filename string
	Content  io.Reader
}

// SaveUpload writes the image onto the disk under a collision-free name and
// returns the server-relative URL to store in the image column.
func (s *CatalogService) SaveUpload(filename string, r io.Reader) (string, error) {
	if s.disk == nil {
		return "", fmt.Errorf("catalog: no storage disk configured")
	}

	name := uniqueUploadName(filename)
	if err := s.disk.PutStream(path.Join(s.uploadsRoot, name), r); err != nil {
		return "", err
	}
	return s.uploadsPrefix + "/" + name, nil
}

// uploadedFileName reports whether image points into the uploads prefix and
// returns the bare file name when it does. External URLs return false.
func (s *CatalogService) uploadedFileName(image string) (string, bool) {
	rest, ok := strings.CutPrefix(image, s.uploadsPrefix+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

func (s *CatalogService) invalidateListCache() {
	if err := cache.Forget(productListCacheKey); err != nil {
		logger.Warn("catalog: cache invalidation failed", "error", err)
	}
}

// uniqueUploadName disambiguates stored filenames with a nanosecond
// timestamp plus a short random suffix, keeping the original extension.
func uniqueUploadName(original string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)

	ext := strings.ToLower(path.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(b), ext)
}
