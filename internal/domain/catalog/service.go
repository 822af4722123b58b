package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogadmin/internal/media"
	"catalogadmin/internal/recordstore"

	"go.uber.org/zap"
)

var (
	ErrDuplicate        = recordstore.ErrDuplicate
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Store groups the three catalog collections.
type Store struct {
	Categories    recordstore.Collection[Category]
	Subcategories recordstore.Collection[Subcategory]
	Products      recordstore.Collection[Product]
}

// Images is the product image lifecycle, implemented by *media.Manager.
type Images interface {
	Store(ctx context.Context, up *media.Upload) (media.Image, error)
	Discard(ctx context.Context, img media.Image) media.Outcome
}

// Service implements the catalog resource operations. Every method returns
// the response envelope; a non-nil error says why the envelope failed.
type Service struct {
	store  Store
	images Images
	logger *zap.SugaredLogger
}

func NewService(store Store, images Images, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{store: store, images: images, logger: logger}
}

// ---------- Categories ----------

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (recordstore.Envelope, error) {
	c := Category{
		Name:   strings.TrimSpace(in.Name),
		Status: statusOrDefault(in.Status),
	}
	return recordstore.Create(ctx, s.store.Categories, c, "Category Added")
}

func (s *Service) ListCategories(ctx context.Context) (recordstore.Envelope, error) {
	env, _, err := recordstore.List(ctx, s.store.Categories, nil)
	return env, err
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (recordstore.Envelope, error) {
	return recordstore.Update(ctx, s.store.Categories, id, in.fields(), "Category Updated")
}

// DeleteCategory does not cascade; subcategories and products keep the
// dangling category_id.
func (s *Service) DeleteCategory(ctx context.Context, id string) (recordstore.Envelope, error) {
	return recordstore.Remove(ctx, s.store.Categories, id, "Category Deleted")
}

// ---------- Subcategories ----------

func (s *Service) CreateSubcategory(ctx context.Context, in SubcategoryInput) (recordstore.Envelope, error) {
	sub := Subcategory{
		CategoryID: strings.TrimSpace(in.CategoryID),
		SubName:    strings.TrimSpace(in.SubName),
		Status:     statusOrDefault(in.Status),
	}

	if env, err := s.requireCategory(ctx, sub.CategoryID); err != nil {
		return env, err
	}
	if env, err := s.requireUniqueSubcategory(ctx, sub.CategoryID, sub.SubName, ""); err != nil {
		return env, err
	}

	return recordstore.Create(ctx, s.store.Subcategories, sub, "SubCategory Added")
}

func (s *Service) ListSubcategories(ctx context.Context) (recordstore.Envelope, error) {
	return s.listSubcategories(ctx, nil)
}

// ListSubcategoriesByCategory always answers with a list and its count, empty
// when nothing matches.
func (s *Service) ListSubcategoriesByCategory(ctx context.Context, categoryID string) (recordstore.Envelope, error) {
	env, err := s.listSubcategories(ctx, recordstore.Filter{"category_id": categoryID})
	if err != nil {
		return env, err
	}
	n := 0
	if views, ok := env.Records.([]SubcategoryView); ok {
		n = len(views)
	}
	env.Count = &n
	return env, nil
}

func (s *Service) UpdateSubcategory(ctx context.Context, id string, in SubcategoryInput) (recordstore.Envelope, error) {
	fields := in.fields()
	categoryID := fields["category_id"].(string)
	subName := fields["sub_name"].(string)

	if _, err := s.store.Subcategories.FindByID(ctx, id); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return recordstore.NotFound, err
		}
		return recordstore.Fail("Failed to update subcategory"), fmt.Errorf("load subcategory %s: %w", id, err)
	}
	if env, err := s.requireCategory(ctx, categoryID); err != nil {
		return env, err
	}
	if env, err := s.requireUniqueSubcategory(ctx, categoryID, subName, id); err != nil {
		return env, err
	}

	return recordstore.Update(ctx, s.store.Subcategories, id, fields, "Subcategory Updated")
}

func (s *Service) DeleteSubcategory(ctx context.Context, id string) (recordstore.Envelope, error) {
	return recordstore.Remove(ctx, s.store.Subcategories, id, "Subcategory Deleted")
}

func (s *Service) listSubcategories(ctx context.Context, filter recordstore.Filter) (recordstore.Envelope, error) {
	env, subs, err := recordstore.List(ctx, s.store.Subcategories, filter)
	if err != nil {
		return env, err
	}

	categories, err := recordstore.Join(ctx, s.store.Categories, subs, func(sc Subcategory) string { return sc.CategoryID })
	if err != nil {
		return recordstore.Fail("Failed to fetch subcategories"), err
	}

	views := make([]SubcategoryView, 0, len(subs))
	for _, sc := range subs {
		views = append(views, SubcategoryView{
			Subcategory: sc,
			Category:    categorySummary(categories, sc.CategoryID),
		})
	}
	env.Records = views
	return env, nil
}

// ---------- Products ----------

// CreateProduct validates references before touching the image so a rejected
// request never leaves an upload behind. up may be nil.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput, up *media.Upload) (recordstore.Envelope, error) {
	p := Product{
		CategoryID:    strings.TrimSpace(in.CategoryID),
		SubcategoryID: strings.TrimSpace(in.SubcategoryID),
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price,
		Description:   trimmed(in.Description),
		Status:        statusOrDefault(in.Status),
	}

	if env, err := s.requireProductRefs(ctx, p.CategoryID, p.SubcategoryID); err != nil {
		return env, err
	}

	var img media.Image
	if up != nil {
		stored, err := s.images.Store(ctx, up)
		if err != nil {
			return recordstore.Fail("Image upload failed"), err
		}
		img = stored
		p.LocalImagePath, p.HostedImageURL, p.HostedImageKey = img.LocalPath, img.URL, img.Key
	}

	env, err := recordstore.Create(ctx, s.store.Products, p, "Product Added")
	if err != nil && !img.IsZero() {
		outcome := s.images.Discard(ctx, img)
		s.logger.Warnw("discarded image of unsaved product", "key", img.Key, "path", img.LocalPath, "outcome", outcome.String())
	}
	return env, err
}

func (s *Service) ListProducts(ctx context.Context) (recordstore.Envelope, error) {
	env, products, err := recordstore.List(ctx, s.store.Products, nil)
	if err != nil {
		return env, err
	}

	categories, err := recordstore.Join(ctx, s.store.Categories, products, func(p Product) string { return p.CategoryID })
	if err != nil {
		return recordstore.Fail("Failed to fetch products"), err
	}
	subcategories, err := recordstore.Join(ctx, s.store.Subcategories, products, func(p Product) string { return p.SubcategoryID })
	if err != nil {
		return recordstore.Fail("Failed to fetch products"), err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		v := ProductView{
			Product:  p,
			Category: categorySummary(categories, p.CategoryID),
		}
		if sc, ok := subcategories[p.SubcategoryID]; ok {
			v.Subcategory = &SubcategorySummary{ID: sc.ID, SubName: sc.SubName}
		}
		views = append(views, v)
	}
	env.Records = views
	return env, nil
}

// UpdateProduct replaces the image when up is non-nil: the new file is stored,
// then the previous authoritative image is discarded, then the record is
// written. Without a file the stored references are left untouched.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput, up *media.Upload) (recordstore.Envelope, error) {
	existing, err := s.store.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return recordstore.NotFound, err
		}
		return recordstore.Fail("Failed to update product"), fmt.Errorf("load product %s: %w", id, err)
	}

	fields := in.fields()
	if env, err := s.requireProductRefs(ctx, fields["category_id"].(string), fields["subcategory_id"].(string)); err != nil {
		return env, err
	}

	var img media.Image
	if up != nil {
		stored, err := s.images.Store(ctx, up)
		if err != nil {
			return recordstore.Fail("Image upload failed"), err
		}
		img = stored

		outcome := s.images.Discard(ctx, existing.Image())
		s.logger.Debugw("previous product image discarded", "product_id", id, "outcome", outcome.String())

		for k, v := range imageFields(img) {
			fields[k] = v
		}
	}

	env, err := recordstore.Update(ctx, s.store.Products, id, fields, "Product Updated Successfully")
	if err != nil && !img.IsZero() {
		outcome := s.images.Discard(ctx, img)
		s.logger.Warnw("discarded image of failed product update", "product_id", id, "outcome", outcome.String())
	}
	return env, err
}

// DeleteProduct removes the record whatever happens to its image.
func (s *Service) DeleteProduct(ctx context.Context, id string) (recordstore.Envelope, error) {
	existing, err := s.store.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return recordstore.NotFound, err
		}
		return recordstore.Fail("Failed to delete product"), fmt.Errorf("load product %s: %w", id, err)
	}

	outcome := s.images.Discard(ctx, existing.Image())
	s.logger.Debugw("product image discarded", "product_id", id, "outcome", outcome.String())

	return recordstore.Remove(ctx, s.store.Products, id, "Product Deleted Successfully")
}

// ---------- Dashboard ----------

func (s *Service) Overview(ctx context.Context) (recordstore.Envelope, error) {
	var (
		o      Overview
		err    error
		active = recordstore.Filter{"status": true}
	)

	if o.Categories, err = s.store.Categories.Count(ctx, nil); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count categories: %w", err)
	}
	if o.ActiveCategories, err = s.store.Categories.Count(ctx, active); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count active categories: %w", err)
	}
	if o.Subcategories, err = s.store.Subcategories.Count(ctx, nil); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count subcategories: %w", err)
	}
	if o.ActiveSubcategories, err = s.store.Subcategories.Count(ctx, active); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count active subcategories: %w", err)
	}
	if o.Products, err = s.store.Products.Count(ctx, nil); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count products: %w", err)
	}
	if o.ActiveProducts, err = s.store.Products.Count(ctx, active); err != nil {
		return recordstore.Fail("Failed to load dashboard"), fmt.Errorf("count active products: %w", err)
	}

	return recordstore.Envelope{Success: true, Record: o}, nil
}

// ---------- helpers ----------

func (s *Service) requireCategory(ctx context.Context, categoryID string) (recordstore.Envelope, error) {
	if _, err := s.store.Categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return recordstore.Fail("Category Not Found"), fmt.Errorf("%w: category %s", ErrInvalidReference, categoryID)
		}
		return recordstore.Fail("Failed to load category"), fmt.Errorf("load category %s: %w", categoryID, err)
	}
	return recordstore.Envelope{}, nil
}

func (s *Service) requireUniqueSubcategory(ctx context.Context, categoryID, subName, exceptID string) (recordstore.Envelope, error) {
	matches, err := s.store.Subcategories.Find(ctx, recordstore.Filter{
		"category_id": categoryID,
		"sub_name":    subName,
	})
	if err != nil {
		return recordstore.Fail("Failed to check subcategory"), fmt.Errorf("find subcategory %s/%s: %w", categoryID, subName, err)
	}
	for _, m := range matches {
		if m.ID != exceptID {
			return recordstore.Fail("subcategory already exist"), fmt.Errorf("%w: subcategory %q in category %s", ErrDuplicate, subName, categoryID)
		}
	}
	return recordstore.Envelope{}, nil
}

func (s *Service) requireProductRefs(ctx context.Context, categoryID, subcategoryID string) (recordstore.Envelope, error) {
	if env, err := s.requireCategory(ctx, categoryID); err != nil {
		return env, err
	}

	sub, err := s.store.Subcategories.FindByID(ctx, subcategoryID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return recordstore.Fail("Subcategory Not Found"), fmt.Errorf("%w: subcategory %s", ErrInvalidReference, subcategoryID)
		}
		return recordstore.Fail("Failed to load subcategory"), fmt.Errorf("load subcategory %s: %w", subcategoryID, err)
	}
	if sub.CategoryID != categoryID {
		return recordstore.Fail("Subcategory does not belong to category"),
			fmt.Errorf("%w: subcategory %s is not in category %s", ErrInvalidReference, subcategoryID, categoryID)
	}
	return recordstore.Envelope{}, nil
}

func categorySummary(categories map[string]Category, id string) *CategorySummary {
	c, ok := categories[id]
	if !ok {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name, Status: c.Status}
}
