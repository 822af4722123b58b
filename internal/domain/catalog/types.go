package catalog

import (
	"strings"

	"catalogadmin/internal/media"
	"catalogadmin/internal/recordstore"
)

const (
	CategoriesCollection    = "categories"
	SubcategoriesCollection = "subcategories"
	ProductsCollection      = "products"
)

type Category struct {
	recordstore.Meta `bson:",inline"`
	Name             string `json:"name" bson:"name"`
	Status           bool   `json:"status" bson:"status"`
}

type Subcategory struct {
	recordstore.Meta `bson:",inline"`
	CategoryID       string `json:"category_id" bson:"category_id"`
	SubName          string `json:"sub_name" bson:"sub_name"`
	Status           bool   `json:"status" bson:"status"`
}

// Product keeps up to two image references: p_image for the local fallback
// and image/imagePublicId for the hosted copy, which wins when present.
type Product struct {
	recordstore.Meta `bson:",inline"`
	CategoryID       string  `json:"category_id" bson:"category_id"`
	SubcategoryID    string  `json:"subcategory_id" bson:"subcategory_id"`
	Name             string  `json:"p_name" bson:"p_name"`
	Price            float64 `json:"p_price" bson:"p_price"`
	Description      string  `json:"p_description,omitempty" bson:"p_description,omitempty"`
	Status           bool    `json:"status" bson:"status"`
	LocalImagePath   string  `json:"p_image,omitempty" bson:"p_image,omitempty"`
	HostedImageURL   string  `json:"image,omitempty" bson:"image,omitempty"`
	HostedImageKey   string  `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
}

func (p Product) Image() media.Image {
	return media.Image{
		LocalPath: p.LocalImagePath,
		URL:       p.HostedImageURL,
		Key:       p.HostedImageKey,
	}
}

// imageFields records img on a product and clears the other kind of
// reference, so a stored product never points at two images.
func imageFields(img media.Image) recordstore.Fields {
	return recordstore.Fields{
		"p_image":       img.LocalPath,
		"image":         img.URL,
		"imagePublicId": img.Key,
	}
}

type CategorySummary struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

type SubcategorySummary struct {
	ID      string `json:"_id"`
	SubName string `json:"sub_name"`
}

type SubcategoryView struct {
	Subcategory
	Category *CategorySummary `json:"category"`
}

type ProductView struct {
	Product
	Category    *CategorySummary    `json:"category"`
	Subcategory *SubcategorySummary `json:"subcategory"`
}

// Overview backs the admin dashboard cards.
type Overview struct {
	Categories          int64 `json:"categories"`
	ActiveCategories    int64 `json:"active_categories"`
	Subcategories       int64 `json:"subcategories"`
	ActiveSubcategories int64 `json:"active_subcategories"`
	Products            int64 `json:"products"`
	ActiveProducts      int64 `json:"active_products"`
}

// Inputs carry optional fields as pointers. On update a nil field keeps
// the stored value; on create Status defaults to true.

type CategoryInput struct {
	Name   string `json:"name" validate:"required,notblank,max=100"`
	Status *bool  `json:"status"`
}

func (in CategoryInput) fields() recordstore.Fields {
	f := recordstore.Fields{"name": strings.TrimSpace(in.Name)}
	setStatus(f, in.Status)
	return f
}

type SubcategoryInput struct {
	CategoryID string `json:"category_id" validate:"required,notblank,max=64"`
	SubName    string `json:"sub_name" validate:"required,notblank,max=100"`
	Status     *bool  `json:"status"`
}

func (in SubcategoryInput) fields() recordstore.Fields {
	f := recordstore.Fields{
		"category_id": strings.TrimSpace(in.CategoryID),
		"sub_name":    strings.TrimSpace(in.SubName),
	}
	setStatus(f, in.Status)
	return f
}

type ProductInput struct {
	CategoryID    string  `json:"category_id" validate:"required,notblank,max=64"`
	SubcategoryID string  `json:"subcategory_id" validate:"required,notblank,max=64"`
	Name          string  `json:"p_name" validate:"required,notblank,max=200"`
	// the upper bound also rejects +Inf; NaN fails gt=0
	Price         float64 `json:"p_price" validate:"gt=0,lte=1000000000"`
	Description   *string `json:"p_description" validate:"omitempty,max=2000"`
	Status        *bool   `json:"status"`
}

func (in ProductInput) fields() recordstore.Fields {
	f := recordstore.Fields{
		"category_id":    strings.TrimSpace(in.CategoryID),
		"subcategory_id": strings.TrimSpace(in.SubcategoryID),
		"p_name":         strings.TrimSpace(in.Name),
		"p_price":        in.Price,
	}
	if in.Description != nil {
		f["p_description"] = strings.TrimSpace(*in.Description)
	}
	setStatus(f, in.Status)
	return f
}

func setStatus(f recordstore.Fields, s *bool) {
	if s != nil {
		f["status"] = *s
	}
}

func statusOrDefault(s *bool) bool {
	if s == nil {
		return true
	}
	return *s
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
