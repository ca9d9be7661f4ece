package domain

import (
	"encoding/json"
	"slices"
	"time"
)

type Product struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Author              string    `json:"author,omitempty"`
	Description         string    `json:"description"`
	PriceCents          int64     `json:"price_cents"`
	SalePriceCents      *int64    `json:"sale_price_cents"`
	DiscountPercent     *int      `json:"discount_percent"`
	Categories          []string  `json:"categories"`
	Tags                []string  `json:"tags"`
	CoverImageURL       *string   `json:"cover_image_url"`
	Images              []string  `json:"images"`
	DownloadableAssetID *string   `json:"downloadable_asset_id"`
	Inventory           *int      `json:"inventory"`
	Featured            bool      `json:"featured"`
	SEOTitle            *string   `json:"seo_title"`
	SEODescription      *string   `json:"seo_description"`
	Visible             bool      `json:"visible"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// EffectivePriceCents is the sale price when one is set and non-negative,
// otherwise the list price.
func (p Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil && *p.SalePriceCents >= 0 {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	c := p
	c.SalePriceCents = clonePtr(p.SalePriceCents)
	c.DiscountPercent = clonePtr(p.DiscountPercent)
	c.CoverImageURL = clonePtr(p.CoverImageURL)
	c.DownloadableAssetID = clonePtr(p.DownloadableAssetID)
	c.Inventory = clonePtr(p.Inventory)
	c.SEOTitle = clonePtr(p.SEOTitle)
	c.SEODescription = clonePtr(p.SEODescription)
	c.Categories = slices.Clone(p.Categories)
	c.Tags = slices.Clone(p.Tags)
	c.Images = slices.Clone(p.Images)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ProductInput is the admin payload for creating a product.
type ProductInput struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Author              string   `json:"author" validate:"max=200"`
	Description         string   `json:"description" validate:"max=10000"`
	PriceCents          *int64   `json:"price_cents" validate:"required,gte=0,lte=100000000000"`
	SalePriceCents      *int64   `json:"sale_price_cents" validate:"omitempty,gte=0,lte=100000000000"`
	DiscountPercent     *int     `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	Categories          []string `json:"categories" validate:"max=50,dive,max=100"`
	Tags                []string `json:"tags" validate:"max=50,dive,max=100"`
	CoverImageURL       *string  `json:"cover_image_url" validate:"omitempty,url"`
	Images              []string `json:"images" validate:"max=50,dive,url"`
	DownloadableAssetID *string  `json:"downloadable_asset_id" validate:"omitempty,max=200"`
	Inventory           *int     `json:"inventory" validate:"omitempty,gte=0"`
	Featured            bool     `json:"featured"`
	SEOTitle            *string  `json:"seo_title" validate:"omitempty,max=200"`
	SEODescription      *string  `json:"seo_description" validate:"omitempty,max=1000"`
	Visible             *bool    `json:"visible"`
}

// Product builds an unsaved product from the input. Visible defaults to true.
func (in ProductInput) Product() Product {
	p := Product{
		Name:                in.Name,
		Author:              in.Author,
		Description:         in.Description,
		SalePriceCents:      in.SalePriceCents,
		DiscountPercent:     in.DiscountPercent,
		Categories:          in.Categories,
		Tags:                in.Tags,
		CoverImageURL:       in.CoverImageURL,
		Images:              in.Images,
		DownloadableAssetID: in.DownloadableAssetID,
		Inventory:           in.Inventory,
		Featured:            in.Featured,
		SEOTitle:            in.SEOTitle,
		SEODescription:      in.SEODescription,
		Visible:             true,
	}
	if in.PriceCents != nil {
		p.PriceCents = *in.PriceCents
	}
	if in.Visible != nil {
		p.Visible = *in.Visible
	}
	return p.Clone()
}

// Input converts p back to its writable fields so a merged record can be
// checked with the same rules as a create.
func (p Product) Input() ProductInput {
	price := p.PriceCents
	visible := p.Visible
	return ProductInput{
		Name:                p.Name,
		Author:              p.Author,
		Description:         p.Description,
		PriceCents:          &price,
		SalePriceCents:      p.SalePriceCents,
		DiscountPercent:     p.DiscountPercent,
		Categories:          p.Categories,
		Tags:                p.Tags,
		CoverImageURL:       p.CoverImageURL,
		Images:              p.Images,
		DownloadableAssetID: p.DownloadableAssetID,
		Inventory:           p.Inventory,
		Featured:            p.Featured,
		SEOTitle:            p.SEOTitle,
		SEODescription:      p.SEODescription,
		Visible:             &visible,
	}
}

// Optional marks whether a JSON key was present. A present null leaves
// Value at its zero value with Set and Null true.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Null = false
	if string(b) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// ProductPatch carries a partial update. Only keys present in the request
// body are applied.
type ProductPatch struct {
	Name                Optional[string]   `json:"name"`
	Author              Optional[string]   `json:"author"`
	Description         Optional[string]   `json:"description"`
	PriceCents          Optional[int64]    `json:"price_cents"`
	SalePriceCents      Optional[*int64]   `json:"sale_price_cents"`
	DiscountPercent     Optional[*int]     `json:"discount_percent"`
	Categories          Optional[[]string] `json:"categories"`
	Tags                Optional[[]string] `json:"tags"`
	CoverImageURL       Optional[*string]  `json:"cover_image_url"`
	Images              Optional[[]string] `json:"images"`
	DownloadableAssetID Optional[*string]  `json:"downloadable_asset_id"`
	Inventory           Optional[*int]     `json:"inventory"`
	Featured            Optional[bool]     `json:"featured"`
	SEOTitle            Optional[*string]  `json:"seo_title"`
	SEODescription      Optional[*string]  `json:"seo_description"`
	Visible             Optional[bool]     `json:"visible"`
}

// Empty reports whether the patch carries no fields at all.
func (pp ProductPatch) Empty() bool {
	return !(pp.Name.Set || pp.Author.Set || pp.Description.Set || pp.PriceCents.Set ||
		pp.SalePriceCents.Set || pp.DiscountPercent.Set || pp.Categories.Set || pp.Tags.Set ||
		pp.CoverImageURL.Set || pp.Images.Set || pp.DownloadableAssetID.Set || pp.Inventory.Set ||
		pp.Featured.Set || pp.SEOTitle.Set || pp.SEODescription.Set || pp.Visible.Set)
}

// NullFields lists the keys sent as null that have no null state.
func (pp ProductPatch) NullFields() []string {
	var out []string
	if pp.Name.Null {
		out = append(out, "name")
	}
	if pp.PriceCents.Null {
		out = append(out, "price_cents")
	}
	if pp.Featured.Null {
		out = append(out, "featured")
	}
	if pp.Visible.Null {
		out = append(out, "visible")
	}
	return out
}

// ApplyTo merges the present fields onto a copy of p.
func (pp ProductPatch) ApplyTo(p Product) Product {
	out := p.Clone()
	set(&out.Name, pp.Name)
	set(&out.Author, pp.Author)
	set(&out.Description, pp.Description)
	set(&out.PriceCents, pp.PriceCents)
	set(&out.SalePriceCents, pp.SalePriceCents)
	set(&out.DiscountPercent, pp.DiscountPercent)
	set(&out.Categories, pp.Categories)
	set(&out.Tags, pp.Tags)
	set(&out.CoverImageURL, pp.CoverImageURL)
	set(&out.Images, pp.Images)
	set(&out.DownloadableAssetID, pp.DownloadableAssetID)
	set(&out.Inventory, pp.Inventory)
	set(&out.Featured, pp.Featured)
	set(&out.SEOTitle, pp.SEOTitle)
	set(&out.SEODescription, pp.SEODescription)
	set(&out.Visible, pp.Visible)
	return out.Clone()
}

func set[T any](dst *T, o Optional[T]) {
	if o.Set {
		*dst = o.Value
	}
}

type HistoryAction string

const (
	HistoryCreate HistoryAction = "create"
	HistoryUpdate HistoryAction = "update"
	HistoryDelete HistoryAction = "delete"
)

// HistoryEntry is one audit record for a product. Create entries carry Data,
// update entries Before and After, delete entries Before.
type HistoryEntry struct {
	Action HistoryAction `json:"action"`
	At     time.Time     `json:"at"`
	Data   *Product      `json:"data,omitempty"`
	Before *Product      `json:"before,omitempty"`
	After  *Product      `json:"after,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=1000"`
}

type OrderInput struct {
	Items []OrderItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type Order struct {
	ID             string      `json:"id"`
	Items          []OrderItem `json:"items"`
	TotalCents     int64       `json:"total_cents"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	DownloadTokens []string    `json:"download_tokens"`
}

type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

type PublicMessage struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
