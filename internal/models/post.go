package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryStrategy  Category = "Strategy"
	CategoryWebDesign Category = "Web Design"
	CategoryBranding  Category = "Branding"
	CategoryTech      Category = "Tech"
	CategoryMarketing Category = "Marketing"
)

var Categories = []Category{
	CategoryStrategy,
	CategoryWebDesign,
	CategoryBranding,
	CategoryTech,
	CategoryMarketing,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type PostType string

const (
	TypeHospitality  PostType = "Hospitality"
	TypeEducation    PostType = "Education"
	TypeLifestyle    PostType = "Lifestyle"
	TypeSports       PostType = "Sports"
	TypeArchitecture PostType = "Architecture"
)

var PostTypes = []PostType{
	TypeHospitality,
	TypeEducation,
	TypeLifestyle,
	TypeSports,
	TypeArchitecture,
}

func (t PostType) Valid() bool {
	for _, known := range PostTypes {
		if t == known {
			return true
		}
	}
	return false
}

type SectionKind string

const (
	SectionText        SectionKind = "text"
	SectionSingleImage SectionKind = "singleImage"
	SectionDoubleImage SectionKind = "doubleImage"
)

// Section is a tagged variant: Content is meaningful only for text sections,
// Images only for the image kinds.
type Section struct {
	Kind    SectionKind `bson:"type" json:"type"`
	Content string      `bson:"content,omitempty" json:"content,omitempty"`
	Images  []string    `bson:"images,omitempty" json:"images,omitempty"`
}

func TextSection(content string) Section {
	return Section{Kind: SectionText, Content: content}
}

func SingleImageSection(ref string) Section {
	return Section{Kind: SectionSingleImage, Images: []string{ref}}
}

func DoubleImageSection(first, second string) Section {
	return Section{Kind: SectionDoubleImage, Images: []string{first, second}}
}

func (s Section) Validate() error {
	switch s.Kind {
	case SectionText:
		if s.Content == "" {
			return ValidationError{Field: "sections.content", Reason: "text section requires content"}
		}
	case SectionSingleImage:
		if len(s.Images) != 1 {
			return ValidationError{Field: "sections.images", Reason: "singleImage section requires exactly one image"}
		}
	case SectionDoubleImage:
		if len(s.Images) < 1 || len(s.Images) > 2 {
			return ValidationError{Field: "sections.images", Reason: "doubleImage section requires one or two images"}
		}
	default:
		return ValidationError{Field: "sections.type", Reason: "unknown section type " + string(s.Kind)}
	}
	return nil
}

// Post is a single case-study article. Order is the persisted sort key across
// the whole collection; it is mutated only by the reorder operation.
type Post struct {
	MongoID         primitive.ObjectID `bson:"_id" json:"_id"`
	Slug            string             `bson:"slug" json:"slug"`
	Title           string             `bson:"title" json:"title"`
	Subtitle        string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	OverviewTitle   string             `bson:"overviewTitle,omitempty" json:"overviewTitle,omitempty"`
	OverviewContent string             `bson:"overviewContent,omitempty" json:"overviewContent,omitempty"`
	Category        Category           `bson:"category" json:"category"`
	Type            PostType           `bson:"type" json:"type"`
	Thumbnail       string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	HeroImage       string             `bson:"heroImage,omitempty" json:"heroImage,omitempty"`
	Sections        []Section          `bson:"sections" json:"sections"`
	Order           int                `bson:"order" json:"order"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PostDraft is the client-submitted shape of a new post. The id, sort key and
// timestamps are assigned by the service.
type PostDraft struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	OverviewTitle   string    `json:"overviewTitle"`
	OverviewContent string    `json:"overviewContent"`
	Category        Category  `json:"category"`
	Type            PostType  `json:"type"`
	Thumbnail       string    `json:"thumbnail"`
	HeroImage       string    `json:"heroImage"`
	Sections        []Section `json:"sections"`
}

// BlobRefs lists every upload referenced by the post.
func (p Post) BlobRefs() []string {
	refs := make([]string, 0, len(p.Sections)+2)
	if p.Thumbnail != "" {
		refs = append(refs, p.Thumbnail)
	}
	if p.HeroImage != "" {
		refs = append(refs, p.HeroImage)
	}
	for _, section := range p.Sections {
		refs = append(refs, section.Images...)
	}
	return refs
}
