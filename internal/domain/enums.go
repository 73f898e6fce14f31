package domain

import "strings"

// BillCategory selects the field schema used for prompting, extraction and storage.
type BillCategory string

const (
	BillCategoryElectricity BillCategory = "electricity"
	BillCategoryWater       BillCategory = "water"
)

// DefaultBillCategory is used when an upload does not name a category.
const DefaultBillCategory = BillCategoryElectricity

// AllBillCategories lists every supported category in display order.
var AllBillCategories = []BillCategory{BillCategoryElectricity, BillCategoryWater}

// ParseBillCategory maps a form value onto a BillCategory. An empty value
// yields DefaultBillCategory.
func ParseBillCategory(s string) (BillCategory, error) {
	switch BillCategory(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultBillCategory, nil
	case BillCategoryElectricity:
		return BillCategoryElectricity, nil
	case BillCategoryWater:
		return BillCategoryWater, nil
	default:
		return "", ErrUnsupportedCategory
	}
}

// TableName returns the relational table holding records of this category.
func (c BillCategory) TableName() string {
	return string(c) + "_bills"
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// ExtractionMethod records how the text of a single page was obtained.
type ExtractionMethod string

const (
	ExtractionMethodText ExtractionMethod = "text"
	ExtractionMethodOCR  ExtractionMethod = "ocr"
	ExtractionMethodNone ExtractionMethod = "none"
)
