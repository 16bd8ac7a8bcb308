package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BrandTone is the optional voice the merchant wants the copy written in.
type BrandTone string

const (
	BrandToneProfessional BrandTone = "PROFESSIONAL"
	BrandToneLuxury       BrandTone = "LUXURY"
	BrandToneFun          BrandTone = "FUN"
	BrandToneYouthful     BrandTone = "YOUTHFUL"
	BrandTonePractical    BrandTone = "PRACTICAL"
	BrandToneFamily       BrandTone = "FAMILY"
)

var brandToneOrder = []BrandTone{
	BrandToneProfessional,
	BrandToneLuxury,
	BrandToneFun,
	BrandToneYouthful,
	BrandTonePractical,
	BrandToneFamily,
}

var brandToneLabels = map[BrandTone]string{
	BrandToneProfessional: "احترافي",
	BrandToneLuxury:       "فاخر",
	BrandToneFun:          "مرِح",
	BrandToneYouthful:     "شبابي",
	BrandTonePractical:    "عملي",
	BrandToneFamily:       "عائلي",
}

// BrandToneOption is a tone as shown in the form's select box.
type BrandToneOption struct {
	Code  BrandTone `json:"code"`
	Label string    `json:"label"`
}

// BrandTones returns every tone in display order.
func BrandTones() []BrandToneOption {
	out := make([]BrandToneOption, 0, len(brandToneOrder))
	for _, t := range brandToneOrder {
		out = append(out, BrandToneOption{Code: t, Label: brandToneLabels[t]})
	}
	return out
}

// Label returns the Arabic wording used in prompts.
func (t BrandTone) Label() string {
	return brandToneLabels[t]
}

func (t BrandTone) Valid() bool {
	_, ok := brandToneLabels[t]
	return ok
}

// ParseBrandTone accepts either the stable code or the Arabic label.
// An empty value means the merchant skipped the field and yields nil.
func ParseBrandTone(raw string) (*BrandTone, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	code := BrandTone(strings.ToUpper(v))
	if code.Valid() {
		return &code, nil
	}
	for tone, label := range brandToneLabels {
		if label == v {
			t := tone
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown brand tone %q", raw)
}

// GenerationInput is the product form as submitted by the merchant.
// Note and BrandTone are nil when the field was skipped.
type GenerationInput struct {
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Price     string     `json:"price"`
	Note      *string    `json:"note,omitempty"`
	BrandTone *BrandTone `json:"brandTone,omitempty"`
}

// ValidationError lists the required form fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields are missing: " + strings.Join(e.Fields, ", ")
}

// Validate checks the required fields. It never touches the optional ones
// except to reject a tone outside the known set.
func (in GenerationInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.Price) == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if in.BrandTone != nil && !in.BrandTone.Valid() {
		return fmt.Errorf("unknown brand tone %q", string(*in.BrandTone))
	}
	return nil
}

// GenerationOutput is the marketing copy returned by the model.
type GenerationOutput struct {
	ProductDescription string   `json:"productDescription"`
	SocialPost         string   `json:"socialPost"`
	AdHeadline         string   `json:"adHeadline"`
	USP                []string `json:"usp"`
	Hashtags           []string `json:"hashtags"`
}

// MarshalJSON writes nil usp/hashtags as empty arrays so the payload always
// matches the output schema.
func (o GenerationOutput) MarshalJSON() ([]byte, error) {
	type plain GenerationOutput
	p := plain(o)
	if p.USP == nil {
		p.USP = []string{}
	}
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	return json.Marshal(p)
}

// Output field names, shared with the response schema.
const (
	FieldProductDescription = "productDescription"
	FieldSocialPost         = "socialPost"
	FieldAdHeadline         = "adHeadline"
	FieldUSP                = "usp"
	FieldHashtags           = "hashtags"
)

// OutputFields lists the required output fields in schema order.
func OutputFields() []string {
	return []string{FieldProductDescription, FieldSocialPost, FieldAdHeadline, FieldUSP, FieldHashtags}
}

// CopyText returns the text placed on the clipboard for one output card.
func (o GenerationOutput) CopyText(field string) (string, error) {
	switch field {
	case FieldProductDescription:
		return o.ProductDescription, nil
	case FieldSocialPost:
		return o.SocialPost, nil
	case FieldAdHeadline:
		return o.AdHeadline, nil
	case FieldUSP:
		return strings.Join(o.USP, "\n"), nil
	case FieldHashtags:
		return strings.Join(o.Hashtags, " "), nil
	default:
		return "", fmt.Errorf("unknown output field %q", field)
	}
}
