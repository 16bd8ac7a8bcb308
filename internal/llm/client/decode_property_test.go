package client

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tasweeq/internal/models"
)

// TestDecodeOutputRoundTrip verifies decode(serialize(o)) == o for any valid output.
func TestDecodeOutputRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("valid outputs survive a serialize/decode round trip", prop.ForAll(
		func(desc, post, headline string, usp, tags []string) bool {
			want := models.GenerationOutput{
				ProductDescription: desc,
				SocialPost:         post + "\n" + desc,
				AdHeadline:         headline,
				USP:                usp,
				Hashtags:           tags,
			}
			raw, err := json.Marshal(want)
			if err != nil {
				return false
			}
			got, err := DecodeOutput(string(raw))
			if err != nil {
				return false
			}
			return reflect.DeepEqual(want, *got)
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
		gen.SliceOfN(3, gen.AlphaString()),
		gen.SliceOfN(7, gen.AlphaString()),
	))

	properties.Property("empty and nil sequences decode as empty", prop.ForAll(
		func(headline string, nilUSP, nilTags bool) bool {
			want := models.GenerationOutput{
				ProductDescription: headline,
				SocialPost:         headline,
				AdHeadline:         headline,
				USP:                []string{},
				Hashtags:           []string{},
			}
			if nilUSP {
				want.USP = nil
			}
			if nilTags {
				want.Hashtags = nil
			}
			raw, err := json.Marshal(want)
			if err != nil {
				return false
			}
			got, err := DecodeOutput(string(raw))
			if err != nil {
				return false
			}
			return got.AdHeadline == headline && len(got.USP) == 0 && len(got.Hashtags) == 0
		},
		gen.Identifier(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestDecodeOutputRejectsMissingField verifies dropping any required field is
// always reported as a malformed response.
func TestDecodeOutputRejectsMissingField(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	fields := models.OutputFields()

	properties.Property("payload missing a required field is malformed", prop.ForAll(
		func(desc string, idx int) bool {
			doc := map[string]any{
				models.FieldProductDescription: desc,
				models.FieldSocialPost:         desc,
				models.FieldAdHeadline:         desc,
				models.FieldUSP:                []string{desc},
				models.FieldHashtags:           []string{"#" + desc},
			}
			delete(doc, fields[idx])
			raw, err := json.Marshal(doc)
			if err != nil {
				return false
			}
			_, err = DecodeOutput(string(raw))
			return errors.Is(err, ErrMalformedResponse)
		},
		gen.Identifier(),
		gen.IntRange(0, len(fields)-1),
	))

	properties.Property("sequence fields holding non-strings are malformed", prop.ForAll(
		func(desc string, n int, onUSP bool) bool {
			doc := map[string]any{
				models.FieldProductDescription: desc,
				models.FieldSocialPost:         desc,
				models.FieldAdHeadline:         desc,
				models.FieldUSP:                []string{desc},
				models.FieldHashtags:           []string{desc},
			}
			if onUSP {
				doc[models.FieldUSP] = []int{n}
			} else {
				doc[models.FieldHashtags] = []int{n}
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				return false
			}
			_, err = DecodeOutput(string(raw))
			return errors.Is(err, ErrMalformedResponse)
		},
		gen.Identifier(),
		gen.Int(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
