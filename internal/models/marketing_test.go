package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrandTone(t *testing.T) {
	tone, err := ParseBrandTone("")
	require.NoError(t, err)
	assert.Nil(t, tone)

	tone, err = ParseBrandTone("  luxury ")
	require.NoError(t, err)
	require.NotNil(t, tone)
	assert.Equal(t, BrandToneLuxury, *tone)

	tone, err = ParseBrandTone("عائلي")
	require.NoError(t, err)
	require.NotNil(t, tone)
	assert.Equal(t, BrandToneFamily, *tone)

	_, err = ParseBrandTone("SARCASTIC")
	assert.EqualError(t, err, `unknown brand tone "SARCASTIC"`)
}

func TestBrandTones_OrderAndLabels(t *testing.T) {
	opts := BrandTones()
	require.Len(t, opts, 6)
	assert.Equal(t, BrandToneProfessional, opts[0].Code)
	assert.Equal(t, "احترافي", opts[0].Label)
	assert.Equal(t, BrandToneFamily, opts[5].Code)
	for _, o := range opts {
		assert.True(t, o.Code.Valid())
		assert.Equal(t, o.Label, o.Code.Label())
	}
}

func TestGenerationInput_Validate(t *testing.T) {
	assert.NoError(t, GenerationInput{Name: "سماعة", Category: "إلكترونيات", Price: "450"}.Validate())

	err := GenerationInput{Category: "x"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name", "price"}, verr.Fields)
	assert.Equal(t, "required fields are missing: name, price", err.Error())

	bad := BrandTone("LOUD")
	err = GenerationInput{Name: "a", Category: "b", Price: "1", BrandTone: &bad}.Validate()
	assert.EqualError(t, err, `unknown brand tone "LOUD"`)
}

func TestGenerationInput_OptionalFieldsDoNotAffectValidity(t *testing.T) {
	empty := ""
	tone := BrandTonePractical
	in := GenerationInput{Name: "a", Category: "b", Price: "1", Note: &empty, BrandTone: &tone}
	assert.NoError(t, in.Validate())
}

func TestGenerationOutput_CopyText(t *testing.T) {
	out := GenerationOutput{
		ProductDescription: "وصف",
		SocialPost:         "منشور",
		AdHeadline:         "عنوان",
		USP:                []string{"أ", "ب", "ج"},
		Hashtags:           []string{"#واحد", "#اثنان"},
	}

	cases := map[string]string{
		FieldProductDescription: "وصف",
		FieldSocialPost:         "منشور",
		FieldAdHeadline:         "عنوان",
		FieldUSP:                "أ\nب\nج",
		FieldHashtags:           "#واحد #اثنان",
	}
	for field, want := range cases {
		got, err := out.CopyText(field)
		require.NoError(t, err, field)
		assert.Equal(t, want, got, field)
	}

	_, err := out.CopyText("price")
	assert.Error(t, err)
}

func TestOutputFields_MatchJSONTags(t *testing.T) {
	assert.Equal(t, []string{"productDescription", "socialPost", "adHeadline", "usp", "hashtags"}, OutputFields())
}

func TestSessionStateConstructors(t *testing.T) {
	assert.Equal(t, StatusIdle, Idle().Status)

	l := Loading(3)
	assert.Equal(t, StatusLoading, l.Status)
	assert.Equal(t, uint64(3), l.Ticket)
	assert.Empty(t, l.Message)
	assert.Nil(t, l.Output)

	f := Failed(4, ErrorKindTimeout, "m")
	assert.Equal(t, StatusError, f.Status)
	assert.Equal(t, ErrorKindTimeout, f.ErrorKind)
	assert.Nil(t, f.Output)

	out := &GenerationOutput{AdHeadline: "h"}
	s := Succeeded(5, out)
	assert.Equal(t, StatusSuccess, s.Status)
	assert.Same(t, out, s.Output)
	assert.Empty(t, s.ErrorKind)
}

func TestGenerationOutput_MarshalWritesEmptySequences(t *testing.T) {
	raw, err := json.Marshal(GenerationOutput{AdHeadline: "h"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productDescription":"","socialPost":"","adHeadline":"h","usp":[],"hashtags":[]}`, string(raw))

	st := Succeeded(1, &GenerationOutput{USP: []string{"a"}})
	raw, err = json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"usp":["a"]`)
	assert.Contains(t, string(raw), `"hashtags":[]`)
}
