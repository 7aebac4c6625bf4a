package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSlug(t *testing.T) {
	valid := []string{"shoes", "summer-sale", "a1-b2-c3", "x"}
	for _, s := range valid {
		assert.True(t, IsSlug(s), s)
	}

	invalid := []string{"", "Shoes", "summer sale", "-leading", "trailing-", "double--hyphen", "ümlaut"}
	for _, s := range invalid {
		assert.False(t, IsSlug(s), s)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Summer Sale":       "summer-sale",
		"  Corner Store  ":  "corner-store",
		"Déjà Vu!":          "d-j-vu",
		"already-canonical": "already-canonical",
		"Multiple   Spaces": "multiple-spaces",
	}
	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got)
		assert.True(t, got == "" || IsSlug(got), "slugify output is always canonical")
	}
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	type payload struct {
		ShopID string `json:"shopId" validate:"required"`
		Slug   string `json:"slug" validate:"required,slug"`
	}

	v := New()
	err := v.Struct(payload{Slug: "Not Canonical"})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "shopId", fields[0].Field, "wire names, not Go names")
	assert.Equal(t, "required", fields[0].Rule)
	assert.Equal(t, "slug", fields[1].Field)
	assert.Equal(t, "slug", fields[1].Rule)
}
