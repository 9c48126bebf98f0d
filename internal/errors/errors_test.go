package errors_test

import (
	"errors"
	"fmt"
	"testing"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := rcerr.MissingReference("@items/weapons:axe", "")
	wrapped := rcerr.Wrap(base, "generating name")

	assert.True(t, rcerr.IsMissingReference(wrapped))
	assert.Equal(t, "@items/weapons:axe", rcerr.GetMeta(wrapped)[rcerr.MetaReference])
	assert.ErrorIs(t, wrapped, base)
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := rcerr.Wrap(errors.New("disk on fire"), "reading")

	assert.Equal(t, rcerr.CodeUnknown, wrapped.Code)
	assert.Equal(t, "reading: disk on fire", wrapped.Error())
	assert.Nil(t, rcerr.Wrap(nil, "nothing"))
}

func TestHas_WalksChain(t *testing.T) {
	err := rcerr.CatalogLoad("items/weapons", rcerr.NotFound("no such document"))

	assert.True(t, rcerr.IsCatalogLoad(err))
	assert.False(t, rcerr.IsNotFound(err))
	assert.True(t, rcerr.Has(err, rcerr.CodeNotFound))
	assert.True(t, rcerr.Has(fmt.Errorf("outer: %w", err), rcerr.CodeNotFound))
	assert.False(t, rcerr.Has(err, rcerr.CodeParse))
	assert.False(t, rcerr.Has(errors.New("plain"), rcerr.CodeNotFound))
}

func TestParseError_Meta(t *testing.T) {
	err := rcerr.ParseError("items/weapons:axe", 0, "i", "reference must start with '@'")

	assert.True(t, rcerr.IsParseError(err))
	meta := rcerr.GetMeta(err)
	assert.Equal(t, 0, meta[rcerr.MetaPosition])
	assert.Equal(t, "i", meta[rcerr.MetaSubstring])
	assert.Contains(t, err.Error(), "must start with '@'")
}

func TestMissingReference_Segment(t *testing.T) {
	err := rcerr.MissingReference("@abilities/active:fireball.cost", "cost")

	assert.Equal(t, "cost", rcerr.GetMeta(err)[rcerr.MetaSegment])
	assert.Contains(t, err.Error(), `no property "cost"`)
}
