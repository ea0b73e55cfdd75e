package optional

import (
	"encoding/json"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name  Field[string] `json:"name"`
	Price Field[int]    `json:"price"`
	Tag   Field[string] `json:"tag"`
}

func TestFieldDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"lamp","tag":null}`), &p))

	assert.True(t, p.Name.HasValue())
	assert.Equal(t, "lamp", p.Name.Value)

	assert.False(t, p.Price.Set)

	assert.True(t, p.Tag.Set)
	assert.True(t, p.Tag.Null)
	assert.False(t, p.Tag.HasValue())
}

func TestFieldRejectsWrongType(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"price":"ten"}`), &p)
	assert.Error(t, err)
}

func TestFormHelpers(t *testing.T) {
	form := url.Values{
		"name":  {" chair "},
		"empty": {""},
		"stock": {"12"},
		"bad":   {"x"},
		"urls":  {"/a.jpg", " ", "/b.jpg"},
	}

	assert.Equal(t, Of("chair"), FormString(form, "name"))
	assert.Equal(t, Null[string](), FormString(form, "empty"))
	assert.False(t, FormString(form, "missing").Set)

	stock, err := FormParse(form, "stock", strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 12, stock.Value)

	_, err = FormParse(form, "bad", ParseUint)
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad", fe.Key)

	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, FormStrings(form, "urls").Value)
}
