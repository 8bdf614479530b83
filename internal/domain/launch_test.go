package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunch_LinkName(t *testing.T) {
	tests := []struct {
		pageName string
		expected string
	}{
		{"Some.Page.Name", "Some"},
		{"Foo.Bar", "Foo"},
		{"Single", "Single"},
		{".Leading", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pageName, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSuite(tt.pageName).LinkName())
		})
	}
}

func TestSymLinkResult_Accepted(t *testing.T) {
	assert.True(t, SymLinkResult{StatusCode: 200}.Accepted())
	assert.True(t, SymLinkResult{StatusCode: 303}.Accepted())
	assert.False(t, SymLinkResult{StatusCode: 404}.Accepted())
	assert.False(t, SymLinkResult{StatusCode: 500}.Accepted())
}

func TestLaunch_JSON(t *testing.T) {
	data, err := json.Marshal(NewTest("Foo.Bar"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"test","page_name":"Foo.Bar"}`, string(data))
}
