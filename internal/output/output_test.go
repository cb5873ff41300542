// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/staranto/bblctl/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0, "team": "Bulls"},
		{"name": "alpha", "count": 10.0, "team": "celtics"},
		{"name": "Beta", "count": 2.0, "team": "Celtics"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name ignores case",
			spec:      "name",
			wantOrder: []string{"alpha", "Beta", "zebra"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"zebra", "Beta", "alpha"},
		},
		{
			name:      "ascending by count is numeric",
			spec:      "count",
			wantOrder: []string{"Beta", "zebra", "alpha"},
		},
		{
			name:      "descending by count",
			spec:      "-count",
			wantOrder: []string{"alpha", "zebra", "Beta"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"Beta", "alpha", "zebra"},
		},
		{
			name:      "multiple fields",
			spec:      "team,-count",
			wantOrder: []string{"zebra", "alpha", "Beta"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"zebra", "alpha", "Beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_MissingLast(t *testing.T) {
	for _, spec := range []string{"gb", "-gb"} {
		data := []map[string]interface{}{
			{"name": "a", "gb": nil},
			{"name": "b", "gb": 1.5},
			{"name": "c", "gb": 0.5},
		}
		SortDataset(data, spec)
		assert.Equal(t, "a", data[2]["name"], spec)
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "integral float64", value: 42.0, want: "42"},
		{name: "float64 with decimal", value: 42.5, want: "42.5"},
		{name: "float64 rounds to three places", value: 0.66666, want: "0.667"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "string list", value: []interface{}{"W", "L"}, want: "W L"},
		{name: "mixed list", value: []interface{}{"W", 1.0}, want: `["W",1]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value int", value: 0, want: ""},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

const standingsJSON = `[
	{"pos": 2, "name": "Celtics", "w": 8, "l": 4, "pct": 0.6667, "streak": "W2"},
	{"pos": 1, "name": "Lakers", "w": 10, "l": 2, "pct": 0.8333, "streak": "W5"},
	{"pos": 3, "name": "Bulls", "w": 2, "l": 10, "pct": 0.1667, "streak": "L4"}
]`

func spitAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var list attrs.AttrList
	require.NoError(t, list.Set(spec))
	require.NoError(t, list.SetGlobalTransformSpec())
	return list
}

func TestSpit_JSON(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(standingsJSON)

	var out bytes.Buffer
	err := Spit(raw, spitAttrs(t, "pos,name:team,!w,pct::p"), Options{Output: "json", Sort: "pos", Filter: "w>5"}, "", &out)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Lakers", got[0]["team"])
	assert.Equal(t, "83.3%", got[0]["pct"])
	assert.NotContains(t, got[0], "w")
	assert.Equal(t, "Celtics", got[1]["team"])
}

func TestSpit_JSONEmpty(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(standingsJSON)

	var out bytes.Buffer
	require.NoError(t, Spit(raw, spitAttrs(t, "name"), Options{Output: "json", Filter: "name=Knicks"}, "", &out))
	assert.Equal(t, "[]\n", out.String())
}

func TestSpit_YAML(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(`{"rows": ` + standingsJSON + `}`)

	var out bytes.Buffer
	require.NoError(t, Spit(raw, spitAttrs(t, "name,streak::l"), Options{Output: "yaml", Sort: "-name"}, "rows", &out))

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, map[string]string{"name": "Lakers", "streak": "w5"}, got[0])
}

func TestSpit_Raw(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(standingsJSON)

	var out bytes.Buffer
	require.NoError(t, Spit(raw, nil, Options{Output: "raw"}, "", &out))
	assert.Equal(t, standingsJSON, out.String())
}

func TestSpit_Text(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(standingsJSON)

	var out bytes.Buffer
	require.NoError(t, Spit(raw, spitAttrs(t, "pos,name,streak"), Options{Output: "text", Sort: "pos", Titles: true}, "", &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, out.String(), "Lakers")
	assert.Less(t, strings.Index(out.String(), "Lakers"), strings.Index(out.String(), "Bulls"))
}

func TestSpit_TextEmpty(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString(`[]`)

	var out bytes.Buffer
	require.NoError(t, Spit(raw, spitAttrs(t, "name"), Options{Output: "text"}, "", &out))
	assert.Empty(t, out.String())
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		kind string
		want Tag
	}{
		{name: "simple", s: "name", kind: "string", want: Tag{Name: "name", Kind: "string"}},
		{name: "with holder", h: "team", s: "name", kind: "string", want: Tag{Name: "team.name", Kind: "string"}},
		{name: "with options", s: "gb,omitempty", kind: "number", want: Tag{Name: "gb", Kind: "number"}},
		{name: "ignored", s: "-", want: Tag{}},
		{name: "empty string", s: "", want: Tag{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTag(tt.h, tt.s, tt.kind))
		})
	}
}

func TestTag_Print(t *testing.T) {
	assert.Equal(t, "name", Tag{Name: "name"}.Print())
	assert.Equal(t, "", Tag{}.Print())
	assert.True(t, strings.HasPrefix(Tag{Name: "pts", Kind: "number"}.Print(), "pts "))
}

func TestDumpSchemaWalker(t *testing.T) {
	type Inner struct {
		Name string `json:"name"`
		Deep struct {
			Deeper string `json:"deeper"`
		} `json:"deep"`
	}

	type Row struct {
		Pos     int      `json:"pos"`
		Team    *Inner   `json:"team"`
		Form    []string `json:"form"`
		private string   //nolint:unused
		Skip    string   `json:"-"`
		NoTag   string
	}

	got := DumpSchemaWalker("", reflect.TypeOf(Row{}), 0)

	names := make([]string, 0, len(got))
	for _, tag := range got {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"pos", "team", "team.name", "team.deep", "form"}, names)
}

func TestDumpSchemaWalker_Embedded(t *testing.T) {
	type Base struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	}
	type Row struct {
		Table string `json:"table"`
		Base
		Pct string `json:"pct"`
	}

	got := DumpSchemaWalker("", reflect.TypeOf(Row{}), 0)

	names := make([]string, 0, len(got))
	for _, tag := range got {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"table", "wins", "losses", "pct"}, names)
}

func TestDumpSchema(t *testing.T) {
	type Row struct {
		Pos  int    `json:"pos"`
		Name string `json:"name"`
	}

	var out bytes.Buffer
	DumpSchema(&out, reflect.TypeOf(Row{}))
	assert.Contains(t, out.String(), "Schema for Row")
	assert.Less(t, strings.Index(out.String(), "name"), strings.Index(out.String(), "pos"))
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotEmpty(t, header)
	assert.NotEmpty(t, even)
	assert.NotEmpty(t, odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0},
		{"name": "alpha", "count": 1.0},
		{"name": "beta", "count": 2.0},
	}

	spec := "name"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{
		"string",
		42,
		42.5,
		true,
		nil,
		[]string{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InterfaceToString(v)
		}
	}
}
