// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/staranto/bblctl/internal/attrs"
	"github.com/staranto/bblctl/internal/config"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "raw", "yaml"}

// Options are the output related flags of a command.
type Options struct {
	Output string
	Filter string
	Sort   string
	Titles bool
	Color  bool
}

// OptionsFromCommand reads the global output flags from cmd. Color defaults
// to on when stdout is a terminal and NO_COLOR is unset.
func OptionsFromCommand(cmd *cli.Command) Options {
	color := cmd.Bool("color")
	if !cmd.IsSet("color") {
		_, noColor := os.LookupEnv("NO_COLOR")
		color = !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	}

	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  color,
	}
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a dataset according to command flags and attribute specifications.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	cmd *cli.Command,
	parent string,
	w io.Writer) error {
	return Spit(raw, attrs, OptionsFromCommand(cmd), parent, w)
}

// Spit is SliceDiceSpit with the flags already resolved. raw is a JSON array
// of rows, or a document holding one at parent.
func Spit(raw bytes.Buffer, attrs attrs.AttrList, opts Options, parent string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.ParseBytes(raw.Bytes())
	if parent != "" {
		fullDataset = fullDataset.Get(parent)
	}

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a smaller
	// dataset.
	filteredDataset := FilterDataset(fullDataset, attrs, opts.Filter)

	// Sort before transforming so numbers still compare as numbers.
	SortDataset(filteredDataset, opts.Sort)

	for _, row := range filteredDataset {
		for i := range attrs {
			attr := &attrs[i]
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	// Only the displayed attrs are emitted.
	keys := attrs.Included()
	for _, row := range filteredDataset {
		for k := range row {
			if !contains(keys, k) {
				delete(row, k)
			}
		}
	}

	switch opts.Output {
	case "json":
		if filteredDataset == nil {
			filteredDataset = []map[string]interface{}{}
		}
		enc := json.NewEncoder(w)
		if err := enc.Encode(filteredDataset); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(filteredDataset); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		TableWriter(filteredDataset, attrs, opts, w)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad, _ := config.GetInt("padding", 1)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(attrs.Included()...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// sortKey is one parsed entry of a --sort spec.
type sortKey struct {
	key           string
	desc          bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		k := sortKey{}
		for len(part) > 0 && (part[0] == '-' || part[0] == '!') {
			if part[0] == '-' {
				k.desc = true
			} else {
				k.caseSensitive = true
			}
			part = part[1:]
		}
		if part == "" {
			continue
		}
		k.key = part
		keys = append(keys, k)
	}
	return keys
}

// SortDataset sorts rows in place by spec, a comma separated list of output
// keys. A leading - sorts descending and a leading ! makes string comparison
// case sensitive. Numbers compare numerically and missing values sort last.
func SortDataset(data []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(data, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(data[i][k.key], data[j][k.key], k.caseSensitive)
			if c == 0 {
				continue
			}
			// Missing values stay last regardless of direction.
			if data[i][k.key] == nil || data[j][k.key] == nil {
				return c < 0
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		if value == math.Trunc(value) {
			return strconv.FormatFloat(value, 'f', 0, 64)
		}
		s := strconv.FormatFloat(value, 'f', 3, 64)
		return strings.TrimRight(strings.TrimRight(s, "0"), ".")
	case bool:
		return strconv.FormatBool(value)
	case []interface{}:
		// Short scalar lists such as form read better joined.
		parts := make([]string, 0, len(value))
		for _, v := range value {
			if _, ok := v.(string); !ok {
				return marshal(value)
			}
			parts = append(parts, v.(string))
		}
		return strings.Join(parts, " ")
	default:
		return marshal(value)
	}
}

func marshal(value interface{}) string {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(jsonBytes)
}

// Tag is one attribute discovered from a row type's json struct tags, used
// by --schema.
type Tag struct {
	Name string
	Kind string
}

// NewTag builds a Tag from a json struct tag value and an optional holder
// prefix used to build hierarchical attribute names. Fields tagged "-" yield
// the zero Tag.
func NewTag(h string, s string, kind string) Tag {
	name := strings.Split(s, ",")[0]
	if name == "" || name == "-" {
		return Tag{}
	}
	if h != "" {
		name = h + "." + name
	}
	return Tag{Name: name, Kind: kind}
}

// Print renders the tag into its display form.
func (t Tag) Print() string {
	if t.Kind == "" {
		return t.Name
	}
	return fmt.Sprintf("%-24s %s", t.Name, t.Kind)
}

const maxSchemaDepth = 1

// DumpSchema prints a sorted list of the attributes available to --attrs for
// rows of typ.
func DumpSchema(w io.Writer, typ reflect.Type) {
	tags := DumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}
}

// DumpSchemaWalker recursively walks a struct type collecting json tags.
// Nested structs are walked one level deep.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0)

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return tags
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		// Untagged embedded structs are flattened, as encoding/json does.
		if field.Anonymous && field.Tag.Get("json") == "" {
			tags = append(tags, DumpSchemaWalker(holder, field.Type, depth)...)
			continue
		}

		tagValue, ok := field.Tag.Lookup("json")
		if !ok || !field.IsExported() {
			continue
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		tag := NewTag(holder, tagValue, kindName(ft))
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag)

		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			tags = append(tags, DumpSchemaWalker(tag.Name, ft, depth+1)...)
		}
	}

	return tags
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Float64, reflect.Float32:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return t.Kind().String()
	}
}
