// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/staranto/bblctl/internal/format"
)

// Attr represents each of the keys to be included in the output. Key is a
// gjson path into a single result row.
type Attr struct {
	// The JSON key to extract from each row.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output. This will also be used as the column title
	// when output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

var (
	lengthRe = regexp.MustCompile(`-?\d+`)
	fixedRe  = regexp.MustCompile(`[fF](\d+)`)
)

// Transform applies the attr's TransformSpec to value.
//
// String values accept d (date), t (date and time), l/u (case) and a length,
// negative to elide the middle. Numeric values accept p (percentage of a
// ratio), c (thousands separators) and fN (N fixed decimals).
func (a *Attr) Transform(value interface{}) interface{} {
	if f, ok := value.(float64); ok {
		return a.transformNumber(f)
	}

	result, ok := value.(string)
	if !ok {
		return value
	}

	// Dates from the API are local times without a zone. t wins over d when
	// both appear.
	switch {
	case strings.ContainsAny(a.TransformSpec, "tT"):
		result = format.DateTime(result)
	case strings.ContainsAny(a.TransformSpec, "dD"):
		result = format.Date(result)
	}

	// We need to know which case transformation appears last. This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and, thus, allows the attr's to carry more weight.
	// IOW...  --attrs '*::U,name::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Is it a length-based transformation?
	if a.TransformSpec != "" {
		// Same logic as above re: case. This allows a more specific length
		// transformation to override a global one.
		match := lengthRe.FindAllString(fixedRe.ReplaceAllString(a.TransformSpec, ""), -1)
		if len(match) != 0 {
			// Take the last (overriding) match.
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			if len(result) > abs {
				if l < 0 {
					lr := abs/2 - 1
					if lr < 1 {
						lr = 1
					}
					left := result[0:lr]
					right := result[len(result)-lr:]
					result = left + ".." + right
				} else {
					result = result[:l]
				}
			}
		}
	}

	return result
}

func (a *Attr) transformNumber(f float64) interface{} {
	lastP := strings.LastIndexAny(a.TransformSpec, "pP")
	lastC := strings.LastIndexAny(a.TransformSpec, "cC")
	lastF, decimals := -1, 0
	if m := fixedRe.FindAllStringSubmatchIndex(a.TransformSpec, -1); len(m) != 0 {
		last := m[len(m)-1]
		lastF = last[0]
		decimals, _ = strconv.Atoi(a.TransformSpec[last[2]:last[3]])
	}

	switch {
	case lastP > lastC && lastP > lastF:
		return format.Percentage(f, true, 1)
	case lastC > lastP && lastC > lastF:
		return format.WithCommas(int64(f))
	case lastF >= 0:
		return format.Number(f, decimals)
	default:
		return f
	}
}

type AttrList []Attr

// Return a string representation of the AttrList. This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the key to
	// extract from the JSON object. The second is the key to use in the output.
	// The third is the transformation spec to apply to the output value. The
	// latter two are optional. The output key will default to the last
	// section of the JSON key.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		// The first field is the key to extract from the JSON payload. If it
		// begins with a !, it is excluded from the output.
		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}

		// A leading . is accepted for the row root and means the same thing.
		attr.Key = strings.TrimPrefix(attr.Key, ".")
		if attr.Key == "" {
			return fmt.Errorf("empty attribute key in %q", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		// Fixup the output field. If there is only one field it is considered the
		// JSON extract key and the output key will become the last segment of the
		// . notation.
		if len(fields) == 1 {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		} else {
			if fields[outputIdx] != "" {
				attr.OutputKey = strings.TrimSpace(fields[outputIdx])
			} else {
				attr.OutputKey = attr.Key
			}
		}

		attr.TransformSpec = ""
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// for cmd or the user double-entered it) just apply the OutputKey, Include
		// and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec. If there is more than one, we're not
	// dealing with it and just taking the first.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	// Return early if there is no global transform spec.
	if spec == "" {
		return nil
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

// Included returns the output keys of the attrs that are displayed.
func (a AttrList) Included() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			keys = append(keys, attr.OutputKey)
		}
	}
	return keys
}
