// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transform holds the field-value transforms referenced by entity
declarations in [github.com/catalogsync/sir/internal/schema].

Each function matches [schema.TransformFunc]'s signature (value any, branch
string) (any, error); branch is only meaningful for tagged-union fields
(Annotation/Targettype below) and is otherwise ignored.
*/
package transform

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Identity passes the value through unchanged. Declared explicitly (rather
// than leaving Transform nil) for fields where a reviewer should see the
// choice was deliberate.
func Identity(value any, _ string) (any, error) {
	return value, nil
}

// Boolean normalizes any truthy driver value (bool, int64, string) into a
// plain bool.
func Boolean(value any, _ string) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case string:
		return v == "t" || v == "true" || v == "1", nil
	case nil:
		return false, nil
	default:
		return nil, fmt.Errorf("transform: boolean: unsupported type %T", value)
	}
}

// FillNone substitutes an empty string for a nil value, matching fields the
// search core expects to always receive as a string.
func FillNone(value any, _ string) (any, error) {
	if value == nil {
		return "", nil
	}
	return value, nil
}

// Ended renders a partial-date "ended" flag pair into the source project's
// conventional string: "Yes" when the entity has ended, "No" otherwise.
func Ended(value any, _ string) (any, error) {
	b, err := Boolean(value, "")
	if err != nil {
		return nil, err
	}
	if b.(bool) {
		return "Yes", nil
	}
	return "No", nil
}

// IntegerSum reduces a slice of integers (e.g. per-medium track counts) to
// their total, used for computed fields like a release's overall track count.
func IntegerSum(value any, _ string) (any, error) {
	nums, ok := value.([]int)
	if !ok {
		return nil, fmt.Errorf("transform: integer_sum: unsupported type %T", value)
	}
	total := 0
	for _, n := range nums {
		total += n
	}
	return total, nil
}

// Qdur renders a millisecond duration as a quantized "mm:ss" string, the
// format historically used for recording/track length display.
func Qdur(value any, _ string) (any, error) {
	var ms int64
	switch v := value.(type) {
	case int64:
		ms = v
	case int:
		ms = int64(v)
	case nil:
		return "", nil
	default:
		return nil, fmt.Errorf("transform: qdur: unsupported type %T", value)
	}
	totalSeconds := ms / 1000
	return strconv.FormatInt(totalSeconds/60, 10) + ":" + fmt.Sprintf("%02d", totalSeconds%60), nil
}

// LatLong formats a coordinate pair stored as [2]float64 into "lat,long",
// the format place documents expect for geo fields.
func LatLong(value any, _ string) (any, error) {
	coords, ok := value.([2]float64)
	if !ok {
		return nil, fmt.Errorf("transform: lat_long: unsupported type %T", value)
	}
	return fmt.Sprintf("%f,%f", coords[0], coords[1]), nil
}

// AnnotationType is the tagged-union transform for the annotation core's
// "type" field: the value materialized through a per-entity annotation join
// is ignored, and the branch (the join's originating path segment, e.g.
// "artist_annotation") is rendered as the document's type tag.
func AnnotationType(_ any, branch string) (any, error) {
	return entityNameFromJoin(branch, "_annotation"), nil
}

// URLTargetType is the equivalent tagged-union transform for the url core's
// "targettype" field: the branch (e.g. "artist_urls") is rendered as the
// linked entity's name ("artist").
func URLTargetType(_ any, branch string) (any, error) {
	return entityNameFromJoin(branch, "_urls"), nil
}

// ASCIIFold strips diacritics from a name field (e.g. "Sólo" -> "Solo"),
// giving the search core a diacritic-insensitive fallback token alongside
// the original value.
func ASCIIFold(value any, _ string) (any, error) {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return "", nil
		}
		return nil, fmt.Errorf("transform: ascii_fold: unsupported type %T", value)
	}

	t := xtransform.Chain(norm.NFD, xtransform.RemoveFunc(isNonSpacingMark))
	folded, _, err := xtransform.String(t, s)
	if err != nil {
		return nil, fmt.Errorf("transform: ascii_fold: %w", err)
	}
	return strings.TrimSpace(folded), nil
}

func isNonSpacingMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func entityNameFromJoin(branch, suffix string) string {
	name := branch
	if len(name) > len("l_") && name[:2] == "l_" {
		name = name[2:]
	}
	if suffix != "" && len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		name = name[:len(name)-len(suffix)]
	}
	if len(name) > len("_url") && name[len(name)-len("_url"):] == "_url" {
		name = name[:len(name)-len("_url")]
	}
	return name
}
