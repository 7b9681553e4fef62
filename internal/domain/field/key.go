package field

import "strings"

// Key identifies a playing field as a park/field code pair.
type Key struct {
	ParkCode  string
	FieldCode string
}

// Normalized returns the canonical "{park}/{field}" textual form. The
// separator used in the raw input never survives parsing.
func (k Key) Normalized() string {
	return k.ParkCode + "/" + k.FieldCode
}

// ParseKeyFlexible parses a raw field key written as either "Park/Field" or
// "Park_Field"; the leftmost separator wins. Both codes come out lower-cased
// and the field code has whitespace runs collapsed to a single hyphen, so
// "Edgewater/Field 1" yields ("edgewater", "field-1"). Parsing fails when no
// separator is present or either side is blank after trimming.
func ParseKeyFlexible(raw string) (Key, bool) {
	sep := strings.IndexAny(raw, "/_")
	if sep < 0 {
		return Key{}, false
	}

	park := strings.TrimSpace(raw[:sep])
	fieldCode := strings.TrimSpace(raw[sep+1:])
	if park == "" || fieldCode == "" {
		return Key{}, false
	}

	return Key{
		ParkCode:  strings.ToLower(park),
		FieldCode: strings.Join(strings.Fields(strings.ToLower(fieldCode)), "-"),
	}, true
}
