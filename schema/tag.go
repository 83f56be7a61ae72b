package schema

import (
	"reflect"
	"strings"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
)

const (
	// TagName defines member options tag, i.e. `ivconv:"name=id,readonly,converter=custom"`
	TagName = "ivconv"
	// SetMarkerTag defines legacy presence holder tag
	SetMarkerTag = "setMarker"
)

// Tag represents resolved member tag
type Tag struct {
	Name       string
	Explicit   bool
	OmitEmpty  bool
	Ignore     bool
	Inline     bool
	ReadOnly   bool
	WriteOnly  bool
	Presence   bool
	Converter  string
	Forward    string
	TimeLayout string
}

// ParseTag resolves member tag, precedence: ivconv name, json name, format name or case format, field name
func ParseTag(field reflect.StructField, caseFormat text.CaseFormat) *Tag {
	ret := &Tag{Name: field.Name}
	parseOptions(ret, field.Tag.Get(TagName))
	if ret.Explicit {
		return ret
	}
	if jsonTag, ok := field.Tag.Lookup("json"); ok {
		name, options, _ := strings.Cut(jsonTag, ",")
		switch name {
		case "-":
			if options == "" {
				ret.Ignore = true
			}
		case "":
		default:
			ret.Name = name
			ret.Explicit = true
		}
		if strings.Contains(options, "omitempty") {
			ret.OmitEmpty = true
		}
	}
	if fTag, err := format.Parse(field.Tag); err == nil && fTag != nil {
		ret.Ignore = ret.Ignore || fTag.Ignore
		ret.Inline = ret.Inline || fTag.Inline
		ret.OmitEmpty = ret.OmitEmpty || fTag.Omitempty
		if fTag.TimeLayout != "" {
			ret.TimeLayout = fTag.TimeLayout
		} else if fTag.DateFormat != "" {
			ret.TimeLayout = ftime.DateFormatToTimeLayout(fTag.DateFormat)
		}
		if !ret.Explicit && (fTag.Name != "" || fTag.CaseFormat != "") {
			if fTag.Name == "" {
				fTag.Name = field.Name
			}
			if name := fTag.CaseFormatName(""); name != "" {
				ret.Name = name
				ret.Explicit = true
			}
		}
	}
	if !ret.Explicit && caseFormat.IsDefined() {
		ret.Name = text.CaseFormatUpperCamel.Format(field.Name, caseFormat)
	}
	if field.Tag.Get(SetMarkerTag) == "true" {
		ret.Presence = true
	}
	return ret
}

func parseOptions(tag *Tag, encoded string) {
	if encoded == "" {
		return
	}
	if encoded == "-" {
		tag.Ignore = true
		return
	}
	for _, item := range strings.Split(encoded, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(item), "=")
		switch strings.ToLower(key) {
		case "name":
			tag.Name = value
			tag.Explicit = value != ""
		case "omitempty":
			tag.OmitEmpty = true
		case "readonly":
			tag.ReadOnly = true
		case "writeonly":
			tag.WriteOnly = true
		case "converter":
			tag.Converter = value
		case "forward":
			tag.Forward = value
		case "presence":
			tag.Presence = true
		case "inline":
			tag.Inline = true
		case "ignore", "-":
			tag.Ignore = true
		}
	}
}
