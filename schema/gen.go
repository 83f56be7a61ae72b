package schema

import "reflect"

// GenMarkerFields generates presence holder fields, one bool per serializable member of t
func (p *Provider) GenMarkerFields(t reflect.Type) []reflect.StructField {
	var result []reflect.StructField
	if t == nil || t.Kind() != reflect.Struct {
		return result
	}
	boolType := reflect.TypeOf(true)
	for _, member := range p.Describe(t).Members {
		result = append(result, reflect.StructField{Name: member.Name, Type: boolType, Tag: `json:"-"`})
	}
	return result
}

// MarkerType returns presence holder struct type for t
func (p *Provider) MarkerType(t reflect.Type) reflect.Type {
	return reflect.StructOf(p.GenMarkerFields(t))
}
