package basesvc

import (
	"fmt"
	"reflect"
	"strings"
)

// RelationshipDefinition mô tả một quan hệ tham chiếu khai báo qua struct tag
// `relationship` trên model: collection đích, field mang khóa tham chiếu,
// thông điệp khi chặn xóa và hai cờ optional/cascade.
type RelationshipDefinition struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
	Cascade        bool
}

// ParseRelationshipTag đọc các tag `relationship` trên một struct model.
// Tag có thể nằm trên field đánh dấu _Relationships hoặc trên field dữ liệu
// bất kỳ; một tag chứa nhiều quan hệ ngăn cách bởi "|".
func ParseRelationshipTag(structType reflect.Type) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	if field, ok := structType.FieldByName("_Relationships"); ok {
		if tag := field.Tag.Get("relationship"); tag != "" {
			relationships = append(relationships, parseRelationshipTagValue(tag)...)
		}
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Name == "_Relationships" {
			continue
		}
		tag := field.Tag.Get("relationship")
		if tag == "" {
			continue
		}
		relationships = append(relationships, parseRelationshipTagValue(tag)...)
	}
	return relationships
}

// parseRelationshipTagValue parse một giá trị tag dạng
// "collection:reviews,field:productId,cascade:true|collection:cart_items,...".
// Quan hệ thiếu collection hoặc field bị bỏ qua.
func parseRelationshipTagValue(tagValue string) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	for _, part := range strings.Split(tagValue, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rel := RelationshipDefinition{}
		for _, pair := range strings.Split(part, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "collection":
				rel.CollectionName = value
			case "field":
				rel.FieldName = value
			case "message", "msg":
				rel.ErrorMessage = value
			case "optional":
				rel.Optional = value == "true" || value == "1"
			case "cascade":
				rel.Cascade = value == "true" || value == "1"
			}
		}
		if rel.CollectionName == "" || rel.FieldName == "" {
			continue
		}
		if rel.ErrorMessage == "" {
			rel.ErrorMessage = fmt.Sprintf("Không thể xóa vì có %%d bản ghi trong '%s' đang tham chiếu tới.", rel.CollectionName)
		}
		relationships = append(relationships, rel)
	}
	return relationships
}
