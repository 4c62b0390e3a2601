package model

// TypeTag is a closed-vocabulary label describing an allowed value shape for
// an argument or return value.
type TypeTag string

const (
	TagAny       TypeTag = "any"
	TagString    TypeTag = "string"
	TagInteger   TypeTag = "integer"
	TagBoolean   TypeTag = "boolean"
	TagArray     TypeTag = "array"
	TagObject    TypeTag = "object"
	TagTimestamp TypeTag = "timestamp"
	TagRegex     TypeTag = "regex"
	TagNull      TypeTag = "null"
)

var knownTags = map[TypeTag]struct{}{
	TagAny:       {},
	TagString:    {},
	TagInteger:   {},
	TagBoolean:   {},
	TagArray:     {},
	TagObject:    {},
	TagTimestamp: {},
	TagRegex:     {},
	TagNull:      {},
}

// KnownTypeTag reports whether the tag is part of the closed vocabulary.
func KnownTypeTag(tag TypeTag) bool {
	_, ok := knownTags[tag]
	return ok
}

// ParseTypeTag maps a raw keyword onto its TypeTag. The second return value
// is false for keywords outside the vocabulary.
func ParseTypeTag(raw string) (TypeTag, bool) {
	tag := TypeTag(raw)
	return tag, KnownTypeTag(tag)
}

// Category groups documented functions in the reference; the set is closed.
type Category string

const (
	CategoryArray     Category = "array"
	CategoryCodec     Category = "codec"
	CategoryCoerce    Category = "coerce"
	CategoryConvert   Category = "convert"
	CategoryDebug     Category = "debug"
	CategoryEnumerate Category = "enumerate"
	CategoryHash      Category = "hash"
	CategoryIP        Category = "ip"
	CategoryNumber    Category = "number"
	CategoryObject    Category = "object"
	CategoryParse     Category = "parse"
	CategoryRandom    Category = "random"
	CategoryString    Category = "string"
	CategorySystem    Category = "system"
	CategoryTimestamp Category = "timestamp"
	CategoryType      Category = "type"
)

var knownCategories = map[Category]struct{}{
	CategoryArray:     {},
	CategoryCodec:     {},
	CategoryCoerce:    {},
	CategoryConvert:   {},
	CategoryDebug:     {},
	CategoryEnumerate: {},
	CategoryHash:      {},
	CategoryIP:        {},
	CategoryNumber:    {},
	CategoryObject:    {},
	CategoryParse:     {},
	CategoryRandom:    {},
	CategoryString:    {},
	CategorySystem:    {},
	CategoryTimestamp: {},
	CategoryType:      {},
}

// KnownCategory reports whether the category is part of the closed set.
func KnownCategory(c Category) bool {
	_, ok := knownCategories[c]
	return ok
}
