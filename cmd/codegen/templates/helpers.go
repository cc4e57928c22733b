package templates

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field is one property of the generated accessor type.
type Field struct {
	// Key is the property name in the observed object.
	Key string
	// Name is the exported Go name used for the getter and setter.
	Name string
	// Type is the Go type the property value is asserted to.
	Type string
}

func (f Field) Param() string {
	r, size := utf8.DecodeRuneInString(f.Name)
	p := string(unicode.ToLower(r)) + f.Name[size:]
	if token.IsKeyword(p) {
		p += "Value"
	}
	return p
}

// ParseField reads a "key:type" pair.
func ParseField(s string) (Field, error) {
	key, typ, ok := strings.Cut(s, ":")
	key, typ = strings.TrimSpace(key), strings.TrimSpace(typ)
	if !ok || key == "" || typ == "" {
		return Field{}, fmt.Errorf("field %q: want key:type", s)
	}
	if _, err := parser.ParseExpr(typ); err != nil {
		return Field{}, fmt.Errorf("field %q: bad type: %w", s, err)
	}

	var sb strings.Builder
	upper := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return Field{}, fmt.Errorf("field %q: %q is not an exported identifier", s, name)
	}
	return Field{Key: key, Name: name, Type: typ}, nil
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	return string(unicode.ToLower(r))
}

func paramList(fields []Field) string {
	var sb strings.Builder
	for i, f := range fields {
		sb.WriteString(f.Param())
		sb.WriteString(" ")
		sb.WriteString(f.Type)
		if i < len(fields)-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
