package txml

import (
	"strings"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" ?>`
	schemaInstance = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "https://lebastudios.org/xml-schemas/txml_schema.xsd"
)

// ToMarkup renders s as a TXML document. Nested elements are not indented so
// that file bodies keep their columns; file contents and attribute values
// are escaped.
func ToMarkup(s *Structure) string {
	var b strings.Builder

	b.WriteString(xmlDeclaration)
	b.WriteString("\n\n<Root xmlns:xsi=\"" + schemaInstance + "\"\n")
	b.WriteString("      xsi:noNamespaceSchemaLocation=\"" + schemaLocation + "\"")
	if !s.Renamable {
		b.WriteString(" renamable=\"false\"")
	}
	b.WriteString(">\n")

	writeMetadata(&b, s.Metadata)
	for _, f := range s.Files {
		writeFile(&b, f)
	}
	for _, d := range s.Directories {
		writeDirectory(&b, d)
	}

	b.WriteString("</Root>\n")
	return b.String()
}

func writeMetadata(b *strings.Builder, m Metadata) {
	b.WriteString("<Metadata")
	writeAttr(b, "author", m.Author)
	writeAttr(b, "date", m.Date)
	writeAttr(b, "version", m.Version)
	writeAttr(b, "description", m.Description)
	b.WriteString("/>\n")
}

func writeFile(b *strings.Builder, f *File) {
	b.WriteString("<File")
	writeAttr(b, "name", f.Name)
	writeOptionalAttr(b, "extension", f.Extension)
	writeOptionalAttr(b, "command", f.Command)
	b.WriteString(">\n")
	b.WriteString(Escape(f.Content))
	b.WriteString("\n</File>\n")
}

func writeDirectory(b *strings.Builder, d *Directory) {
	b.WriteString("<Directory")
	writeAttr(b, "name", d.Name)
	writeOptionalAttr(b, "in_command", d.InCommand)
	writeOptionalAttr(b, "out_command", d.OutCommand)
	b.WriteString(">\n")
	for _, f := range d.Files {
		writeFile(b, f)
	}
	for _, child := range d.Directories {
		writeDirectory(b, child)
	}
	b.WriteString("</Directory>\n")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" " + name + "=\"" + Escape(value) + "\"")
}

func writeOptionalAttr(b *strings.Builder, name, value string) {
	if value != "" {
		writeAttr(b, name, value)
	}
}
