package excalidraw

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope constants for the packaged document. The source string
// identifies the plugin release whose schema the converter targets.
const (
	// DocumentType is the fixed document-format identifier.
	DocumentType = "excalidraw"

	// DocumentVersion is the fixed format version.
	DocumentVersion = 2

	// DocumentSource is the fixed source-tool reference string.
	DocumentSource = "https://github.com/zsviczian/obsidian-excalidraw-plugin/releases/tag/2.10.1"
)

// Document is the packaged output: the complete ordered element sequence
// wrapped in the versioned envelope. It is immutable once created and is
// the terminal artifact of a conversion run.
type Document struct {
	Type     string    `json:"type"`
	Version  int       `json:"version"`
	Source   string    `json:"source"`
	Elements []Element `json:"elements"`
}

// NewDocument wraps an element sequence in the envelope. Element data is
// not transformed; a nil sequence becomes an empty (not null) element
// array so the envelope fields are always fully populated.
func NewDocument(elements []Element) *Document {
	if elements == nil {
		elements = []Element{}
	}
	return &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Source:   DocumentSource,
		Elements: elements,
	}
}

// MarshalIndent serializes the document as indented JSON. Struct field
// order is fixed, so identical documents always serialize byte-identically.
func (d *Document) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// instructionLine is the fixed banner the Obsidian plugin expects directly
// after the front matter.
const instructionLine = "== Switch to EXCALIDRAW VIEW in the MORE OPTIONS menu of this document. == " +
	"You can decompress Drawing data with the command palette: 'Decompress current Excalidraw file'. " +
	"For more info check in plugin settings under 'Saving'"

// Markdown renders the document inside the Obsidian-compatible textual
// container: YAML front matter, the instructional banner, an
// "# Excalidraw Data" heading, a "## Text Elements" marker, and the
// envelope JSON in a fenced code block under "## Drawing", bracketed by
// %% delimiters.
func Markdown(d *Document) (string, error) {
	data, err := d.MarshalIndent()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("excalidraw-plugin: parsed\n")
	b.WriteString("tags: [excalidraw]\n")
	b.WriteString("---\n\n")
	b.WriteString(instructionLine)
	b.WriteString("\n\n")
	b.WriteString("# Excalidraw Data\n\n")
	b.WriteString("## Text Elements\n%%\n")
	b.WriteString("## Drawing\n```json\n")
	b.Write(data)
	b.WriteString("\n```\n%%\n")
	return b.String(), nil
}
