// Package docx renders documents as Office Open XML word processing
// files. The format is a zip container of XML parts; the parts are
// built with etree rather than a template so paragraph properties can
// be set per paragraph.
package docx

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rashidq/nezamdoc"
)

// Ensure Writer implements nezamdoc.DocumentWriter at compile time.
var _ nezamdoc.DocumentWriter = (*Writer)(nil)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// maxFontSize is the largest font size Word accepts, in points.
const maxFontSize = 1638

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>%s</Types>`

const stylesOverride = `<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

// Writer writes right-to-left .docx files. Font styling is best-effort:
// a font that cannot be expressed is reported through WriteInfo rather
// than failing the write, so a bad style never loses a harvested
// document.
type Writer struct {
	font nezamdoc.Font
}

// NewWriter creates a Writer that styles documents with font.
func NewWriter(font nezamdoc.Font) *Writer {
	return &Writer{font: font}
}

// Write renders doc to path, overwriting any existing file. The title
// becomes the first paragraph; each newline-separated segment of the
// body becomes one paragraph. Every paragraph and the document section
// are marked right-to-left.
func (w *Writer) Write(ctx context.Context, doc *nezamdoc.Document, path string) (*nezamdoc.WriteInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	styles, styleErr := buildStyles(w.font)
	styled := styleErr == nil

	document := buildDocument(doc)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	override := ""
	if styled {
		override = stylesOverride
	}
	if err := writeStringPart(zw, "[Content_Types].xml", fmt.Sprintf(contentTypesXML, override)); err != nil {
		return nil, err
	}
	if err := writeStringPart(zw, "_rels/.rels", rootRelsXML); err != nil {
		return nil, err
	}
	if styled {
		if err := writeStringPart(zw, "word/_rels/document.xml.rels", documentRelsXML); err != nil {
			return nil, err
		}
		if err := writeXMLPart(zw, "word/styles.xml", styles); err != nil {
			return nil, err
		}
	}
	if err := writeXMLPart(zw, "word/document.xml", document); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}

	return &nezamdoc.WriteInfo{Path: path, Styled: styled}, nil
}

func writeStringPart(zw *zip.Writer, name, content string) error {
	part, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func writeXMLPart(zw *zip.Writer, name string, doc *etree.Document) error {
	part, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := doc.WriteTo(part); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// buildDocument builds the main document part. The section-level bidi
// flag sets the overall text direction; each paragraph additionally
// carries its own bidi and right-justification so viewers that ignore
// section properties still render right-to-left.
func buildDocument(doc *nezamdoc.Document) *etree.Document {
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := d.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wordNS)
	body := root.CreateElement("w:body")

	appendParagraph(body, doc.Title)
	for _, segment := range strings.Split(doc.Body, "\n") {
		appendParagraph(body, segment)
	}

	sectPr := body.CreateElement("w:sectPr")
	sectPr.CreateElement("w:bidi")

	return d
}

func appendParagraph(body *etree.Element, text string) {
	p := body.CreateElement("w:p")

	pPr := p.CreateElement("w:pPr")
	pPr.CreateElement("w:bidi")
	jc := pPr.CreateElement("w:jc")
	jc.CreateAttr("w:val", "right")

	r := p.CreateElement("w:r")
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// buildStyles builds the styles part carrying the default font. Returns
// an error when the font cannot be expressed; the caller degrades to an
// unstyled document.
func buildStyles(font nezamdoc.Font) (*etree.Document, error) {
	if font.Name == "" && font.Size == 0 {
		return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "no font configured")
	}
	if font.Size < 0 || font.Size > maxFontSize {
		return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "font size %g out of range", font.Size)
	}

	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := d.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", wordNS)

	docDefaults := root.CreateElement("w:docDefaults")
	rPrDefault := docDefaults.CreateElement("w:rPrDefault")
	appendRunProperties(rPrDefault, font)

	style := root.CreateElement("w:style")
	style.CreateAttr("w:type", "paragraph")
	style.CreateAttr("w:default", "1")
	style.CreateAttr("w:styleId", "Normal")
	name := style.CreateElement("w:name")
	name.CreateAttr("w:val", "Normal")
	appendRunProperties(style, font)

	return d, nil
}

func appendRunProperties(parent *etree.Element, font nezamdoc.Font) {
	rPr := parent.CreateElement("w:rPr")
	if font.Name != "" {
		rFonts := rPr.CreateElement("w:rFonts")
		rFonts.CreateAttr("w:ascii", font.Name)
		rFonts.CreateAttr("w:hAnsi", font.Name)
		rFonts.CreateAttr("w:cs", font.Name)
		rFonts.CreateAttr("w:eastAsia", font.Name)
	}
	if font.Size > 0 {
		halfPoints := strconv.Itoa(int(font.Size * 2))
		sz := rPr.CreateElement("w:sz")
		sz.CreateAttr("w:val", halfPoints)
		szCs := rPr.CreateElement("w:szCs")
		szCs.CreateAttr("w:val", halfPoints)
	}
}
