package svgdoc

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write serializes the tree rooted at root as indented XML with a standard
// XML header.
func Write(w io.Writer, root *Element) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")
	if err := encodeElement(enc, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile serializes the tree to the named file, creating parent
// directories as needed.
func WriteFile(path string, root *Element) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	fout, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fout, root); err != nil {
		fout.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return fout.Close()
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	if len(e.Attr) > 0 {
		start.Attr = make([]xml.Attr, len(e.Attr))
		for i, a := range e.Attr {
			// Prefixed names ride in Local so the encoder emits them
			// verbatim instead of inventing namespace bindings.
			start.Attr[i] = xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value}
		}
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := encodeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
