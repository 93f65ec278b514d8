// Package parser provides the partner feed parsers and content sniffers
// used by the import use case, and the factory that registers them.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/usecase/importer"
)

// bomAndSpace is trimmed before sniffing the first significant byte.
const bomAndSpace = "\ufeff \t\r\n"

var utf8BOM = []byte("\ufeff")

// regionsJobFeed is any root element holding sibling <item> elements.
type regionsJobFeed struct {
	Items []regionsJobItem `xml:"item"`
}

type regionsJobItem struct {
	Ref         string `xml:"ref"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	URL         string `xml:"url"`
	Company     string `xml:"company"`
	PubDate     string `xml:"pubDate"`
}

// RegionsJobParser parses the RegionsJob XML feed: a root element with one
// <item> per offer. Missing child elements become empty strings and CDATA
// content is kept verbatim.
type RegionsJobParser struct{}

// NewRegionsJobParser creates a RegionsJobParser.
func NewRegionsJobParser() *RegionsJobParser {
	return &RegionsJobParser{}
}

// Parse implements importer.Parser.
func (p *RegionsJobParser) Parse(path string) ([]entity.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", importer.ErrUnreadableFile, err)
	}

	var feed regionsJobFeed
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: xml: %w", importer.ErrMalformedInput, err)
	}
	// Decode stops at the end of the root element; anything after it other
	// than whitespace, comments or processing instructions is a syntax error.
	if err := checkTrailing(dec); err != nil {
		return nil, fmt.Errorf("%w: xml: %w", importer.ErrMalformedInput, err)
	}

	jobs := make([]entity.Job, 0, len(feed.Items))
	for _, it := range feed.Items {
		jobs = append(jobs, entity.Job{
			Reference:     it.Ref,
			Title:         it.Title,
			Description:   it.Description,
			URL:           it.URL,
			CompanyName:   it.Company,
			PublishedDate: it.PubDate,
		})
	}
	return jobs, nil
}

func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return errors.New("unexpected text after root element")
			}
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		}
	}
}

// RegionsJobSniffer recognises a RegionsJob document by an <item> child of
// the root carrying a <ref> element.
type RegionsJobSniffer struct{}

// Sniff implements importer.Sniffer.
func (RegionsJobSniffer) Sniff(content []byte) (bool, error) {
	trimmed := bytes.TrimLeft(content, bomAndSpace)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false, nil
	}
	doc, err := xmlquery.Parse(bytes.NewReader(trimmed))
	if err != nil {
		return false, err
	}
	node, err := xmlquery.Query(doc, "/*/item/ref")
	if err != nil {
		return false, err
	}
	return node != nil, nil
}
