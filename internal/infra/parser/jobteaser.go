package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/usecase/importer"
)

// jobTeaserMarker is the top-level key that identifies a JobTeaser document.
const jobTeaserMarker = "offerUrlPrefix"

type jobTeaserFeed struct {
	OfferURLPrefix flexString       `json:"offerUrlPrefix"`
	Offers         []jobTeaserOffer `json:"offers"`
}

type jobTeaserOffer struct {
	Reference     flexString `json:"reference"`
	Title         flexString `json:"title"`
	Description   flexString `json:"description"`
	URLPath       flexString `json:"urlPath"`
	CompanyName   flexString `json:"companyname"`
	PublishedDate flexString `json:"publishedDate"`
}

// flexString accepts JSON strings, numbers and booleans as text.
// null leaves it empty; objects and arrays are rejected.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '{', '[':
		return fmt.Errorf("expected a scalar, got %s", b[:1])
	case 't', 'f':
		v, err := strconv.ParseBool(string(b))
		if err != nil {
			return err
		}
		*f = flexString(strconv.FormatBool(v))
	default:
		// numbers keep their literal text
		*f = flexString(b)
	}
	return nil
}

// JobTeaserParser parses the JobTeaser JSON feed: a top-level object with an
// optional offerUrlPrefix and an offers array. Each offer URL is the prefix
// concatenated with the offer's urlPath, without normalisation.
type JobTeaserParser struct{}

// NewJobTeaserParser creates a JobTeaserParser.
func NewJobTeaserParser() *JobTeaserParser {
	return &JobTeaserParser{}
}

// Parse implements importer.Parser.
func (p *JobTeaserParser) Parse(path string) ([]entity.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", importer.ErrUnreadableFile, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: json: invalid syntax", importer.ErrMalformedInput)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: json: top-level value must be an object", importer.ErrMalformedInput)
	}

	var feed jobTeaserFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("%w: json: %w", importer.ErrMalformedInput, err)
	}

	prefix := string(feed.OfferURLPrefix)
	jobs := make([]entity.Job, 0, len(feed.Offers))
	for _, o := range feed.Offers {
		jobs = append(jobs, entity.Job{
			Reference:     string(o.Reference),
			Title:         string(o.Title),
			Description:   string(o.Description),
			URL:           prefix + string(o.URLPath),
			CompanyName:   string(o.CompanyName),
			PublishedDate: string(o.PublishedDate),
		})
	}
	return jobs, nil
}

var errNotJSONObject = errors.New("content is not a JSON object")

// JobTeaserSniffer recognises a JobTeaser document by its top-level
// offerUrlPrefix key.
type JobTeaserSniffer struct{}

// Sniff implements importer.Sniffer.
func (JobTeaserSniffer) Sniff(content []byte) (bool, error) {
	trimmed := bytes.TrimLeft(content, bomAndSpace)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return false, errNotJSONObject
	}
	return gjson.GetBytes(trimmed, jobTeaserMarker).Exists(), nil
}
