package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema describes the minimal payload shape: an object with
// sellers and categories arrays of objects.
var payloadSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"sellers", "categories"},
	"properties": map[string]interface{}{
		"sellers": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "name", "category"},
				"properties": map[string]interface{}{
					"id":       map[string]interface{}{"type": "integer"},
					"name":     map[string]interface{}{"type": "string"},
					"category": map[string]interface{}{"type": "string"},
					"rating":   map[string]interface{}{"type": "number"},
					"products": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
		"categories": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"name"},
				"properties": map[string]interface{}{
					"name": map[string]interface{}{"type": "string"},
					"icon": map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

var schemaLoader = gojsonschema.NewGoLoader(payloadSchema)

type payload struct {
	Sellers    []sellerRecord   `json:"sellers"`
	Categories []categoryRecord `json:"categories"`
}

type sellerRecord struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"`
	Products    []string `json:"products"`
	WhatsApp    string   `json:"whatsapp"`
	Instagram   string   `json:"instagram"`
	Snapchat    string   `json:"snapchat"`
	Verified    bool     `json:"verified"`
	Featured    bool     `json:"featured"`
	Image       string   `json:"image"`
	JoinedDate  string   `json:"joinedDate"`
}

type categoryRecord struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count *int   `json:"count"`
}

// Parse validates and decodes a raw payload into a catalog snapshot.
// The returned error is a *LoadError with Op decode or validate.
func Parse(data []byte) (*domain.Catalog, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Op: OpDecode, Err: fmt.Errorf("%w: %v", ErrInvalidPayload, err)}
	}
	if err := validateShape(raw); err != nil {
		return nil, &LoadError{Op: OpDecode, Err: err}
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &LoadError{Op: OpDecode, Err: fmt.Errorf("%w: %v", ErrInvalidPayload, err)}
	}

	sellers := make([]domain.Seller, 0, len(p.Sellers))
	for _, r := range p.Sellers {
		s, err := r.toDomain()
		if err != nil {
			return nil, &LoadError{Op: OpDecode, Err: fmt.Errorf("%w: seller %d: %v", ErrInvalidPayload, r.ID, err)}
		}
		sellers = append(sellers, s)
	}

	categories := make([]domain.Category, 0, len(p.Categories))
	for _, r := range p.Categories {
		categories = append(categories, domain.Category{Name: r.Name, Icon: r.Icon})
	}

	c, err := domain.NewCatalog(sellers, categories)
	if err != nil {
		return nil, &LoadError{Op: OpValidate, Err: err}
	}
	reportCountMismatches(c, p.Categories)
	return c, nil
}

func validateShape(doc interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(errs, "; "))
	}
	return nil
}

func (r sellerRecord) toDomain() (domain.Seller, error) {
	joined, err := parseJoinedDate(r.JoinedDate)
	if err != nil {
		return domain.Seller{}, err
	}
	return domain.Seller{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		Rating:      r.Rating,
		Products:    r.Products,
		Contacts: domain.Contacts{
			WhatsApp:  r.WhatsApp,
			Instagram: r.Instagram,
			Snapchat:  r.Snapchat,
		},
		Verified:   r.Verified,
		Featured:   r.Featured,
		Image:      r.Image,
		JoinedDate: joined,
	}, nil
}

// parseJoinedDate accepts YYYY-MM-DD or RFC3339. Empty yields the zero time.
func parseJoinedDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("joinedDate %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

// reportCountMismatches logs payload category counts that disagree with the derived ones.
func reportCountMismatches(c *domain.Catalog, records []categoryRecord) {
	for _, r := range records {
		if r.Count == nil {
			continue
		}
		cat, ok := c.Category(r.Name)
		if ok && cat.Count != *r.Count {
			colors.StructuredDebug("catalog", "parse", "count_mismatch", nil, r.Name,
				map[string]interface{}{"payload": *r.Count, "derived": cat.Count})
		}
	}
}
