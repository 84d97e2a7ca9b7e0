package backend_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"listing-bff/internal/core/domain"
	"strconv"
	"strings"
	"time"
)

// listingDTO - объявление в формате бэкенда.
// Поля, которые клиент не знает, сохраняются в extra и возвращаются при полной перезаписи.
type listingDTO struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Price          flexFloat  `json:"price"`
	Discount       flexFloat  `json:"discount"`
	Type           string     `json:"type"`
	City           string     `json:"city"`
	Address        string     `json:"address"`
	AddressURL     string     `json:"addressURL"`
	Rooms          flexString `json:"rooms"`
	Amenities      []string   `json:"amenities"`
	Heating        []string   `json:"heating"`
	Images         []string   `json:"images"`
	Video          string     `json:"video"`
	Status         string     `json:"status"`
	UserTeleNumber string     `json:"userTeleNumber"`
	UpdatedAt      string     `json:"updatedAt"`

	extra map[string]any
}

var knownListingKeys = map[string]struct{}{
	"id": {}, "title": {}, "price": {}, "discount": {}, "type": {}, "city": {}, "address": {},
	"addressURL": {}, "rooms": {}, "amenities": {}, "heating": {}, "images": {}, "video": {},
	"status": {}, "userTeleNumber": {}, "updatedAt": {},
}

// listingAlias нужен, чтобы json.Unmarshal не ушел в рекурсию
type listingAlias listingDTO

func (d *listingDTO) UnmarshalJSON(data []byte) error {
	var alias listingAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*d = listingDTO(alias)
	for k, v := range raw {
		if _, known := knownListingKeys[k]; known {
			continue
		}
		if d.extra == nil {
			d.extra = make(map[string]any)
		}
		d.extra[k] = v
	}
	return nil
}

func (d listingDTO) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownListingKeys)+len(d.extra))
	for k, v := range d.extra {
		out[k] = v
	}
	out["id"] = d.ID
	out["title"] = d.Title
	out["price"] = float64(d.Price)
	out["discount"] = float64(d.Discount)
	out["type"] = d.Type
	out["city"] = d.City
	out["address"] = d.Address
	out["addressURL"] = d.AddressURL
	out["rooms"] = string(d.Rooms)
	out["amenities"] = nonNil(d.Amenities)
	out["heating"] = nonNil(d.Heating)
	out["images"] = nonNil(d.Images)
	out["video"] = d.Video
	out["status"] = d.Status
	out["userTeleNumber"] = d.UserTeleNumber
	if d.UpdatedAt != "" {
		out["updatedAt"] = d.UpdatedAt
	}
	return json.Marshal(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// flexFloat принимает и число, и строку с числом: бэкенд присылает оба варианта
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexString принимает строку или число (rooms иногда приходит числом)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexString(str)
		return nil
	}
	*f = flexString(s)
	return nil
}

func (d listingDTO) toDomain() domain.Listing {
	l := domain.Listing{
		ID:         d.ID,
		Title:      d.Title,
		Price:      float64(d.Price),
		Discount:   float64(d.Discount),
		Type:       d.Type,
		City:       d.City,
		Address:    d.Address,
		AddressURL: d.AddressURL,
		Rooms:      string(d.Rooms),
		Amenities:  d.Amenities,
		Heating:    d.Heating,
		Images:     d.Images,
		Video:      d.Video,
		Status:     domain.ListingStatus(d.Status),
		OwnerPhone: d.UserTeleNumber,
		Flags:      d.extra,
	}
	if d.UpdatedAt != "" {
		l.UpdatedAtRaw = d.UpdatedAt
		if ts, err := time.Parse(time.RFC3339, d.UpdatedAt); err == nil {
			l.UpdatedAt = ts
		}
	}
	return l
}

func listingFromDomain(l domain.Listing) listingDTO {
	d := listingDTO{
		ID:             l.ID,
		Title:          l.Title,
		Price:          flexFloat(l.Price),
		Discount:       flexFloat(l.Discount),
		Type:           l.Type,
		City:           l.City,
		Address:        l.Address,
		AddressURL:     l.AddressURL,
		Rooms:          flexString(l.Rooms),
		Amenities:      l.Amenities,
		Heating:        l.Heating,
		Images:         l.Images,
		Video:          l.Video,
		Status:         string(l.Status),
		UserTeleNumber: l.OwnerPhone,
		extra:          l.Flags,
	}
	switch {
	case l.UpdatedAtRaw != "":
		d.UpdatedAt = l.UpdatedAtRaw
	case !l.UpdatedAt.IsZero():
		d.UpdatedAt = l.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return d
}

// emailRequest - тело like/dislike
type emailRequest struct {
	Email string `json:"email"`
}

// updateUserRequest - тело PUT /api/user/updateuser
type updateUserRequest struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}
