package domain

import (
	"fmt"
	"time"
)

// ListingStatus - статус объявления на стороне бэкенда
type ListingStatus string

const (
	StatusPublished ListingStatus = "published"
	StatusRented    ListingStatus = "rented"
	StatusArchived  ListingStatus = "archived"
)

// ParseListingStatus разбирает статус. Пустая строка - "published", как во вкладке профиля по умолчанию.
func ParseListingStatus(s string) (ListingStatus, error) {
	switch ListingStatus(s) {
	case "":
		return StatusPublished, nil
	case StatusPublished, StatusRented, StatusArchived:
		return ListingStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown listing status %q", ErrValidation, s)
}

// Listing - карточка объекта недвижимости в том виде, в каком ее отдает бэкенд.
type Listing struct {
	ID         string
	Title      string
	Price      float64
	Discount   float64
	Type       string // категория: Rent, Sale
	City       string
	Address    string
	AddressURL string
	Rooms      string // корзина: "1", "2", "3", "4+"
	Amenities  []string
	Heating    []string
	Images     []string
	Video      string
	Status     ListingStatus
	OwnerPhone string
	UpdatedAt  time.Time
	// UpdatedAtRaw - updatedAt в том виде, в каком его прислал бэкенд
	UpdatedAtRaw string

	// Flags - служебные поля бэкенда, которые мы не интерпретируем,
	// но обязаны вернуть при полной перезаписи записи.
	Flags map[string]any
}

// ListingCard - объявление в выдаче вместе с отметкой "в избранном"
type ListingCard struct {
	Listing Listing
	Liked   bool
}

// FindListing ищет объявление по ID
func FindListing(listings []Listing, id string) (Listing, bool) {
	for _, l := range listings {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}

// OwnedListings - объявления владельца с заданным телефоном и статусом (вкладки профиля агента).
func OwnedListings(listings []Listing, ownerPhone string, status ListingStatus) []Listing {
	result := make([]Listing, 0)
	if ownerPhone == "" {
		return result
	}
	for _, l := range listings {
		if l.OwnerPhone == ownerPhone && l.Status == status {
			result = append(result, l)
		}
	}
	return result
}
