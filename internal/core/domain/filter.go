package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterCriteria - набор независимых предикатов. Нулевое значение не ограничивает ничего.
type FilterCriteria struct {
	Search    string   // подстрока в заголовке, без учета регистра
	City      string   // точное совпадение
	MaxPrice  *float64 // цена <= MaxPrice
	Category  string   // точное совпадение с Listing.Type
	Rooms     string   // точное совпадение корзины
	Amenities []string // все должны присутствовать у объявления
	Heating   []string // все должны присутствовать у объявления
}

// IsEmpty - true, если ни один предикат не активен
func (c FilterCriteria) IsEmpty() bool {
	return c.Search == "" && c.City == "" && c.MaxPrice == nil && c.Category == "" &&
		c.Rooms == "" && len(c.Amenities) == 0 && len(c.Heating) == 0
}

// Matches проверяет одно объявление против всех активных предикатов.
func (c FilterCriteria) Matches(l Listing) bool {
	return c.matches(cases.Fold(), l)
}

// cases.Caser хранит состояние, поэтому один экземпляр на вызов FilterListings.
func (c FilterCriteria) matches(folder cases.Caser, l Listing) bool {
	if c.Search != "" && !strings.Contains(folder.String(l.Title), folder.String(c.Search)) {
		return false
	}
	if c.City != "" && l.City != c.City {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.Category != "" && l.Type != c.Category {
		return false
	}
	if c.Rooms != "" && l.Rooms != c.Rooms {
		return false
	}
	return containsAll(l.Amenities, c.Amenities) && containsAll(l.Heating, c.Heating)
}

// FilterListings возвращает подпоследовательность объявлений, удовлетворяющих критериям.
// Чистая функция: порядок входа сохраняется, вход не изменяется.
func FilterListings(listings []Listing, c FilterCriteria) []Listing {
	result := make([]Listing, 0, len(listings))
	folder := cases.Fold()
	for _, l := range listings {
		if c.matches(folder, l) {
			result = append(result, l)
		}
	}
	return result
}

func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
