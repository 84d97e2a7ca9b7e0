package domain

// FilterOption - значение фильтра и подпись для всплывающего окна фильтров
type FilterOption struct {
	Value string
	Label string
}

// FilterOptions - фиксированные списки значений всплывающего окна фильтров.
type FilterOptions struct {
	Cities       []FilterOption
	PriceBuckets []FilterOption
	Categories   []FilterOption
	Rooms        []FilterOption
	Heating      []FilterOption
	Amenities    []FilterOption
}

func plainOptions(values ...string) []FilterOption {
	options := make([]FilterOption, len(values))
	for i, v := range values {
		options[i] = FilterOption{Value: v, Label: v}
	}
	return options
}

// DefaultFilterOptions возвращает справочник фильтров. Каждый вызов отдает новую копию.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Cities: []FilterOption{
			{Value: "Tbilisi", Label: "Tbilisi"},
			{Value: "Batumi", Label: "Batumi"},
		},
		// "1000+" разбирается как верхняя граница 1000, см. rest.parseMaxPrice
		PriceBuckets: []FilterOption{
			{Value: "350", Label: "Before 350 USD"},
			{Value: "500", Label: "350 – 500 USD"},
			{Value: "700", Label: "500 – 700 USD"},
			{Value: "1000", Label: "850 – 1000 USD"},
			{Value: "1000+", Label: "1000 USD +"},
		},
		Categories: []FilterOption{
			{Value: "", Label: "All"},
			{Value: "Rent", Label: "Rent"},
			{Value: "Sale", Label: "Sale"},
		},
		Rooms:   plainOptions("1", "2", "3", "4+"),
		Heating: plainOptions("Bce", "Central", "Electric", "Air Conditioner", "Underfloor Heating", "Karma"),
		Amenities: plainOptions(
			"Oven", "Stove", "Heater", "Elevator", "Balcony", "Microwave", "SmartTV",
			"ParkingPlace", "Projector", "VacuumCleaner", "AirConditioner", "WiFi", "PlayStation",
		),
	}
}
