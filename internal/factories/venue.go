package factories

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/jaswdr/faker"
)

var (
	categories = []string{
		"кафе", "ресторан", "кофейня", "бар,паб", "пиццерия",
		"быстрое питание", "столовая", "булочная",
	}
	districts = []string{
		"Центральный административный округ",
		"Северный административный округ",
		"Северо-Восточный административный округ",
		"Восточный административный округ",
		"Юго-Восточный административный округ",
		"Южный административный округ",
		"Юго-Западный административный округ",
		"Западный административный округ",
		"Северо-Западный административный округ",
	}
	streets = []string{
		"проспект Мира", "Тверская улица", "улица Арбат", "Ленинградский проспект",
		"Профсоюзная улица", "Варшавское шоссе", "Пятницкая улица", "улица Покровка",
		"Кутузовский проспект", "Ленинский проспект", "улица Дыбенко", "Мясницкая улица",
	}
	// chain names appear with case and Ё/Е variants so that normalization
	// has something to merge
	chains = [][]string{
		{"Шоколадница", "ШОКОЛАДНИЦА", "шоколадница "},
		{"Кофемания", "КОФЕМАНИЯ"},
		{"Ёлки-палки", "Елки-палки"},
		{"Теремок", "теремок"},
		{"Додо Пицца", "ДОДО ПИЦЦА"},
	}
	hours = []string{
		models.AllDayHours,
		"ежедневно, 10:00–22:00",
		"пн-пт 08:00–21:00; сб,вс 10:00–21:00",
		"ежедневно, 09:00–23:00",
	}
	prices = []string{"высокие", "выше среднего", "средние", "низкие"}
)

// VenueFactory generates raw venue rows shaped like the Moscow venues
// dataset, including the malformed values the cleaning pipeline has to
// tolerate.
type VenueFactory struct {
	fake      faker.Faker
	rng       *rand.Rand
	centerLat float64
	centerLng float64
	radiusKm  float64
}

// NewVenueFactory returns a factory whose output depends only on seed.
func NewVenueFactory(seed int64) *VenueFactory {
	return &VenueFactory{
		fake:      faker.NewWithSeed(rand.NewSource(seed)),
		rng:       rand.New(rand.NewSource(seed)),
		centerLat: 55.7558,
		centerLng: 37.6173,
		radiusKm:  20,
	}
}

func (vf *VenueFactory) CreateVenues(n int) []models.Venue {
	venues := make([]models.Venue, n)
	for i := range venues {
		venues[i] = vf.CreateVenue()
	}
	return venues
}

func (vf *VenueFactory) CreateVenue() models.Venue {
	fake := vf.fake

	v := models.Venue{
		Category: fake.RandomStringElement(categories),
		Location: vf.location(),
		Rating:   vf.rating(4.2, 0.4),
		District: fake.RandomStringElement(districts),
	}

	if vf.chance(30) {
		variants := chains[fake.IntBetween(0, len(chains)-1)]
		v.Name = fake.RandomStringElement(variants)
		v.Chain = 1
	} else {
		v.Name = fake.Company().Name()
	}

	v.Address = vf.address()
	if vf.chance(85) {
		h := fake.RandomStringElement(hours)
		v.Hours = &h
	}
	if vf.chance(40) {
		p := fake.RandomStringElement(prices)
		v.Price = &p
	}
	v.AvgBill = vf.bill(v.Category)
	if vf.chance(60) {
		s := float64(fake.IntBetween(0, 300))
		v.Seats = &s
	}
	return v
}

func (vf *VenueFactory) chance(percent int) bool {
	return vf.fake.IntBetween(1, 100) <= percent
}

func (vf *VenueFactory) location() models.Location {
	latRange := vf.radiusKm / 111.0
	lngRange := latRange / math.Cos(vf.centerLat*math.Pi/180.0)

	return models.Location{
		Lat: vf.centerLat + vf.unit()*latRange,
		Lng: vf.centerLng + vf.unit()*lngRange,
	}
}

// rating draws from a normal distribution clamped to [1, 5] and rounded to
// one decimal, like the ratings on the venue aggregator.
func (vf *VenueFactory) rating(mean, std float64) float64 {
	r := mean + vf.rng.NormFloat64()*std
	r = math.Max(1, math.Min(5, r))
	return math.Round(r*10) / 10
}

// unit returns a value in [-1, 1].
func (vf *VenueFactory) unit() float64 {
	return float64(vf.fake.IntBetween(-1_000_000, 1_000_000)) / 1_000_000
}

func (vf *VenueFactory) address() string {
	if vf.chance(3) {
		return "Москва"
	}
	street := vf.fake.RandomStringElement(streets)
	return fmt.Sprintf("Москва, %s, %d", street, vf.fake.IntBetween(1, 120))
}

func (vf *VenueFactory) bill(category string) *string {
	fake := vf.fake
	var s string
	switch r := fake.IntBetween(1, 100); {
	case r <= 35:
		return nil
	case category == "кофейня" && r <= 75:
		low := fake.IntBetween(8, 20) * 10
		s = fmt.Sprintf("Цена чашки капучино:%d–%d ₽", low, low+fake.IntBetween(2, 10)*10)
	case category == "бар,паб" && r <= 70:
		low := fake.IntBetween(20, 40) * 10
		s = fmt.Sprintf("Цена бокала пива:%d–%d ₽", low, low+fake.IntBetween(5, 20)*10)
	case r <= 90:
		low := fake.IntBetween(3, 30) * 100
		if vf.chance(30) {
			s = fmt.Sprintf("Средний счёт:%d ₽", low)
		} else {
			s = fmt.Sprintf("Средний счёт:%d–%d ₽", low, low+fake.IntBetween(1, 15)*100)
		}
	case r <= 95:
		s = fmt.Sprintf("Средний счёт:от %d ₽", fake.IntBetween(3, 30)*100)
	default:
		s = "Средний счёт:уточняйте"
	}
	return &s
}
