package orders

type flavorSeed struct{ name, value, emoji string }

type hostelSeed struct{ name, value string }

// Urutan seed = urutan yang dikembalikan ke client.
var seedFlavors = []flavorSeed{
	{"Plain", "plain", "🥞"},
	{"Cinnamon", "cinnamon", "🎂"},
	{"Orange", "orange", "🍊"},
	{"Lemon", "lemon", "🍋"},
	{"Pineapple", "pineapple", "🍍"},
	{"Vanilla", "vanilla", "🤍"},
}

var seedHostels = []hostelSeed{
	{"Sunrise Hostel", "sunrise-hostel"},
	{"Golden Inn", "golden-inn"},
	{"Morning Lodge", "morning-lodge"},
	{"Dawn Residence", "dawn-residence"},
	{"Daybreak Hostel", "daybreak-hostel"},
}

// SeedFlavors returns the startup flavor catalog with sequential ids from 1.
func SeedFlavors() []Flavor {
	out := make([]Flavor, 0, len(seedFlavors))
	for i, s := range seedFlavors {
		out = append(out, Flavor{ID: i + 1, Name: s.name, Value: s.value, Emoji: s.emoji})
	}
	return out
}

// SeedHostels returns the startup hostel catalog with sequential ids from 1.
func SeedHostels() []Hostel {
	out := make([]Hostel, 0, len(seedHostels))
	for i, s := range seedHostels {
		out = append(out, Hostel{ID: i + 1, Name: s.name, Value: s.value})
	}
	return out
}

func FlavorBySlug(flavors []Flavor, slug string) (Flavor, bool) {
	for _, f := range flavors {
		if f.Value == slug {
			return f, true
		}
	}
	return Flavor{}, false
}
