package models

// Extra is an optional add-on service priced per rental day.
type Extra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Extras is the static add-on catalog. The backend accepts the ids verbatim;
// prices are per day.
var Extras = []Extra{
	{ID: "ek_surucu", Name: "Ek Sürücü", Price: 150},
	{ID: "bebek_koltugu", Name: "Bebek Koltuğu", Price: 100},
	{ID: "gps", Name: "GPS Cihazı", Price: 75},
	{ID: "tam_kasko", Name: "Tam Kasko", Price: 200},
	{ID: "mini_hasar", Name: "Mini Hasar Muafiyeti", Price: 100},
}

// ExtraByID looks up an add-on in the static catalog.
func ExtraByID(id string) (Extra, bool) {
	for _, e := range Extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}
