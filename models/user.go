package models

// User represents a storefront customer as returned by the rental backend.
type User struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	TCKimlik      string `json:"tc_kimlik,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EhliyetNo     string `json:"ehliyet_no,omitempty"`
	EhliyetSinifi string `json:"ehliyet_sinifi,omitempty"`
	EhliyetTarihi string `json:"ehliyet_tarihi,omitempty"`
	DogumTarihi   string `json:"dogum_tarihi,omitempty"`
	Adres         string `json:"adres,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}
