package ingredients

// Category of Ingredient.
//
// The API calls fillings "main".
type Category string

const (
	Bun   Category = "bun"
	Main  Category = "main"
	Sauce Category = "sauce"
)

func (c Category) Valid() bool {
	switch c {
	case Bun, Main, Sauce:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// Ingredient is a purchasable item of the catalog.
type Ingredient struct {
	Id            string   `json:"_id"`
	Name          string   `json:"name"`
	Type          Category `json:"type"`
	Proteins      float64  `json:"proteins"`
	Fat           float64  `json:"fat"`
	Carbohydrates float64  `json:"carbohydrates"`
	Calories      float64  `json:"calories"`

	// price in the smallest currency unit.
	Price int `json:"price"`

	Image       string `json:"image"`
	ImageMobile string `json:"image_mobile"`
	ImageLarge  string `json:"image_large"`
}

func (i Ingredient) IsBun() bool {
	return i.Type == Bun
}

func (i Ingredient) Equal(o Ingredient) bool {
	return i.Id == o.Id &&
		i.Name == o.Name &&
		i.Type == o.Type &&
		i.Proteins == o.Proteins &&
		i.Fat == o.Fat &&
		i.Carbohydrates == o.Carbohydrates &&
		i.Calories == o.Calories &&
		i.Price == o.Price &&
		i.Image == o.Image &&
		i.ImageMobile == o.ImageMobile &&
		i.ImageLarge == o.ImageLarge
}

// Response of GET /ingredients
type Response struct {
	Success bool         `json:"success"`
	Data    []Ingredient `json:"data"`
}

func (r Response) Succeeded() bool {
	return r.Success
}
