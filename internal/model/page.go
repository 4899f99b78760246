package model

// DefaultPageSize используется, когда размер страницы не задан.
const DefaultPageSize = 10

// Page: параметры постраничной выборки (смещение и размер).
type Page struct {
	Offset int
	Limit  int
}

// Normalize подставляет значения по умолчанию для некорректных параметров.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	return p
}
