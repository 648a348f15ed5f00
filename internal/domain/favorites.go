package domain

// FavoritesUpdated é o evento emitido a cada alteração do conjunto de favoritos.
type FavoritesUpdated struct {
	Count     int    `json:"count"`
	ProductID string `json:"productId,omitempty"`
	Favorite  bool   `json:"favorite"`
}

// FavoritesState é a resposta de listagem de favoritos.
type FavoritesState struct {
	ProductIDs []string `json:"productIds"`
	Count      int      `json:"count"`
}
