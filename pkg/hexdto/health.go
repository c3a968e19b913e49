package hexdto

type Health struct {
	Status      string `json:"status"`
	Sessions    int    `json:"sessions"`
	WhiteSeated bool   `json:"white_seated"`
	BlackSeated bool   `json:"black_seated"`
	Moves       int    `json:"moves"`
	NextToMove  string `json:"next_to_move"`
}
