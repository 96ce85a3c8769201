package responsebody

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Health struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

type Session struct {
	Authenticated bool `json:"authenticated"`
}

type CSRFToken struct {
	Token string `json:"token"`
}
