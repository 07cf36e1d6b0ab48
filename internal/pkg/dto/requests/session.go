package requests

type CreateSession struct {
	Path string `json:"path"`
}

type RouteChange struct {
	Path string `json:"path" validate:"required"`
}
