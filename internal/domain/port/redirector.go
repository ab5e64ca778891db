package port

// Redirector строит адрес, на который хост переводит пользователя
type Redirector interface {
	RedirectURL(params map[string]string) (string, error)
}
